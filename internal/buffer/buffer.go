// Package buffer implements the growable, compacting byte window the
// decoder reads from: donated chunks are appended, consumed prefixes are
// reclaimed, and the unread tail is bounded by a configured limit.
package buffer

// Window holds bytes donated to the decoder that haven't been fully
// consumed yet. It never shrinks on its own; Add reclaims space by
// discarding the already-read prefix before appending.
type Window struct {
	memory  []byte
	reader  int
	maxSize int
}

// New returns a Window with the given initial capacity, growing up to
// maxSize bytes of unread data before Add starts refusing chunks.
func New(initialSize, maxSize int) *Window {
	return &Window{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Add compacts the window, discarding its already-read prefix, then
// appends chunk. It reports false, dropping chunk, if appending it would
// leave more than maxSize bytes unread; the compaction happens either way.
func (w *Window) Add(chunk []byte) (ok bool) {
	w.compact()

	if len(w.memory)+len(chunk) > w.maxSize {
		return false
	}

	w.memory = append(w.memory, chunk...)
	return true
}

func (w *Window) compact() {
	if w.reader == 0 {
		return
	}

	n := copy(w.memory, w.memory[w.reader:])
	w.memory = w.memory[:n]
	w.reader = 0
}

// ReadableBytes returns the number of unread bytes currently buffered.
func (w *Window) ReadableBytes() int {
	return len(w.memory) - w.reader
}

// ReaderOffset returns the current reader position.
func (w *Window) ReaderOffset() int {
	return w.reader
}

// WriterOffset returns the position one past the last buffered byte.
func (w *Window) WriterOffset() int {
	return len(w.memory)
}

// SetReaderOffset moves the reader position, used to commit a scan or to
// restore it when a scan couldn't complete with the bytes on hand.
func (w *Window) SetReaderOffset(i int) {
	w.reader = i
}

// GetByte returns the byte at absolute offset i, which must lie in
// [0, WriterOffset()).
func (w *Window) GetByte(i int) byte {
	return w.memory[i]
}

// Bytes returns a view of the buffered bytes in [from, to). The slice
// aliases the window's memory and is only valid until the next Add or
// ReadSplit call.
func (w *Window) Bytes(from, to int) []byte {
	return w.memory[from:to]
}

// Index reports the first absolute offset at or after from holding
// needle, or -1 if needle doesn't occur in the buffered range.
func (w *Window) Index(from int, needle []byte) int {
	end := len(w.memory) - len(needle) + 1
	for i := from; i < end; i++ {
		if string(w.memory[i:i+len(needle)]) == string(needle) {
			return i
		}
	}

	return -1
}

// ReadSplit copies out the next n unread bytes as an owned slice and
// advances the reader past them.
func (w *Window) ReadSplit(n int) []byte {
	out := make([]byte, n)
	copy(out, w.memory[w.reader:w.reader+n])
	w.reader += n
	return out
}

// Release discards all buffered bytes, resetting the window for reuse.
func (w *Window) Release() {
	w.memory = w.memory[:0]
	w.reader = 0
}
