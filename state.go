package multipart

type state uint8

const (
	stateHeaderDelimiter state = iota
	stateDisposition
	stateContent
	stateContentDone
	statePreEpilogue
)
