package console

type state int

const (
	urlState state = iota
	playerState
	chaptersState
	historyState
	errorState
)
