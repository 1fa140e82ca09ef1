package game

import "errors"

var (
	ErrUnknownMode     = errors.New("unknown quiz mode")
	ErrNoActiveQuiz    = errors.New("no quiz in progress")
	ErrQuizActive      = errors.New("a quiz is already in progress")
	ErrNotAnswerable   = errors.New("current mode has no answers")
	ErrNotAnswered     = errors.New("current question has not been answered")
	ErrInvalidOption   = errors.New("option index out of range")
	ErrNotBrowsable    = errors.New("card actions need an active flashcard deck")
	ErrInvalidCard     = errors.New("card index out of range")
	ErrNotInResults    = errors.New("play again is only available on the results view")
	ErrNoPendingResume = errors.New("no saved session to resume")
)
