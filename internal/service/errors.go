package service

import "errors"

// Service-level sentinel errors. Handlers map these to HTTP statuses.
var (
	ErrAttemptNotFound      = errors.New("attempt not found")
	ErrAttemptCompleted     = errors.New("attempt already completed")
	ErrQuestionNotInAttempt = errors.New("question not part of this attempt")
	ErrQuestionNotFound     = errors.New("question not found")
	ErrInvalidOption        = errors.New("invalid answer option")
	ErrDeckNotFound         = errors.New("deck not found")
	ErrDeckEmpty            = errors.New("deck has no questions")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidDate          = errors.New("invalid date, expected YYYY-MM-DD")
)
