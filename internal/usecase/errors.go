package usecase

import "errors"

var (
	ErrCandidateNotFound     = errors.New("Candidate not found")
	ErrJobNotFound           = errors.New("Job not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrExtractionUnavailable = errors.New("Skill extraction unavailable")
)
