package model

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDepartment = errors.New("unknown department")
	ErrMissingScore      = errors.New("missing exam score")
	ErrTooFewChoices     = errors.New("not enough department choices")
	ErrNegativePlaces    = errors.New("places must not be negative")
	ErrInvalidApplicant  = errors.New("invalid applicant")
)

// ValidationError reports an applicant whose data cannot take part in the allocation
type ValidationError struct {
	Applicant string
	Err       error
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("applicant \"%v\": %v", err.Applicant, err.Err)
}

func (err *ValidationError) Unwrap() error {
	return err.Err
}
