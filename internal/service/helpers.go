package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoSchedule means no official schedule was imported for the date.
	ErrNoSchedule = errors.New("no official schedule for date")
	// ErrSuggestionNotFound means the id is not among the current suggestions.
	ErrSuggestionNotFound = errors.New("suggestion not found")
	ErrInvalidDate        = errors.New("invalid date")
)

const dateLayout = "2006-01-02"

func checkDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w %q (expected YYYY-MM-DD)", ErrInvalidDate, date)
	}
	return nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
