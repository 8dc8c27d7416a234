// Package common holds small error helpers shared across the service.
package common

import (
	"errors"
	"fmt"

	"github.com/ReshmithaBathala/bookingbackend/logger"
)

func NewErrorf(format string, a ...any) error {
	msg := fmt.Sprintf(format, a...)
	return errors.New(msg)
}

// Combine joins the non-nil errors, or returns nil if there are none.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

// Recover must be called directly by a deferred statement.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, "panic:", panicErr)
		}
	}
	return panicErr
}
