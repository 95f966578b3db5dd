package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by command errors so callers can tell a rejected
// message from a cancelled or failed run.
const (
	CodeInvalidMessage = "STOREFRONT_COMMAND_INVALID"
	CodeCancelled      = "STOREFRONT_COMMAND_CANCELLED"
	CodeDeadline       = "STOREFRONT_COMMAND_DEADLINE"
	CodeContext        = "STOREFRONT_COMMAND_CONTEXT"
	CodeFailed         = "STOREFRONT_COMMAND_FAILED"
)

// WrapValidationError tags err as a validation failure unless it already
// carries a category.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid command message").
		WithTextCode(CodeInvalidMessage)
}

func WrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command cancelled").
			WithTextCode(CodeCancelled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command deadline exceeded").
			WithTextCode(CodeDeadline)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(CodeContext)
	}
}

// WrapExecuteError tags handler failures. Errors that already carry a
// category, such as migration validation or not-found errors, pass through.
func WrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command failed").
		WithTextCode(CodeFailed)
}
