package migration

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrInvalidRequest    = errors.New("migration: invalid request")
	ErrEntityNotFound    = errors.New("migration: entity not found")
	ErrIllegalTransition = errors.New("migration: illegal state transition")
)

const (
	invalidRequestCode = "MIGRATION_INVALID_REQUEST"
	entityNotFoundCode = "MIGRATION_ENTITY_NOT_FOUND"
)

func invalidRequest(err error) error {
	return goerrors.Wrap(errors.Join(ErrInvalidRequest, err), goerrors.CategoryValidation, "migration request is invalid").
		WithTextCode(invalidRequestCode)
}

func entityNotFound(err error) error {
	return goerrors.Wrap(errors.Join(ErrEntityNotFound, err), goerrors.CategoryNotFound, "entity not found").
		WithTextCode(entityNotFoundCode)
}
