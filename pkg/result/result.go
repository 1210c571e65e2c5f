// Package result defines the closed outcome families returned by directory managers
// and repositories.
//
// Each family is a sealed interface; the case types are shared structs, so a single
// NotFound value is both an UpdateResult and a DeleteResult. Consumers type-switch over
// a family and end the switch with
//
//	default:
//		panic(result.Unexpected(r))
//
// so that an unhandled case fails loudly instead of being silently dropped.
package result

import (
	"errors"
	"fmt"

	"skillset/pkg/validation"
)

// Kind labels used in logs and metrics.
const (
	KindSuccess           = "success"
	KindValidationFailure = "validation_failure"
	KindNotFound          = "not_found"
	KindConflict          = "conflict"
	KindRepositoryFailure = "repository_failure"
)

// ErrNoOutcome is the cause recorded when a repository returns neither a result nor an error.
var ErrNoOutcome = errors.New("repository returned no outcome")

// Outcome is implemented by every case type.
type Outcome interface {
	Kind() string
}

// CreateResult = Success | ValidationFailure | Conflict | RepositoryFailure
type CreateResult interface {
	Outcome
	createResult()
}

// UpdateResult = Success | ValidationFailure | NotFound | Conflict | RepositoryFailure
type UpdateResult interface {
	Outcome
	updateResult()
}

// DeleteResult = Deleted | NotFound | RepositoryFailure
type DeleteResult interface {
	Outcome
	deleteResult()
}

// ExistsResult = Success[bool] | RepositoryFailure
type ExistsResult interface {
	Outcome
	existsResult()
}

// GetAllResult = Success[[]E] | RepositoryFailure
type GetAllResult interface {
	Outcome
	getAllResult()
}

// GetOneResult = Success[E] | NotFound | RepositoryFailure
type GetOneResult interface {
	Outcome
	getOneResult()
}

// Success carries the value an operation produced.
type Success[T any] struct {
	Value T
}

func (Success[T]) Kind() string  { return KindSuccess }
func (Success[T]) createResult() {}
func (Success[T]) updateResult() {}
func (Success[T]) existsResult() {}
func (Success[T]) getAllResult() {}
func (Success[T]) getOneResult() {}

// Deleted reports a successful delete.
type Deleted struct{}

func (Deleted) Kind() string  { return KindSuccess }
func (Deleted) deleteResult() {}

// ValidationFailure reports input rejected before any store interaction.
type ValidationFailure struct {
	Err validation.FieldError
}

func (ValidationFailure) Kind() string  { return KindValidationFailure }
func (ValidationFailure) createResult() {}
func (ValidationFailure) updateResult() {}

// NotFound reports that the addressed record does not exist.
type NotFound struct{}

func (NotFound) Kind() string  { return KindNotFound }
func (NotFound) updateResult() {}
func (NotFound) deleteResult() {}
func (NotFound) getOneResult() {}

// Conflict reports that a record with a colliding unique value exists.
// Field names the colliding field when known.
type Conflict struct {
	Field string
}

func (Conflict) Kind() string  { return KindConflict }
func (Conflict) createResult() {}
func (Conflict) updateResult() {}

// RepositoryFailure reports a storage failure. Cause is the error the write (or read)
// returned; reconciliation never replaces it.
type RepositoryFailure struct {
	Cause error
}

func (RepositoryFailure) Kind() string  { return KindRepositoryFailure }
func (RepositoryFailure) createResult() {}
func (RepositoryFailure) updateResult() {}
func (RepositoryFailure) deleteResult() {}
func (RepositoryFailure) existsResult() {}
func (RepositoryFailure) getAllResult() {}
func (RepositoryFailure) getOneResult() {}

// Unexpected builds the panic value for a type switch that met an unhandled case.
func Unexpected(o any) error {
	return fmt.Errorf("result: unexpected outcome %T", o)
}
