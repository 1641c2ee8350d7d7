package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/schemagraph/internal/ir"
)

// DispatchErrorCode categorizes registry configuration defects.
type DispatchErrorCode string

const (
	// ErrCodeNoExecutor indicates no registered executor matches the tags.
	ErrCodeNoExecutor DispatchErrorCode = "NO_EXECUTOR"

	// ErrCodeAmbiguousExecutor indicates more than one executor matches.
	ErrCodeAmbiguousExecutor DispatchErrorCode = "AMBIGUOUS_EXECUTOR"

	// ErrCodeDuplicateExecutor indicates a second registration for a tag.
	ErrCodeDuplicateExecutor DispatchErrorCode = "DUPLICATE_EXECUTOR"
)

// DispatchError reports a registry defect. It is never tolerated.
type DispatchError struct {
	Code DispatchErrorCode

	// Types are the tags of the offending operation, or the tag being
	// registered for ErrCodeDuplicateExecutor.
	Types []ir.Type

	// Matches lists the registered tags that matched (ambiguous dispatch).
	Matches []ir.Type
}

func (e *DispatchError) Error() string {
	switch e.Code {
	case ErrCodeAmbiguousExecutor:
		return fmt.Sprintf("%s: operation tags %v match executors %v", e.Code, e.Types, e.Matches)
	case ErrCodeDuplicateExecutor:
		return fmt.Sprintf("%s: an executor is already registered for %v", e.Code, e.Types)
	default:
		return fmt.Sprintf("%s: no executor registered for operation tags %v", e.Code, e.Types)
	}
}

// PreconditionError is a failed ExecutorResult promoted to an error by the
// store. Message is a complete sentence meant for the end user.
type PreconditionError struct {
	Operation ir.Type
	Message   string
}

func (e *PreconditionError) Error() string {
	return e.Message
}

// IsDispatchError reports whether err is (or wraps) a DispatchError.
func IsDispatchError(err error) bool {
	var de *DispatchError
	return errors.As(err, &de)
}

// IsPreconditionError reports whether err is (or wraps) a PreconditionError.
func IsPreconditionError(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
