package backend

import (
	"errors"
	"fmt"

	smtypes "github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/smithy-go"
)

// ErrorKind classifies a backend fetch failure.
type ErrorKind string

const (
	ErrNotFound     ErrorKind = "not-found"
	ErrAccessDenied ErrorKind = "access-denied"
	ErrThrottled    ErrorKind = "throttled"
	ErrOther        ErrorKind = "other"
)

// Error is a classified fetch failure for a single identifier.
type Error struct {
	Kind  ErrorKind
	Store string // "secretsmanager" or "ssm"
	ID    string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", e.Store, e.ID, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newError wraps an AWS SDK error with its taxonomy kind.
func newError(store, id string, err error) *Error {
	return &Error{Kind: classify(err), Store: store, ID: id, Err: err}
}

// classify maps AWS SDK errors onto the fetch-error taxonomy. Typed
// service exceptions are checked first, then generic API error codes.
func classify(err error) ErrorKind {
	var smNotFound *smtypes.ResourceNotFoundException
	var ssmNotFound *ssmtypes.ParameterNotFound
	if errors.As(err, &smNotFound) || errors.As(err, &ssmNotFound) {
		return ErrNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ResourceNotFoundException", "ParameterNotFound":
			return ErrNotFound
		case "AccessDeniedException", "AccessDenied", "UnauthorizedOperation":
			return ErrAccessDenied
		case "ThrottlingException", "Throttling", "TooManyRequestsException", "RequestLimitExceeded":
			return ErrThrottled
		}
	}

	return ErrOther
}
