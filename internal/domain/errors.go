package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// AuthError covers credential mismatch on login and webhook token mismatch.
type AuthError struct {
	Msg string
	Err error
}

func (e AuthError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "unauthorized"
}

func (e AuthError) Unwrap() error { return e.Err }

// GatewayError means the payment provider rejected the request or was
// unreachable. The caller must not assume a payment has been initiated.
type GatewayError struct {
	Msg string
	Err error
}

func (e GatewayError) Error() string {
	if e.Msg != "" && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "payment gateway error"
}

func (e GatewayError) Unwrap() error { return e.Err }

// ConsistencyError marks a multi-step write sequence that partially
// completed (room-facility resync, checkout). No automatic rollback;
// the failing step is surfaced so the operation can be re-run.
type ConsistencyError struct {
	Op  string
	Err error
}

func (e ConsistencyError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s partially applied: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("partially applied: %v", e.Err)
}

func (e ConsistencyError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsAuth(err error) bool {
	var target AuthError
	return errors.As(err, &target)
}

func IsGateway(err error) bool {
	var target GatewayError
	return errors.As(err, &target)
}

func IsConsistency(err error) bool {
	var target ConsistencyError
	return errors.As(err, &target)
}
