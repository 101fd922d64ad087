package register

import (
	"errors"
	"fmt"
)

// Kind classifies registration failures for the HTTP mapping layer.
type Kind int

const (
	EmptyBody Kind = iota + 1
	InvalidPayload
	RegistrationFailed
	// PartialFailure means the profile write failed and the compensating
	// account delete failed too, so an orphaned account remains.
	PartialFailure
)

const (
	MsgEmptyBody      = "Corps de la requête vide"
	MsgInvalidPayload = "JSON invalide"
	MsgBodyTooLarge   = "Corps de la requête trop volumineux"
	MsgRegistered     = "Utilisateur et profil créés !"
)

func (k Kind) String() string {
	switch k {
	case EmptyBody:
		return "EmptyBody"
	case InvalidPayload:
		return "InvalidPayload"
	case RegistrationFailed:
		return "RegistrationFailed"
	case PartialFailure:
		return "PartialFailure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the tagged error returned by Service. Err is the underlying
// backend error, nil for locally detected input failures.
type Error struct {
	Kind Kind
	Err  error
}

var (
	ErrEmptyBody      = &Error{Kind: EmptyBody}
	ErrInvalidPayload = &Error{Kind: InvalidPayload}
)

func (e *Error) Error() string {
	switch e.Kind {
	case EmptyBody:
		return MsgEmptyBody
	case InvalidPayload:
		return MsgInvalidPayload
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind, so errors.Is(err, ErrEmptyBody) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Err == nil && t.Kind == e.Kind
}

func failed(err error) *Error {
	return &Error{Kind: RegistrationFailed, Err: err}
}

func invalidPayload(err error) *Error {
	return &Error{Kind: InvalidPayload, Err: err}
}

// compensationError reports a profile failure whose account rollback also failed.
type compensationError struct {
	cause      error
	compensate error
}

func (e *compensationError) Error() string {
	return fmt.Sprintf("%s (account rollback failed: %s)", e.cause.Error(), e.compensate.Error())
}

func (e *compensationError) Unwrap() []error { return []error{e.cause, e.compensate} }

// KindOf returns the Kind carried by err, or 0 if err is not a registration error.
func KindOf(err error) Kind {
	var regErr *Error
	if errors.As(err, &regErr) {
		return regErr.Kind
	}
	return 0
}
