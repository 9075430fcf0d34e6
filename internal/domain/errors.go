package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSecretNotFound      = errors.New("secret not found")
	ErrValidation          = errors.New("validation failed")
	ErrInvalidSelection    = errors.New("invalid selection")
	ErrInvalidCatalog      = errors.New("invalid catalog payload")
	ErrCatalogNotReady     = errors.New("catalog not ready")
	ErrSubmissionInFlight  = errors.New("submission already in flight")
	ErrUnknownPanelKey     = errors.New("unknown panel key")
	ErrUnknownToolVariant  = errors.New("unknown tool variant")
	ErrUnsupportedResource = errors.New("unsupported attachment")
)

// ValidationError is a local, pre-network rejection. It never reaches the
// gateway.
type ValidationError struct {
	Fields []string
	Detail string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrValidation.Error())
	if len(e.Fields) > 0 {
		b.WriteString(": missing or invalid ")
		b.WriteString(strings.Join(e.Fields, ", "))
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// TransportError is returned by gateway reads on network failure or a
// non-success status.
type TransportError struct {
	Method string
	Path   string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type FailureKind string

const (
	FailureTransport FailureKind = "transport"
	FailureServer    FailureKind = "server"
	FailureDecode    FailureKind = "decode"
)

// GatewayError describes a failed write. By the time a caller sees it, the
// user has already been notified.
type GatewayError struct {
	Kind        FailureKind
	Method      string
	Path        string
	Status      int
	Title       string
	Description string
	Err         error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("%s %s: %s failure", e.Method, e.Path, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Title != "" {
		msg += ": " + e.Title
	}
	return msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
