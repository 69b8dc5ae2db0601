package model

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindTransport covers DNS, connect, TLS, timeout and cancellation failures.
	KindTransport Kind = iota + 1
	// KindProtocol is a non-success HTTP status from either endpoint.
	KindProtocol
	// KindDecode is a malformed archive response or bytes that are not an image.
	KindDecode
	// KindNotFound means the archive has no record for the requested offset.
	KindNotFound
	// KindFilesystem is a failure to create or write an output file.
	KindFilesystem
)

// String returns a short human readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport error"
	case KindProtocol:
		return "protocol error"
	case KindDecode:
		return "decode error"
	case KindNotFound:
		return "not found"
	case KindFilesystem:
		return "filesystem error"
	default:
		return "unknown error"
	}
}

// Sentinels for errors.Is matching on the kind alone.
var (
	ErrTransport  = &Error{Kind: KindTransport}
	ErrProtocol   = &Error{Kind: KindProtocol}
	ErrDecode     = &Error{Kind: KindDecode}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrFilesystem = &Error{Kind: KindFilesystem}
)

// Error is the single error type surfaced by the fetch pipeline.
//
// Every failure below the command layer is reported as an *Error so the
// caller can branch on Kind and still reach the underlying cause through
// errors.Unwrap:
//
//	var perr *model.Error
//	if errors.As(err, &perr) && perr.Kind == model.KindProtocol {
//	    fmt.Println("server answered", perr.Status)
//	}
//
// Or, when only the kind matters:
//
//	if errors.Is(err, model.ErrNotFound) { ... }
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Offset is the archive day offset being processed. Only meaningful
	// when HasOffset is true.
	Offset    int
	HasOffset bool

	// Status is the HTTP status code for KindProtocol.
	Status int

	// URL is the request URL or file path involved, if any.
	URL string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.HasOffset {
		msg = fmt.Sprintf("offset %d: %s", e.Offset, msg)
	}
	if e.Kind == KindProtocol && e.Status != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.Status)
	}
	if e.URL != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.URL)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError builds an *Error of the given kind wrapping cause.
func NewError(kind Kind, url string, cause error) *Error {
	return &Error{Kind: kind, URL: url, Err: cause}
}

// StatusError builds a KindProtocol error for an unexpected HTTP status.
func StatusError(url string, status int) *Error {
	return &Error{Kind: KindProtocol, URL: url, Status: status}
}

// AtOffset stamps the day offset onto err.
//
// An *Error anywhere in the chain is copied with Offset set; any other
// error is classified as KindTransport, which is what unclassified failures
// from the HTTP stack are. A nil err stays nil.
func AtOffset(err error, offset int) error {
	if err == nil {
		return nil
	}
	var perr *Error
	if errors.As(err, &perr) {
		stamped := *perr
		stamped.Offset = offset
		stamped.HasOffset = true
		return &stamped
	}
	return &Error{Kind: KindTransport, Offset: offset, HasOffset: true, Err: err}
}
