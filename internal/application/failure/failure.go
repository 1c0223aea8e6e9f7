// Package failure carries the request-terminal error taxonomy shared by the
// application services. Each failure holds the message the transport layer
// may show a caller; internal detail travels only through Unwrap and the
// server-side log.
package failure

import "fmt"

type Kind int

const (
	KindNotFound Kind = iota
	KindForbidden
	KindBadRequest
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

type Failure struct {
	Kind    Kind
	Message string
	cause   error
}

func (f *Failure) Error() string {
	if f.cause != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.cause)
	}
	return f.Message
}

func (f *Failure) Unwrap() error { return f.cause }

func NotFound(message string) *Failure {
	return &Failure{Kind: KindNotFound, Message: message}
}

// Forbidden carries a fixed message on purpose: an authorization refusal
// never explains itself.
func Forbidden() *Failure {
	return &Failure{Kind: KindForbidden, Message: "Forbidden."}
}

func BadRequest(message string) *Failure {
	return &Failure{Kind: KindBadRequest, Message: message}
}

// Internal pairs the caller-visible generic message with the underlying
// error; the cause is for logs only.
func Internal(message string, cause error) *Failure {
	return &Failure{Kind: KindInternal, Message: message, cause: cause}
}
