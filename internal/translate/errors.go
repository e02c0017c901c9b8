package translate

import "fmt"

// Kind classifies why an upload did not produce a usable Result.
type Kind int

const (
	// KindTransport means no response was received: the service was unreachable,
	// the request timed out, or the photo could not be read to build the request.
	KindTransport Kind = iota + 1

	// KindServerRejected means a response arrived with a non-2xx status code.
	KindServerRejected

	// KindMalformedResponse means the body could not be parsed into a Result.
	KindMalformedResponse

	// KindApplicationFailure means the body parsed but reported status "failure".
	KindApplicationFailure
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindServerRejected:
		return "server_rejected"
	case KindMalformedResponse:
		return "malformed_response"
	case KindApplicationFailure:
		return "application_failure"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrTransport          = &Error{Kind: KindTransport}
	ErrServerRejected     = &Error{Kind: KindServerRejected}
	ErrMalformedResponse  = &Error{Kind: KindMalformedResponse}
	ErrApplicationFailure = &Error{Kind: KindApplicationFailure}
)

// Error is a classified upload failure.
type Error struct {
	Kind Kind

	// StatusCode is the HTTP status for KindServerRejected, 0 otherwise.
	StatusCode int

	// Message is what the service said, if anything.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// UserMessage is the text to show the person holding the phone.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindTransport:
		return "Could not reach the translation service. Check your connection and try again."
	case KindServerRejected:
		if e.Message != "" {
			return fmt.Sprintf("The translation service returned an error (%d): %s", e.StatusCode, e.Message)
		}
		return fmt.Sprintf("The translation service returned an error (%d). Please try again.", e.StatusCode)
	case KindApplicationFailure:
		if e.Message != "" {
			return e.Message
		}
		return "The menu could not be translated. Try another photo."
	default:
		return "Failed to process the image. Please try again."
	}
}
