package domain

import "errors"

var (
	// ErrUnexpectedFormat means the endpoint returned a result object
	// that carries neither a reply nor an error field.
	ErrUnexpectedFormat = errors.New("unexpected response format")

	// ErrNoReply means the response carried neither a result object
	// nor a top-level error object.
	ErrNoReply = errors.New("no reply in response")

	// ErrHistoryNotCleared means the clear endpoint did not confirm success.
	ErrHistoryNotCleared = errors.New("history not cleared")
)

// ServerError is an application-level failure reported by the reply
// endpoint itself, either inside the result object or at the top level.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}
