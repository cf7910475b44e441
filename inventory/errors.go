package inventory

import "errors"

// ErrNotFound is returned when a document or lookup entry does not exist.
var ErrNotFound = errors.New("not found")

// RejectedError is a logical failure reported by the backend
// (ok:false with a message). Its message is shown to the user verbatim.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "request rejected by backend"
	}
	return e.Message
}

// RejectionMessage extracts the verbatim backend message from err, if
// err is a rejection carrying one.
func RejectionMessage(err error) (string, bool) {
	var rej *RejectedError
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message, true
	}
	return "", false
}
