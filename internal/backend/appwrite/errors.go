package appwrite

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Error is an API failure. Error() is the server message verbatim, which is
// what callers show to end users.
type Error struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Version string `json:"version"`
}

func (e *Error) Error() string { return e.Message }

const (
	TypeUserAlreadyExists  = "user_already_exists"
	TypeCollectionNotFound = "collection_not_found"
)

func decodeError(status int, payload []byte) error {
	apiErr := &Error{Code: status}
	if err := json.Unmarshal(payload, apiErr); err != nil || apiErr.Message == "" {
		msg := strings.TrimSpace(string(payload))
		if msg == "" {
			msg = http.StatusText(status)
		}
		apiErr.Message = msg
	}
	if apiErr.Code == 0 {
		apiErr.Code = status
	}
	return apiErr
}

// IsType reports whether err is an API error of the given type.
func IsType(err error, typ string) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Type == typ
}
