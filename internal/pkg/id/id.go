package id

import (
	"strings"

	"github.com/google/uuid"
)

// Unique returns a fresh 32-char hex identifier. Backends accept up to 36
// chars of [a-zA-Z0-9._-] not starting with a special char, so the dashes
// of the canonical UUID form are stripped.
func Unique() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
