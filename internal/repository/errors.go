package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Messages mirror the hosted identity/document backends so callers see the
// same text whichever driver is configured.
var (
	ErrAccountExists      = errors.New("User already exists")
	ErrAccountNotFound    = errors.New("User with the requested ID could not be found")
	ErrInvalidEmail       = errors.New("Invalid `email` param: Value must be a valid email address")
	ErrInvalidPassword    = errors.New("Invalid `password` param: Password must be between 8 and 256 characters long")
	ErrInvalidPhone       = errors.New("Invalid `phone` param: Phone number must start with a '+' can have a maximum of fifteen digits")
	ErrDatabaseNotFound   = errors.New("Database not found")
	ErrCollectionNotFound = errors.New("Collection not found")
	ErrDocumentExists     = errors.New("Document with the requested ID already exists")
	ErrInvalidDocument    = errors.New("Invalid document structure")
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// modernc sqlite errors are not translated by the gorm sqlite dialector.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
