package domain

import "time"

type UserRole string

const (
	RoleClient UserRole = "client"
)

// Account is the identity-service view of a registered user.
type Account struct {
	ID        string    `json:"$id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"$createdAt"`
}

// Document is a record persisted by the document service.
type Document struct {
	ID           string         `json:"$id"`
	DatabaseID   string         `json:"$databaseId"`
	CollectionID string         `json:"$collectionId"`
	CreatedAt    time.Time      `json:"$createdAt"`
	Data         map[string]any `json:"-"`
}

// Profile links a role and contact metadata to an account id.
type Profile struct {
	UserID    string   `json:"userId"`
	Role      UserRole `json:"role"`
	Phone     string   `json:"phone"`
	CreatedAt string   `json:"createdAt"`
}

// ProfileTimeLayout is ISO-8601 UTC with millisecond precision.
const ProfileTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// NewProfile stamps createdAt in UTC.
func NewProfile(userID string, role UserRole, phone string, now time.Time) Profile {
	if role == "" {
		role = RoleClient
	}
	return Profile{
		UserID:    userID,
		Role:      role,
		Phone:     phone,
		CreatedAt: now.UTC().Format(ProfileTimeLayout),
	}
}
