package register

import (
	"context"

	"registeruser/internal/domain"
)

// AccountService creates identities in the identity backend. A nil phone
// means the field is omitted from the backend call.
type AccountService interface {
	Create(ctx context.Context, id, email string, phone *string, password, name string) (*domain.Account, error)
	Delete(ctx context.Context, id string) error
}

// DocumentService persists records in a database/collection of the document backend.
type DocumentService interface {
	CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (*domain.Document, error)
}
