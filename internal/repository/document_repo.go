package repository

import (
	"context"
	"encoding/json"
	"time"

	"registeruser/internal/domain"

	"gorm.io/gorm"
)

// Collection names a database/collection pair documents may be written to.
type Collection struct {
	DatabaseID   string
	CollectionID string
}

// DocumentRepository is the SQL implementation of the document backend.
// Writes are only accepted for the configured collections.
type DocumentRepository struct {
	db          *gorm.DB
	collections map[string]map[string]struct{}
}

func NewDocumentRepository(db *gorm.DB, collections ...Collection) *DocumentRepository {
	known := make(map[string]map[string]struct{})
	for _, c := range collections {
		if known[c.DatabaseID] == nil {
			known[c.DatabaseID] = make(map[string]struct{})
		}
		known[c.DatabaseID][c.CollectionID] = struct{}{}
	}
	return &DocumentRepository{db: db, collections: known}
}

type documentModel struct {
	ID           string    `gorm:"column:id;primaryKey;size:36"`
	DatabaseID   string    `gorm:"column:database_id;primaryKey;size:36"`
	CollectionID string    `gorm:"column:collection_id;primaryKey;size:36"`
	UserID       *string   `gorm:"column:user_id;index;size:36"`
	Data         string    `gorm:"column:data;type:text;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (documentModel) TableName() string { return "documents" }

// CreateDocument stores data (any JSON object) under documentID. A string
// userId attribute is indexed so profiles can be joined to accounts.
func (r *DocumentRepository) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (*domain.Document, error) {
	collections, ok := r.collections[databaseID]
	if !ok {
		return nil, ErrDatabaseNotFound
	}
	if _, ok := collections[collectionID]; !ok {
		return nil, ErrCollectionNotFound
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, ErrInvalidDocument
	}
	var attrs map[string]any
	if err := json.Unmarshal(raw, &attrs); err != nil || attrs == nil {
		return nil, ErrInvalidDocument
	}

	m := documentModel{
		ID:           documentID,
		DatabaseID:   databaseID,
		CollectionID: collectionID,
		Data:         string(raw),
	}
	if uid, ok := attrs["userId"].(string); ok && uid != "" {
		m.UserID = &uid
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDocumentExists
		}
		return nil, err
	}

	return &domain.Document{
		ID:           m.ID,
		DatabaseID:   m.DatabaseID,
		CollectionID: m.CollectionID,
		CreatedAt:    m.CreatedAt,
		Data:         attrs,
	}, nil
}

// ListByUser returns the documents of a collection that reference userID.
func (r *DocumentRepository) ListByUser(ctx context.Context, databaseID, collectionID, userID string) ([]domain.Document, error) {
	var rows []documentModel
	err := r.db.WithContext(ctx).
		Where("database_id = ? AND collection_id = ? AND user_id = ?", databaseID, collectionID, userID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	docs := make([]domain.Document, 0, len(rows))
	for _, m := range rows {
		var attrs map[string]any
		if err := json.Unmarshal([]byte(m.Data), &attrs); err != nil {
			return nil, err
		}
		docs = append(docs, domain.Document{
			ID:           m.ID,
			DatabaseID:   m.DatabaseID,
			CollectionID: m.CollectionID,
			CreatedAt:    m.CreatedAt,
			Data:         attrs,
		})
	}
	return docs, nil
}
