package appwrite

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"registeruser/internal/domain"
)

type Databases struct {
	client *Client
}

type createDocumentRequest struct {
	DocumentID string `json:"documentId"`
	Data       any    `json:"data"`
}

// CreateDocument stores data as a new document in databaseID/collectionID.
func (d *Databases) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (*domain.Document, error) {
	path := "/databases/" + url.PathEscape(databaseID) +
		"/collections/" + url.PathEscape(collectionID) + "/documents"

	var raw map[string]any
	err := d.client.call(ctx, http.MethodPost, path, createDocumentRequest{
		DocumentID: documentID,
		Data:       data,
	}, &raw)
	if err != nil {
		return nil, err
	}
	return toDocument(raw), nil
}

// toDocument splits the $-prefixed system attributes from the user data.
func toDocument(raw map[string]any) *domain.Document {
	doc := &domain.Document{Data: make(map[string]any, len(raw))}
	for k, v := range raw {
		s, _ := v.(string)
		switch k {
		case "$id":
			doc.ID = s
		case "$databaseId":
			doc.DatabaseID = s
		case "$collectionId":
			doc.CollectionID = s
		case "$createdAt":
			if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
				doc.CreatedAt = t
			}
		default:
			if len(k) > 0 && k[0] == '$' {
				continue
			}
			doc.Data[k] = v
		}
	}
	return doc
}
