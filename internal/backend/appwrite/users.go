package appwrite

import (
	"context"
	"net/http"
	"net/url"

	"registeruser/internal/domain"
)

type Users struct {
	client *Client
}

type createUserRequest struct {
	UserID   string  `json:"userId"`
	Email    string  `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Password string  `json:"password,omitempty"`
	Name     string  `json:"name,omitempty"`
}

// Create registers a new user. A nil phone is left out of the request body.
func (u *Users) Create(ctx context.Context, id, email string, phone *string, password, name string) (*domain.Account, error) {
	var account domain.Account
	err := u.client.call(ctx, http.MethodPost, "/users", createUserRequest{
		UserID:   id,
		Email:    email,
		Phone:    phone,
		Password: password,
		Name:     name,
	}, &account)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (u *Users) Delete(ctx context.Context, id string) error {
	return u.client.call(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}
