package repository

import (
	"context"
	"strings"
	"time"

	"registeruser/internal/domain"
	"registeruser/internal/pkg/validator"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 256
)

// AccountRepository is the SQL implementation of the identity backend.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

type accountModel struct {
	ID           string    `gorm:"column:id;primaryKey;size:36"`
	Email        string    `gorm:"column:email;uniqueIndex;size:320;not null"`
	Phone        *string   `gorm:"column:phone;uniqueIndex;size:16"`
	Name         string    `gorm:"column:name;size:128"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	Status       bool      `gorm:"column:status;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (accountModel) TableName() string { return "accounts" }

func toDomainAccount(m accountModel) *domain.Account {
	var phone string
	if m.Phone != nil {
		phone = *m.Phone
	}
	return &domain.Account{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		Phone:     phone,
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}

// Create stores a new account. Email and phone must be unique.
func (r *AccountRepository) Create(ctx context.Context, id, email string, phone *string, password, name string) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validator.Var(email, "required,email") {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLen || len(password) > maxPasswordLen {
		return nil, ErrInvalidPassword
	}
	if phone != nil && !validator.Var(*phone, "e164") {
		return nil, ErrInvalidPhone
	}

	exists, err := r.exists(ctx, id, email, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAccountExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	m := accountModel{
		ID:           id,
		Email:        email,
		Phone:        phone,
		Name:         name,
		PasswordHash: string(hash),
		Status:       true,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAccountExists
		}
		return nil, err
	}

	return toDomainAccount(m), nil
}

func (r *AccountRepository) exists(ctx context.Context, id, email string, phone *string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&accountModel{}).Where("id = ? OR email = ?", id, email)
	if phone != nil {
		q = q.Or("phone = ?", *phone)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&accountModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
