package register

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"registeruser/internal/domain"
	"registeruser/internal/pkg/id"

	"go.uber.org/zap"
)

var errNoAccount = errors.New("identity service returned no account")

// Settings is the backend target of the profile write.
type Settings struct {
	DatabaseID   string
	CollectionID string

	// CompensateOrphans deletes the new account when the profile write fails.
	CompensateOrphans bool
}

// Service contains the registration flow: validate, create account, create profile.
type Service struct {
	accounts  AccountService
	documents DocumentService
	settings  Settings
	log       *zap.Logger

	now   func() time.Time
	newID func() string
}

func NewService(accounts AccountService, documents DocumentService, settings Settings, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		accounts:  accounts,
		documents: documents,
		settings:  settings,
		log:       log,
		now:       time.Now,
		newID:     id.Unique,
	}
}

// Handle runs one invocation end to end and returns the JSON body with its status.
// body may be raw text (string, []byte, json.RawMessage) or an already parsed object.
func (s *Service) Handle(ctx context.Context, body any) (any, int) {
	payload, err := s.Parse(body)
	if err != nil {
		return ErrorResponse{Error: err.Error()}, http.StatusBadRequest
	}

	res, err := s.Register(ctx, payload)
	if err != nil {
		return FailureResponse{Success: false, Error: err.Error()}, http.StatusBadRequest
	}

	return SuccessResponse{Success: true, Message: MsgRegistered, UserID: res.UserID}, http.StatusOK
}

// Parse extracts the registration fields from the request body.
func (s *Service) Parse(body any) (Payload, error) {
	var raw []byte
	switch b := body.(type) {
	case nil:
		return Payload{}, ErrEmptyBody
	case string:
		raw = []byte(b)
	case []byte:
		raw = b
	case json.RawMessage:
		raw = b
	case map[string]any:
		if b == nil {
			return Payload{}, ErrEmptyBody
		}
		return payloadFromObject(b), nil
	case Payload:
		return b, nil
	case *Payload:
		if b == nil {
			return Payload{}, ErrEmptyBody
		}
		return *b, nil
	default:
		return Payload{}, ErrInvalidPayload
	}

	if len(raw) == 0 {
		return Payload{}, ErrEmptyBody
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return Payload{}, invalidPayload(err)
	}
	if obj == nil {
		return Payload{}, ErrInvalidPayload
	}
	return payloadFromObject(obj), nil
}

// payloadFromObject reads fields by name. Non-string values count as absent.
func payloadFromObject(obj map[string]any) Payload {
	str := func(key string) string {
		v, _ := obj[key].(string)
		return v
	}
	return Payload{
		Email:    str("email"),
		Password: str("password"),
		Name:     str("name"),
		Role:     str("role"),
		Phone:    str("phone"),
	}
}

// Register creates the account, then the profile document that references it.
// Without CompensateOrphans a profile failure leaves the account in place.
func (s *Service) Register(ctx context.Context, p Payload) (*Result, error) {
	s.log.Info("creating account", zap.String("email", p.Email))

	account, err := s.accounts.Create(ctx, s.newID(), p.Email, normalizePhone(p.Phone), p.Password, p.Name)
	if err == nil && account == nil {
		err = errNoAccount
	}
	if err != nil {
		return nil, s.fail(failed(err))
	}

	s.log.Info("creating profile", zap.String("user_id", account.ID))

	profile := domain.NewProfile(account.ID, domain.UserRole(p.Role), p.Phone, s.now())
	if _, err := s.documents.CreateDocument(ctx, s.settings.DatabaseID, s.settings.CollectionID, s.newID(), profile); err != nil {
		return nil, s.fail(s.rollback(ctx, account.ID, err))
	}

	return &Result{UserID: account.ID}, nil
}

func (s *Service) rollback(ctx context.Context, accountID string, cause error) *Error {
	if !s.settings.CompensateOrphans {
		s.log.Warn("profile creation failed, account left without profile", zap.String("user_id", accountID))
		return failed(cause)
	}

	if err := s.accounts.Delete(ctx, accountID); err != nil {
		s.log.Error("account rollback failed", zap.String("user_id", accountID), zap.Error(err))
		return &Error{Kind: PartialFailure, Err: &compensationError{cause: cause, compensate: err}}
	}

	s.log.Info("account rolled back", zap.String("user_id", accountID))
	return failed(cause)
}

func (s *Service) fail(err *Error) error {
	s.log.Error("registration failed", zap.Stringer("kind", err.Kind), zap.String("error", err.Error()))
	return err
}

// normalizePhone keeps only E.164-style numbers; the identity backend rejects anything else.
func normalizePhone(phone string) *string {
	if !strings.HasPrefix(phone, "+") {
		return nil
	}
	return &phone
}
