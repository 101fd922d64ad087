package register

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"registeruser/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(s *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s)
	r.POST("/", h.Register)
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doRequest(r http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}

func TestHandler_EmptyBody(t *testing.T) {
	r := setupTestRouter(newTestService(new(mockAccounts), new(mockDocuments), false))

	rr := doRequest(r, "/api/v1/register", nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, map[string]any{"error": "Corps de la requête vide"}, decode(t, rr))
}

func TestHandler_InvalidJSON(t *testing.T) {
	r := setupTestRouter(newTestService(new(mockAccounts), new(mockDocuments), false))

	rr := doRequest(r, "/", []byte(`{"email": "a@b.com",`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, map[string]any{"error": "JSON invalide"}, decode(t, rr))
}

func TestHandler_Success(t *testing.T) {
	accounts := new(mockAccounts)
	documents := new(mockDocuments)
	accounts.On("Create", mock.Anything, "acc-id", "a@b.com", strPtr("+14155550100"), "Secret123", "Ana").
		Return(&domain.Account{ID: "U1"}, nil)
	documents.On("CreateDocument", mock.Anything, "db1", "profiles", "doc-id", mock.Anything).
		Return(&domain.Document{ID: "doc-id"}, nil)
	r := setupTestRouter(newTestService(accounts, documents, false))

	body, _ := json.Marshal(map[string]string{
		"email":    "a@b.com",
		"password": "Secret123",
		"name":     "Ana",
		"role":     "driver",
		"phone":    "+14155550100",
	})
	rr := doRequest(r, "/api/v1/register", body)

	assert.Equal(t, http.StatusOK, rr.Code)
	out := decode(t, rr)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "U1", out["userId"])
	assert.Equal(t, MsgRegistered, out["message"])
	assert.True(t, strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json"))
}

func TestHandler_DownstreamFailure(t *testing.T) {
	accounts := new(mockAccounts)
	accounts.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("User already exists"))
	r := setupTestRouter(newTestService(accounts, new(mockDocuments), false))

	rr := doRequest(r, "/", []byte(`{"email":"a@b.com","password":"Secret123"}`))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, map[string]any{"success": false, "error": "User already exists"}, decode(t, rr))
}

func TestHandler_BodyTooLarge(t *testing.T) {
	r := setupTestRouter(newTestService(new(mockAccounts), new(mockDocuments), false))

	body := `{"email":"a@b.com","name":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
	rr := doRequest(r, "/", []byte(body))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Equal(t, map[string]any{"error": MsgBodyTooLarge}, decode(t, rr))
}

func TestHandler_ClientDisconnectDoesNotAbortProfile(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	accounts := new(mockAccounts)
	documents := new(mockDocuments)
	accounts.On("Create", mock.Anything, "acc-id", "a@b.com", (*string)(nil), "Secret123", "").
		Run(func(mock.Arguments) { cancel() }).
		Return(&domain.Account{ID: "U1"}, nil)
	live := mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil })
	documents.On("CreateDocument", live, "db1", "profiles", "doc-id", mock.Anything).
		Return(&domain.Document{ID: "doc-id"}, nil)
	r := setupTestRouter(newTestService(accounts, documents, false))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com","password":"Secret123"}`)).WithContext(ctx)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Error(t, ctx.Err())
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "U1", decode(t, rr)["userId"])
	documents.AssertExpectations(t)
}
