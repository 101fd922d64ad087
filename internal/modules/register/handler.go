package register

import (
	"context"
	"errors"
	"net/http"

	"registeruser/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// MaxBodyBytes caps the registration request body.
const MaxBodyBytes = 1 << 20

// Handler exposes the registration flow over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts POST /register on the group.
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup) {
	v1.POST("/register", h.Register)
}

// Register creates an account and its profile from the JSON body.
func (h *Handler) Register(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	raw, err := c.GetRawData()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
			return
		}
		response.Error(c, http.StatusBadRequest, MsgInvalidPayload)
		return
	}

	// once started, a registration runs to completion even if the caller disconnects
	ctx := context.WithoutCancel(c.Request.Context())

	switch body, status := h.service.Handle(ctx, raw); b := body.(type) {
	case ErrorResponse:
		response.Error(c, status, b.Error)
	case FailureResponse:
		response.Failure(c, status, b.Error)
	default:
		c.JSON(status, body)
	}
}
