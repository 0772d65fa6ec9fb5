package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credfacil/promotora-backend/internal/pkg/apierr"
	perrors "github.com/credfacil/promotora-backend/internal/pkg/errors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// RespondServiceError maps the domain error kinds onto HTTP statuses. The two
// guard refusals keep their full message so the UI can tell the user to
// reverse the payment first instead of showing a generic failure.
func RespondServiceError(c *gin.Context, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		RespondError(c, apiErr.Status, apiErr.Code, apiErr)
		return
	}

	switch {
	case errors.Is(err, perrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, perrors.ErrValidation):
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
	case errors.Is(err, perrors.ErrInvalidState):
		RespondError(c, http.StatusConflict, "invalid_state", err)
	case errors.Is(err, perrors.ErrBlockedDeletion):
		RespondError(c, http.StatusBadRequest, "blocked_deletion", err)
	case errors.Is(err, perrors.ErrBlockedCancellation):
		RespondError(c, http.StatusBadRequest, "blocked_cancellation", err)
	case errors.Is(err, perrors.ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
