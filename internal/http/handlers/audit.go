package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/credfacil/promotora-backend/internal/data/repos"
	"github.com/credfacil/promotora-backend/internal/http/response"
	"github.com/credfacil/promotora-backend/internal/pkg/ctxutil"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
	"github.com/credfacil/promotora-backend/internal/services"
)

type AuditHandler struct {
	log   *logger.Logger
	audit services.AuditService
}

func NewAuditHandler(log *logger.Logger, audit services.AuditService) *AuditHandler {
	return &AuditHandler{
		log:   log.With("handler", "AuditHandler"),
		audit: audit,
	}
}

// GET /api/audit-events (admin only)
func (h *AuditHandler) List(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil || !actor.Admin {
		response.RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	filter := repos.AuditEventFilter{Module: c.Query("module")}
	if raw := c.Query("actor_id"); raw != "" {
		actorID, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_actor_id", err)
			return
		}
		filter.ActorID = &actorID
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			response.RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		filter.Limit = limit
	}
	events, err := h.audit.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"events": events})
}
