package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/credfacil/promotora-backend/internal/data/repos"
	"github.com/credfacil/promotora-backend/internal/http/response"
	"github.com/credfacil/promotora-backend/internal/pkg/ctxutil"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
	"github.com/credfacil/promotora-backend/internal/services"
)

type CommissionHandler struct {
	log         *logger.Logger
	commissions services.CommissionService
}

func NewCommissionHandler(log *logger.Logger, commissions services.CommissionService) *CommissionHandler {
	return &CommissionHandler{
		log:         log.With("handler", "CommissionHandler"),
		commissions: commissions,
	}
}

// GET /api/commissions
func (h *CommissionHandler) List(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	filter := repos.CommissionFilter{
		Period: c.Query("period"),
		Status: c.Query("status"),
	}
	if raw := c.Query("seller_id"); raw != "" {
		sellerID, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_seller_id", err)
			return
		}
		filter.SellerID = &sellerID
	}
	if actor != nil && !actor.Admin {
		sellerID := actor.SellerID
		filter.SellerID = &sellerID
	}
	views, err := h.commissions.GetByFilters(c.Request.Context(), filter)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"commissions": views})
}

// POST /api/commissions/:id/approve
func (h *CommissionHandler) Approve(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	commissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_commission_id", err)
		return
	}
	commission, err := h.commissions.Approve(c.Request.Context(), commissionID, actor.ID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"commission": commission})
}

// POST /api/commissions/:id/cancel
func (h *CommissionHandler) Cancel(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	commissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_commission_id", err)
		return
	}
	commission, err := h.commissions.Cancel(c.Request.Context(), commissionID, actor.ID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"commission": commission})
}

// GET /api/commissions/summary?period=YYYY-MM
func (h *CommissionHandler) Summary(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	period := c.Query("period")
	if period == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_period", nil)
		return
	}
	var sellerID *uuid.UUID
	if raw := c.Query("seller_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_seller_id", err)
			return
		}
		sellerID = &parsed
	}
	if actor != nil && !actor.Admin {
		own := actor.SellerID
		sellerID = &own
	}
	summary, err := h.commissions.PeriodSummary(c.Request.Context(), period, sellerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"summary": summary})
}
