package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credfacil/promotora-backend/internal/data/repos"
	"github.com/credfacil/promotora-backend/internal/http/response"
	"github.com/credfacil/promotora-backend/internal/pkg/ctxutil"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
	"github.com/credfacil/promotora-backend/internal/services"
)

type TransactionHandler struct {
	log       *logger.Logger
	financial services.FinancialService
}

func NewTransactionHandler(log *logger.Logger, financial services.FinancialService) *TransactionHandler {
	return &TransactionHandler{
		log:       log.With("handler", "TransactionHandler"),
		financial: financial,
	}
}

// GET /api/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	filter := repos.TransactionFilter{
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
	txns, err := h.financial.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"transactions": txns})
}

type payTransactionRequest struct {
	PaidOn   *time.Time `json:"paid_on"`
	ProofRef string     `json:"proof_ref"`
}

// POST /api/transactions/:id/pay
func (h *TransactionHandler) Pay(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_transaction_id", err)
		return
	}
	var req payTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	txn, err := h.financial.Pay(c.Request.Context(), txnID, req.PaidOn, req.ProofRef, actor.ID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"transaction": txn})
}

type editTransactionRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PUT /api/transactions/:id/amount
func (h *TransactionHandler) EditPaid(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_transaction_id", err)
		return
	}
	var req editTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	txn, err := h.financial.EditPaid(c.Request.Context(), txnID, req.Amount, actor.ID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"transaction": txn})
}

// POST /api/transactions/:id/cancel-payment
func (h *TransactionHandler) CancelPayment(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_transaction_id", err)
		return
	}
	txn, err := h.financial.CancelPayment(c.Request.Context(), txnID, actor.ID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"transaction": txn})
}

// POST /api/transactions/:id/reverse
func (h *TransactionHandler) Reverse(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	txnID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_transaction_id", err)
		return
	}
	if err := h.financial.Reverse(c.Request.Context(), txnID, actor.ID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"reversed": true})
}
