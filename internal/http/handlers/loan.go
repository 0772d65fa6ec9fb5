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

type LoanHandler struct {
	log   *logger.Logger
	loans services.LoanService
}

func NewLoanHandler(log *logger.Logger, loans services.LoanService) *LoanHandler {
	return &LoanHandler{
		log:   log.With("handler", "LoanHandler"),
		loans: loans,
	}
}

type createLoanRequest struct {
	CustomerID uuid.UUID  `json:"customer_id"`
	SellerID   *uuid.UUID `json:"seller_id"`

	BankID      *uuid.UUID `json:"bank_id"`
	OrganID     *uuid.UUID `json:"organ_id"`
	LoanTypeID  *uuid.UUID `json:"loan_type_id"`
	LoanGroupID *uuid.UUID `json:"loan_group_id"`
	RateTableID *uuid.UUID `json:"rate_table_id"`

	GrossValue       decimal.Decimal `json:"gross_value"`
	NetValue         decimal.Decimal `json:"net_value"`
	InstallmentCount int             `json:"installment_count"`
	InstallmentValue decimal.Decimal `json:"installment_value"`
	StartDate        time.Time       `json:"start_date"`

	CommissionBasis      string          `json:"commission_basis"`
	CommissionBasisValue decimal.Decimal `json:"commission_basis_value"`
}

// POST /api/loans
func (h *LoanHandler) Create(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}

	// Non-admin actors always register sales under their own seller record.
	sellerID := actor.SellerID
	if actor.Admin && req.SellerID != nil {
		sellerID = *req.SellerID
	}

	loan, err := h.loans.Create(c.Request.Context(), services.CreateLoanInput{
		CustomerID:           req.CustomerID,
		SellerID:             sellerID,
		BankID:               req.BankID,
		OrganID:              req.OrganID,
		LoanTypeID:           req.LoanTypeID,
		LoanGroupID:          req.LoanGroupID,
		RateTableID:          req.RateTableID,
		GrossValue:           req.GrossValue,
		NetValue:             req.NetValue,
		InstallmentCount:     req.InstallmentCount,
		InstallmentValue:     req.InstallmentValue,
		StartDate:            req.StartDate,
		CommissionBasis:      req.CommissionBasis,
		CommissionBasisValue: req.CommissionBasisValue,
	}, actor.ID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"loan": loan})
}

// GET /api/loans/:id
func (h *LoanHandler) Get(c *gin.Context) {
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_loan_id", err)
		return
	}
	loan, err := h.loans.Get(c.Request.Context(), loanID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	actor := ctxutil.GetActor(c.Request.Context())
	if actor != nil && !actor.Admin && loan.SellerID != actor.SellerID {
		response.RespondError(c, http.StatusNotFound, "not_found", nil)
		return
	}
	response.RespondOK(c, gin.H{"loan": loan})
}

// GET /api/loans
func (h *LoanHandler) List(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	filter := repos.LoanFilter{Status: c.Query("status")}
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
	loans, err := h.loans.List(c.Request.Context(), filter)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"loans": loans})
}

type updateLoanRequest struct {
	BankID      *uuid.UUID `json:"bank_id"`
	OrganID     *uuid.UUID `json:"organ_id"`
	LoanTypeID  *uuid.UUID `json:"loan_type_id"`
	LoanGroupID *uuid.UUID `json:"loan_group_id"`
	RateTableID *uuid.UUID `json:"rate_table_id"`

	NetValue         *decimal.Decimal `json:"net_value"`
	InstallmentCount *int             `json:"installment_count"`
	InstallmentValue *decimal.Decimal `json:"installment_value"`
}

// PATCH /api/loans/:id
func (h *LoanHandler) Update(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_loan_id", err)
		return
	}
	var req updateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	loan, err := h.loans.Update(c.Request.Context(), loanID, services.UpdateLoanInput{
		BankID:           req.BankID,
		OrganID:          req.OrganID,
		LoanTypeID:       req.LoanTypeID,
		LoanGroupID:      req.LoanGroupID,
		RateTableID:      req.RateTableID,
		NetValue:         req.NetValue,
		InstallmentCount: req.InstallmentCount,
		InstallmentValue: req.InstallmentValue,
	}, actor.ID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"loan": loan})
}

type updateLoanStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/loans/:id/status
func (h *LoanHandler) UpdateStatus(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_loan_id", err)
		return
	}
	var req updateLoanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	loan, err := h.loans.UpdateStatus(c.Request.Context(), loanID, req.Status, actor.ID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"loan": loan})
}

// DELETE /api/loans/:id
func (h *LoanHandler) Delete(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_loan_id", err)
		return
	}
	if err := h.loans.Delete(c.Request.Context(), loanID, actor.ID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted": true})
}
