package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/credfacil/promotora-backend/internal/http/response"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
	"github.com/credfacil/promotora-backend/internal/services"
)

type CatalogHandler struct {
	log     *logger.Logger
	catalog services.CatalogService
}

func NewCatalogHandler(log *logger.Logger, catalog services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		log:     log.With("handler", "CatalogHandler"),
		catalog: catalog,
	}
}

type createBankRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// POST /api/catalog/banks
func (h *CatalogHandler) CreateBank(c *gin.Context) {
	var req createBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	bank, err := h.catalog.CreateBank(c.Request.Context(), req.Code, req.Name)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"bank": bank})
}

// GET /api/catalog/banks
func (h *CatalogHandler) ListBanks(c *gin.Context) {
	banks, err := h.catalog.ListBanks(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"banks": banks})
}

type createNamedRequest struct {
	Name string `json:"name"`
}

// POST /api/catalog/organs
func (h *CatalogHandler) CreateOrgan(c *gin.Context) {
	var req createNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	organ, err := h.catalog.CreateOrgan(c.Request.Context(), req.Name)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"organ": organ})
}

// GET /api/catalog/organs
func (h *CatalogHandler) ListOrgans(c *gin.Context) {
	organs, err := h.catalog.ListOrgans(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"organs": organs})
}

// POST /api/catalog/loan-types
func (h *CatalogHandler) CreateLoanType(c *gin.Context) {
	var req createNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	loanType, err := h.catalog.CreateLoanType(c.Request.Context(), req.Name)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"loan_type": loanType})
}

// GET /api/catalog/loan-types
func (h *CatalogHandler) ListLoanTypes(c *gin.Context) {
	loanTypes, err := h.catalog.ListLoanTypes(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"loan_types": loanTypes})
}

// POST /api/catalog/loan-groups
func (h *CatalogHandler) CreateLoanGroup(c *gin.Context) {
	var req createNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	loanGroup, err := h.catalog.CreateLoanGroup(c.Request.Context(), req.Name)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"loan_group": loanGroup})
}

// GET /api/catalog/loan-groups
func (h *CatalogHandler) ListLoanGroups(c *gin.Context) {
	loanGroups, err := h.catalog.ListLoanGroups(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"loan_groups": loanGroups})
}

type createRateTableRequest struct {
	BankID uuid.UUID       `json:"bank_id"`
	Name   string          `json:"name"`
	Factor decimal.Decimal `json:"factor"`
}

// POST /api/catalog/rate-tables
func (h *CatalogHandler) CreateRateTable(c *gin.Context) {
	var req createRateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	rateTable, err := h.catalog.CreateRateTable(c.Request.Context(), req.BankID, req.Name, req.Factor)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"rate_table": rateTable})
}

// GET /api/catalog/rate-tables
func (h *CatalogHandler) ListRateTables(c *gin.Context) {
	rateTables, err := h.catalog.ListRateTables(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"rate_tables": rateTables})
}
