package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/credfacil/promotora-backend/internal/http/response"
	"github.com/credfacil/promotora-backend/internal/pkg/ctxutil"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
	"github.com/credfacil/promotora-backend/internal/services"
)

type PartyHandler struct {
	log   *logger.Logger
	party services.PartyService
}

func NewPartyHandler(log *logger.Logger, party services.PartyService) *PartyHandler {
	return &PartyHandler{
		log:   log.With("handler", "PartyHandler"),
		party: party,
	}
}

type createCustomerRequest struct {
	Name     string `json:"name"`
	Document string `json:"document"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// POST /api/customers
func (h *PartyHandler) CreateCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	customer, err := h.party.CreateCustomer(c.Request.Context(), req.Name, req.Document, req.Phone, req.Email)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"customer": customer})
}

// GET /api/customers/:id
func (h *PartyHandler) GetCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_customer_id", err)
		return
	}
	customer, err := h.party.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"customer": customer})
}

// GET /api/customers
func (h *PartyHandler) ListCustomers(c *gin.Context) {
	customers, err := h.party.ListCustomers(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"customers": customers})
}

type createSellerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Admin bool   `json:"admin"`
}

// POST /api/sellers (admin only)
func (h *PartyHandler) CreateSeller(c *gin.Context) {
	actor := ctxutil.GetActor(c.Request.Context())
	if actor == nil || !actor.Admin {
		response.RespondError(c, http.StatusForbidden, "forbidden", nil)
		return
	}
	var req createSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	seller, err := h.party.CreateSeller(c.Request.Context(), req.Name, req.Email, req.Admin)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"seller": seller})
}

// GET /api/sellers/:id
func (h *PartyHandler) GetSeller(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_seller_id", err)
		return
	}
	seller, err := h.party.GetSeller(c.Request.Context(), sellerID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"seller": seller})
}

// GET /api/sellers
func (h *PartyHandler) ListSellers(c *gin.Context) {
	sellers, err := h.party.ListSellers(c.Request.Context())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"sellers": sellers})
}
