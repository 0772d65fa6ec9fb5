package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/credfacil/promotora-backend/internal/http/handlers"
	httpMW "github.com/credfacil/promotora-backend/internal/http/middleware"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware
	AllowedOrigins []string

	LoanHandler        *httpH.LoanHandler
	CommissionHandler  *httpH.CommissionHandler
	TransactionHandler *httpH.TransactionHandler
	PartyHandler       *httpH.PartyHandler
	CatalogHandler     *httpH.CatalogHandler
	AuditHandler       *httpH.AuditHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	r.GET("/healthcheck", httpH.Healthcheck)

	api := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			api.Use(cfg.AuthMiddleware.RequireActor())
		}

		// Loans
		if cfg.LoanHandler != nil {
			api.POST("/loans", cfg.LoanHandler.Create)
			api.GET("/loans", cfg.LoanHandler.List)
			api.GET("/loans/:id", cfg.LoanHandler.Get)
			api.PATCH("/loans/:id", cfg.LoanHandler.Update)
			api.PUT("/loans/:id/status", cfg.LoanHandler.UpdateStatus)
			api.DELETE("/loans/:id", cfg.LoanHandler.Delete)
		}

		// Commissions
		if cfg.CommissionHandler != nil {
			api.GET("/commissions", cfg.CommissionHandler.List)
			api.GET("/commissions/summary", cfg.CommissionHandler.Summary)
			api.POST("/commissions/:id/approve", cfg.CommissionHandler.Approve)
			api.POST("/commissions/:id/cancel", cfg.CommissionHandler.Cancel)
		}

		// Financial transactions
		if cfg.TransactionHandler != nil {
			api.GET("/transactions", cfg.TransactionHandler.List)
			api.POST("/transactions/:id/pay", cfg.TransactionHandler.Pay)
			api.PUT("/transactions/:id/amount", cfg.TransactionHandler.EditPaid)
			api.POST("/transactions/:id/cancel-payment", cfg.TransactionHandler.CancelPayment)
			api.POST("/transactions/:id/reverse", cfg.TransactionHandler.Reverse)
		}

		// Customers & sellers
		if cfg.PartyHandler != nil {
			api.POST("/customers", cfg.PartyHandler.CreateCustomer)
			api.GET("/customers", cfg.PartyHandler.ListCustomers)
			api.GET("/customers/:id", cfg.PartyHandler.GetCustomer)
			api.POST("/sellers", cfg.PartyHandler.CreateSeller)
			api.GET("/sellers", cfg.PartyHandler.ListSellers)
			api.GET("/sellers/:id", cfg.PartyHandler.GetSeller)
		}

		// Catalog
		if cfg.CatalogHandler != nil {
			api.POST("/catalog/banks", cfg.CatalogHandler.CreateBank)
			api.GET("/catalog/banks", cfg.CatalogHandler.ListBanks)
			api.POST("/catalog/organs", cfg.CatalogHandler.CreateOrgan)
			api.GET("/catalog/organs", cfg.CatalogHandler.ListOrgans)
			api.POST("/catalog/loan-types", cfg.CatalogHandler.CreateLoanType)
			api.GET("/catalog/loan-types", cfg.CatalogHandler.ListLoanTypes)
			api.POST("/catalog/loan-groups", cfg.CatalogHandler.CreateLoanGroup)
			api.GET("/catalog/loan-groups", cfg.CatalogHandler.ListLoanGroups)
			api.POST("/catalog/rate-tables", cfg.CatalogHandler.CreateRateTable)
			api.GET("/catalog/rate-tables", cfg.CatalogHandler.ListRateTables)
		}

		// Audit trail
		if cfg.AuditHandler != nil {
			api.GET("/audit-events", cfg.AuditHandler.List)
		}
	}

	return r
}
