package main

import (
	"fmt"
	"os"
	"strings"

	redisclient "github.com/credfacil/promotora-backend/internal/clients/redis"
	"github.com/credfacil/promotora-backend/internal/data/db"
	"github.com/credfacil/promotora-backend/internal/data/repos"
	httpserver "github.com/credfacil/promotora-backend/internal/http"
	httpH "github.com/credfacil/promotora-backend/internal/http/handlers"
	httpMW "github.com/credfacil/promotora-backend/internal/http/middleware"
	"github.com/credfacil/promotora-backend/internal/pkg/logger"
	"github.com/credfacil/promotora-backend/internal/services"
	"github.com/credfacil/promotora-backend/internal/utils"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos...")
	customerRepo := repos.NewCustomerRepo(thePG, log)
	sellerRepo := repos.NewSellerRepo(thePG, log)
	bankRepo := repos.NewBankRepo(thePG, log)
	organRepo := repos.NewOrganRepo(thePG, log)
	loanTypeRepo := repos.NewLoanTypeRepo(thePG, log)
	loanGroupRepo := repos.NewLoanGroupRepo(thePG, log)
	rateTableRepo := repos.NewRateTableRepo(thePG, log)
	loanRepo := repos.NewLoanRepo(thePG, log)
	commissionRepo := repos.NewCommissionRepo(thePG, log)
	transactionRepo := repos.NewFinancialTransactionRepo(thePG, log)
	auditEventRepo := repos.NewAuditEventRepo(thePG, log)

	// Redis is optional: without it the period summary just skips caching.
	var cache redisclient.Cache
	if os.Getenv("REDIS_ADDR") != "" {
		cache, err = redisclient.NewCache(log)
		if err != nil {
			log.Warn("Redis init failed, continuing without summary cache", "error", err)
			cache = nil
		}
	}

	// Services
	log.Info("Setting up services...")
	auditService := services.NewAuditService(thePG, log, auditEventRepo)
	commissionService := services.NewCommissionService(thePG, log, commissionRepo, transactionRepo, auditService, cache)
	loanService := services.NewLoanService(thePG, log, loanRepo, commissionRepo, transactionRepo, commissionService, auditService)
	financialService := services.NewFinancialService(thePG, log, transactionRepo, commissionRepo, auditService)
	partyService := services.NewPartyService(thePG, log, customerRepo, sellerRepo)
	catalogService := services.NewCatalogService(thePG, log, bankRepo, organRepo, loanTypeRepo, loanGroupRepo, rateTableRepo)

	// Handlers
	log.Info("Setting up handlers...")
	loanHandler := httpH.NewLoanHandler(log, loanService)
	commissionHandler := httpH.NewCommissionHandler(log, commissionService)
	transactionHandler := httpH.NewTransactionHandler(log, financialService)
	partyHandler := httpH.NewPartyHandler(log, partyService)
	catalogHandler := httpH.NewCatalogHandler(log, catalogService)
	auditHandler := httpH.NewAuditHandler(log, auditService)

	authMiddleware := httpMW.NewAuthMiddleware(log, jwtSecretKey)

	var origins []string
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}

	server := httpserver.NewServer(httpserver.RouterConfig{
		Log:            log,
		AuthMiddleware: authMiddleware,
		AllowedOrigins: origins,

		LoanHandler:        loanHandler,
		CommissionHandler:  commissionHandler,
		TransactionHandler: transactionHandler,
		PartyHandler:       partyHandler,
		CatalogHandler:     catalogHandler,
		AuditHandler:       auditHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := server.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
