package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/handlers"
	"github.com/daiwaprint/erp_backend/middlewares"
	"github.com/daiwaprint/erp_backend/models"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

const defaultPort = "8080"

var tracer = otel.Tracer("daiwaprint-erp")

// requestTracing opens a span per request so handler work nests under the
// same trace as the gorm spans.
func requestTracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.FullPath()
		if name == "" {
			name = c.Request.URL.Path
		}
		ctx, span := tracer.Start(c.Request.Context(), c.Request.Method+" "+name)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		span.End()
	}
}

func customNotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
}

// customErrorLogger logs only requests that accumulated gin errors.
func customErrorLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) > 0 {
			logger.Error(c.Errors.String())
		}
	}
}

func registerRoutes(r *gin.Engine) {
	r.POST("/auth/login", handlers.Login)

	api := r.Group("/api", middlewares.Auth())

	api.GET("/session", handlers.Session)
	api.GET("/users", handlers.ListUsers)

	api.GET("/jobs", handlers.ListJobs)
	api.POST("/jobs", handlers.CreateJob)
	api.GET("/jobs/:id", handlers.GetJob)
	api.PUT("/jobs/:id", handlers.UpdateJob)
	api.DELETE("/jobs/:id", handlers.DeleteJob)
	api.PUT("/jobs/:id/ready-to-invoice", handlers.SetJobReadyToInvoice)
	api.GET("/jobs/export", handlers.ExportJobLedger)

	api.GET("/customers", handlers.ListCustomers)
	api.POST("/customers", handlers.CreateCustomer)
	api.GET("/customers/:id", handlers.GetCustomer)
	api.PUT("/customers/:id", handlers.UpdateCustomer)
	api.DELETE("/customers/:id", handlers.DeleteCustomer)
	api.POST("/customers/:id/enrich", handlers.EnrichCustomer)
	api.POST("/customers/:id/sales-email", handlers.DraftSalesEmail)
	api.POST("/customers/:id/proposal-section", handlers.ProposalSection)

	api.GET("/leads", handlers.ListLeads)
	api.POST("/leads", handlers.CreateLead)
	api.GET("/leads/:id", handlers.GetLead)
	api.PUT("/leads/:id", handlers.UpdateLead)
	api.DELETE("/leads/:id", handlers.DeleteLead)
	api.POST("/leads/:id/convert", handlers.ConvertLead)
	api.POST("/leads/:id/investigate", handlers.InvestigateLead)
	api.POST("/leads/:id/proposal-package", handlers.LeadProposalPackage)
	api.POST("/leads/:id/reply-draft", handlers.DraftLeadReply)
	api.POST("/leads/analyze", handlers.AnalyzeLeads)

	api.GET("/estimates", handlers.ListEstimates)
	api.POST("/estimates", handlers.CreateEstimate)
	api.GET("/estimates/:id", handlers.GetEstimate)
	api.PUT("/estimates/:id", handlers.UpdateEstimate)
	api.DELETE("/estimates/:id", handlers.DeleteEstimate)
	api.POST("/estimates/:id/accept", handlers.AcceptEstimate)
	api.POST("/estimates/parse-items", handlers.ParseEstimateLineItems)
	api.POST("/estimates/draft", handlers.DraftEstimate)

	api.GET("/invoices", handlers.ListInvoices)
	api.POST("/invoices/from-jobs", handlers.CreateInvoiceFromJobs)
	api.GET("/invoices/:id", handlers.GetInvoice)
	api.PUT("/invoices/:id/paid", handlers.MarkInvoicePaid)

	api.GET("/purchase-orders", handlers.ListPurchaseOrders)
	api.POST("/purchase-orders", handlers.CreatePurchaseOrder)
	api.PUT("/purchase-orders/:id/receive", handlers.ReceivePurchaseOrder)
	api.PUT("/purchase-orders/:id/cancel", handlers.CancelPurchaseOrder)

	api.GET("/inventory-items", handlers.ListInventoryItems)
	api.POST("/inventory-items", handlers.CreateInventoryItem)
	api.PUT("/inventory-items/:id", handlers.UpdateInventoryItem)
	api.DELETE("/inventory-items/:id", handlers.DeleteInventoryItem)

	api.GET("/projects", handlers.ListProjects)
	api.POST("/projects", handlers.CreateProject)
	api.POST("/projects/from-inputs", handlers.CreateProjectFromInputs)
	api.GET("/projects/:id", handlers.GetProject)
	api.PUT("/projects/:id", handlers.UpdateProject)
	api.DELETE("/projects/:id", handlers.DeleteProject)
	api.POST("/projects/:id/attachments", handlers.UploadProjectAttachment)
	api.DELETE("/projects/:id/attachments/:attachmentId", handlers.DeleteProjectAttachment)

	api.GET("/approval-routes", handlers.ListApprovalRoutes)
	api.POST("/approval-routes", handlers.CreateApprovalRoute)
	api.PUT("/approval-routes/:id", handlers.UpdateApprovalRoute)
	api.DELETE("/approval-routes/:id", handlers.DeleteApprovalRoute)

	api.GET("/applications", handlers.ListApplications)
	api.POST("/applications", handlers.SubmitApplication)
	api.GET("/applications/:id", handlers.GetApplication)
	api.POST("/applications/:id/approve", handlers.ApproveApplication)
	api.POST("/applications/:id/reject", handlers.RejectApplication)
	api.POST("/applications/parse-document", handlers.ParseApprovalDocument)
	api.POST("/applications/chat", handlers.ApplicationChat)

	api.GET("/inbox", handlers.ListInboxItems)
	api.POST("/inbox/upload", handlers.UploadInboxFile)
	api.GET("/inbox/:id", handlers.GetInboxItem)
	api.POST("/inbox/:id/approve", handlers.ApproveInboxItem)
	api.POST("/inbox/:id/retry", handlers.RetryInboxItem)
	api.DELETE("/inbox/:id", handlers.DeleteInboxItem)

	api.GET("/account-items", handlers.ListAccountItems)
	api.POST("/account-items", handlers.SaveAccountItem)
	api.PUT("/account-items/:id/deactivate", handlers.DeactivateAccountItem)
	api.GET("/journal-entries", handlers.ListJournalEntries)

	api.GET("/departments", handlers.ListDepartments)
	api.POST("/departments", handlers.CreateDepartment)
	api.GET("/titles", handlers.ListTitles)
	api.POST("/titles", handlers.CreateTitle)
	api.GET("/allocation-divisions", handlers.ListAllocationDivisions)
	api.POST("/allocation-divisions", handlers.CreateAllocationDivision)
	api.GET("/payment-recipients", handlers.ListPaymentRecipients)
	api.POST("/payment-recipients", handlers.CreatePaymentRecipient)

	api.POST("/ai/suggest-job", handlers.SuggestJobParameters)
	api.POST("/ai/analyze-company", handlers.AnalyzeCompany)
	api.POST("/ai/market-research", handlers.MarketResearch)
	api.POST("/ai/suggest-journal", handlers.SuggestJournal)
	api.POST("/ai/dashboard-suggestion", handlers.DashboardSuggestion)
	api.POST("/ai/daily-report", handlers.SummarizeDailyReport)
	api.POST("/ai/weekly-report", handlers.SummarizeWeeklyReport)
	api.POST("/ai/closing-summary", handlers.ClosingSummary)
	api.GET("/ai/history", handlers.ListAnalysisHistory)

	api.GET("/bug-reports", handlers.ListBugReports)
	api.POST("/bug-reports", handlers.CreateBugReport)

	admin := api.Group("", middlewares.AdminOnly())
	admin.POST("/users", handlers.RegisterUser)
	admin.PUT("/bug-reports/:id/status", handlers.SetBugReportStatus)
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start the HTTP server ASAP so Cloud Run considers the revision healthy.
	// Until the DB is ready, app endpoints answer 503.
	r := gin.New()
	r.Use(middlewares.CorrelationId())
	r.Use(func(c *gin.Context) {
		if c.Request.URL.Path == "/healthz" {
			c.Status(http.StatusNoContent)
			c.Abort()
			return
		}
		if config.GetDB() == nil {
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		c.Next()
	})
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	corsConfig := cors.DefaultConfig()
	allowedOrigins := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if strings.EqualFold(strings.TrimSpace(os.Getenv("GO_ENV")), "production") {
		if allowedOrigins == "" {
			corsConfig.AllowOrigins = []string{}
		} else {
			corsConfig.AllowOrigins = splitAndTrim(allowedOrigins)
		}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddAllowMethods("GET", "POST", "PUT", "DELETE", "OPTIONS")
	corsConfig.AddAllowHeaders("Origin", "Content-Type", "Authorization", "X-Correlation-Id")
	corsConfig.AddExposeHeaders("Content-Length", "Content-Disposition")
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.Use(requestTracing())
	r.Use(customErrorLogger(logger))
	r.Use(gin.Recovery())
	registerRoutes(r)
	r.NoRoute(customNotFoundHandler)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedis()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow running migrations
	// as a separate job instead.
	if !strings.EqualFold(strings.TrimSpace(os.Getenv("SKIP_MIGRATIONS")), "true") {
		if err := models.MigrateDatabase(); err != nil {
			logger.WithFields(logrus.Fields{"field": "migrations"}).Panic(err.Error())
		}
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
	}).Info("listening on http://localhost:", port)
	log.Println("Server started successfully")

	select {
	case <-sigCtx.Done():
		// graceful shutdown below
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}

func splitAndTrim(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
