package main

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/crmkit/go-crm/auth"
	"github.com/crmkit/go-crm/gate"
	"github.com/crmkit/go-crm/internal/config"
	"github.com/crmkit/go-crm/internal/handlers"
	"github.com/crmkit/go-crm/internal/pdf"
	"github.com/crmkit/go-crm/internal/policy"
	"github.com/crmkit/go-crm/internal/services"
	"github.com/crmkit/go-crm/internal/share"
)

const roleCacheTTL = time.Minute

// NewApp wires handlers, the session middleware and the role gate into
// the application handler.
func NewApp(dbConn *gorm.DB, cfg *config.Config) http.Handler {
	authGate := policy.NewAuthGate(dbConn, roleCacheTTL)

	invoiceSvc := services.NewInvoiceService(
		dbConn,
		pdf.NewGenerator(cfg.Invoice.Currency),
		cfg.Invoice.OutputDir,
	)
	reportSvc := services.NewReportService(dbConn)
	linker := share.NewLinker(cfg.WhatsApp.BaseURL, cfg.WhatsApp.CountryCode)

	authH := handlers.NewAuthHandler(dbConn)
	userH := handlers.NewUserHandler(dbConn)
	clientH := handlers.NewClientHandler(dbConn)
	followUpH := handlers.NewFollowUpHandler(dbConn)
	productH := handlers.NewProductHandler(dbConn)
	quotationH := handlers.NewQuotationHandler(dbConn, linker)
	invoiceH := handlers.NewInvoiceHandler(dbConn, invoiceSvc)
	dashboardH := handlers.NewDashboardHandler(reportSvc)

	admin := authGate.Require(gate.RoleAdmin)
	salesTeam := authGate.Require(gate.RoleSales, gate.RoleManager)
	accounting := authGate.Require(gate.RoleAccountant, gate.RoleManager)
	management := authGate.Require(gate.RoleAdmin, gate.RoleManager)
	anyUser := authGate.Require()

	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", authH.Login)
	// GET kept alongside POST so a plain link can log out.
	mux.HandleFunc("POST /logout", authH.Logout)
	mux.HandleFunc("GET /logout", authH.Logout)

	mux.Handle("GET /users", admin(http.HandlerFunc(userH.List)))
	mux.Handle("POST /users", admin(http.HandlerFunc(userH.Create)))

	mux.Handle("GET /clients", salesTeam(http.HandlerFunc(clientH.List)))
	mux.Handle("POST /clients", salesTeam(http.HandlerFunc(clientH.Create)))

	mux.Handle("GET /followups", salesTeam(http.HandlerFunc(followUpH.List)))
	mux.Handle("POST /followups", salesTeam(http.HandlerFunc(followUpH.Create)))
	mux.Handle("POST /followups/{id}/complete", salesTeam(http.HandlerFunc(followUpH.Complete)))

	mux.Handle("GET /products", anyUser(http.HandlerFunc(productH.List)))
	mux.Handle("POST /products", anyUser(http.HandlerFunc(productH.Create)))

	mux.Handle("GET /quotations", anyUser(http.HandlerFunc(quotationH.List)))
	mux.Handle("POST /quotations", anyUser(http.HandlerFunc(quotationH.Create)))
	mux.Handle("GET /quotations/{id}/share", anyUser(http.HandlerFunc(quotationH.Share)))

	mux.Handle("GET /invoices", accounting(http.HandlerFunc(invoiceH.List)))
	mux.Handle("POST /invoices", accounting(http.HandlerFunc(invoiceH.Create)))
	mux.Handle("GET /invoices/{id}", accounting(http.HandlerFunc(invoiceH.View)))
	mux.Handle("GET /invoices/{id}/pdf", accounting(http.HandlerFunc(invoiceH.PDF)))

	mux.Handle("GET /dashboard", anyUser(http.HandlerFunc(dashboardH.Dashboard)))
	mux.Handle("GET /reports", management(http.HandlerFunc(dashboardH.Reports)))

	return auth.Middleware(mux)
}
