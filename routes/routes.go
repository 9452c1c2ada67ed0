package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"assetdesk/handlers"
	"assetdesk/middleware"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

func RegisterRoutes(r *mux.Router) {
	// ====================
	// HEALTH CHECK (Public)
	// ====================
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)

	// ====================
	// AUTHENTICATION (Public)
	// ====================
	r.HandleFunc("/api/auth/register", handlers.Register).Methods(MethodsPostOnly...)
	r.Handle("/api/auth/login", middleware.LoginRateLimit(
		http.HandlerFunc(handlers.Login))).Methods(MethodsPostOnly...)

	// ====================
	// PROTECTED API ROUTES
	// ====================
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.AuthMiddleware)

	apiRouter.HandleFunc("/auth/me", handlers.GetCurrentUser).Methods(MethodsGetOnly...)

	// ====================
	// EMPLOYEES
	// ====================
	apiRouter.HandleFunc("/employees", handlers.ListEmployees).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/employees", handlers.CreateEmployee).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/employees/{id}", handlers.GetEmployee).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/employees/{id}", handlers.UpdateEmployee).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/employees/{id}", handlers.DeleteEmployee).Methods(MethodsDeleteOnly...)
	apiRouter.HandleFunc("/employees/{id}/devices", handlers.GetEmployeeDevices).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/employees/{id}/licenses", handlers.GetEmployeeLicenses).Methods(MethodsGetOnly...)

	// ====================
	// DEVICES
	// ====================
	apiRouter.HandleFunc("/devices", handlers.ListDevices).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/devices", handlers.CreateDevice).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/devices/{id}", handlers.GetDevice).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/devices/{id}", handlers.UpdateDevice).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/devices/{id}", handlers.DeleteDevice).Methods(MethodsDeleteOnly...)

	// ====================
	// LICENSES
	// ====================
	apiRouter.HandleFunc("/licenses", handlers.ListLicenses).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/licenses", handlers.CreateLicense).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/licenses/{id}", handlers.GetLicense).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/licenses/{id}", handlers.UpdateLicense).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/licenses/{id}", handlers.DeleteLicense).Methods(MethodsDeleteOnly...)

	// ====================
	// DERIVED DATA & MONITORING
	// ====================
	apiRouter.HandleFunc("/options", handlers.GetOptions).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/dashboard", handlers.GetDashboardSummary).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/audit", handlers.ListAuditLogs).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/events", handlers.ServeEvents)
}
