// Package http wires the BloodBridge REST API: route registration,
// bearer-token authentication, role enforcement and JSON shaping.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/repository"
	"bloodbridge-backend/internal/security"
	"bloodbridge-backend/internal/service"
)

// RouterDeps carries everything the router needs; all services are
// constructed once at startup and injected here.
type RouterDeps struct {
	Store       repository.Store
	Tokens      security.TokenManager
	Auth        service.AuthService
	Donor       service.DonorService
	Inventory   service.InventoryService
	Requests    service.RequestService
	CORSOrigins []string
}

// NewRouter builds the full route table. Write operations declare
// their allowed-role sets; read operations under /api accept any
// authenticated identity.
func NewRouter(deps RouterDeps) http.Handler {
	authHandler := NewAuthHandler(deps.Auth)
	donorHandler := NewDonorHandler(deps.Donor)
	inventoryHandler := NewInventoryHandler(deps.Inventory)
	requestHandler := NewRequestHandler(deps.Requests)
	healthHandler := NewHealthHandler(deps.Store)

	authmw := NewAuthMiddleware(deps.Tokens)
	managerOnly := authmw.RequireRoles(domain.RoleManager)
	donorOnly := authmw.RequireRoles(domain.RoleDonor)
	hospitalOrManager := authmw.RequireRoles(domain.RoleHospital, domain.RoleManager)

	r := mux.NewRouter()
	r.HandleFunc("/", healthHandler.Index).Methods(http.MethodGet)
	r.HandleFunc("/health", healthHandler.Health).Methods(http.MethodGet)

	auth := r.PathPrefix("/api/auth").Subrouter()
	auth.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)

	donor := r.PathPrefix("/api/donor").Subrouter()
	donor.Use(authmw.RequireAuth)
	donor.Handle("/eligibility", donorOnly(http.HandlerFunc(donorHandler.Eligibility))).Methods(http.MethodGet)
	donor.Handle("/schedule", donorOnly(http.HandlerFunc(donorHandler.Schedule))).Methods(http.MethodPost)
	donor.Handle("/matching-requests", donorOnly(http.HandlerFunc(donorHandler.MatchingRequests))).Methods(http.MethodGet)
	donor.Handle("/update-last-donation",
		authmw.RequireRoles(domain.RoleDonor, domain.RoleManager)(http.HandlerFunc(donorHandler.UpdateLastDonation))).
		Methods(http.MethodPut)

	inventory := r.PathPrefix("/api/inventory").Subrouter()
	inventory.Use(authmw.RequireAuth)
	// /low-stock is registered before /{bloodType} so it wins the match.
	inventory.Handle("/low-stock", managerOnly(http.HandlerFunc(inventoryHandler.LowStock))).Methods(http.MethodGet)
	inventory.HandleFunc("", inventoryHandler.List).Methods(http.MethodGet)
	inventory.Handle("", managerOnly(http.HandlerFunc(inventoryHandler.Update))).Methods(http.MethodPut)
	inventory.HandleFunc("/{bloodType}", inventoryHandler.Get).Methods(http.MethodGet)

	requests := r.PathPrefix("/api/requests").Subrouter()
	requests.Use(authmw.RequireAuth)
	requests.Handle("", hospitalOrManager(http.HandlerFunc(requestHandler.Create))).Methods(http.MethodPost)
	requests.HandleFunc("", requestHandler.List).Methods(http.MethodGet)
	requests.HandleFunc("/{requestID}", requestHandler.Get).Methods(http.MethodGet)
	requests.Handle("/{requestID}", hospitalOrManager(http.HandlerFunc(requestHandler.Update))).Methods(http.MethodPut)
	requests.Handle("/{requestID}", hospitalOrManager(http.HandlerFunc(requestHandler.Delete))).Methods(http.MethodDelete)

	return WithCORS(r, deps.CORSOrigins)
}
