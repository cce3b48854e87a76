// Package server exposes the services as a JSON-over-HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/divvy/internal/auth"
	"github.com/mmynk/divvy/internal/calculator"
	"github.com/mmynk/divvy/internal/middleware"
	"github.com/mmynk/divvy/internal/service"
	"github.com/mmynk/divvy/internal/storage"
)

// Server holds the services behind the HTTP API.
type Server struct {
	auth         *service.AuthService
	ledgers      *service.LedgerService
	transactions *service.TransactionService
	settlements  *service.SettlementService
	jwtManager   *auth.JWTManager
}

// New creates a server over the given services.
func New(
	authSvc *service.AuthService,
	ledgers *service.LedgerService,
	transactions *service.TransactionService,
	settlements *service.SettlementService,
	jwtManager *auth.JWTManager,
) *Server {
	return &Server{
		auth:         authSvc,
		ledgers:      ledgers,
		transactions: transactions,
		settlements:  settlements,
		jwtManager:   jwtManager,
	}
}

// Handler builds the full middleware-wrapped route tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)

	api := http.NewServeMux()
	api.HandleFunc("GET /me", s.handleMe)
	api.HandleFunc("POST /ledgers", s.handleCreateLedger)
	api.HandleFunc("GET /ledgers", s.handleListLedgers)
	api.HandleFunc("GET /ledgers/{id}", s.handleGetLedger)
	api.HandleFunc("POST /ledgers/{id}/members", s.handleAddMembers)
	api.HandleFunc("POST /ledgers/{id}/transactions", s.handleCreateTransaction)
	api.HandleFunc("GET /ledgers/{id}/transactions", s.handleListTransactions)
	api.HandleFunc("POST /ledgers/{id}/loans", s.handleCreateLoan)
	api.HandleFunc("GET /ledgers/{id}/settlement", s.handleSettlement)
	api.HandleFunc("GET /transactions/{id}/splits", s.handleTransactionSplits)
	api.HandleFunc("DELETE /transactions/{id}", s.handleDeleteTransaction)
	mux.Handle("/", middleware.RequireAuth(s.jwtManager)(api))

	// OptionalAuth sits outermost so the logging middleware sees the
	// user identity on every request, public routes included.
	// RequireAuth still gates the api mux.
	return middleware.OptionalAuth(s.jwtManager)(
		middleware.Logging(middleware.CORS(middleware.Metrics(mux))),
	)
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNotMember):
		status = http.StatusForbidden
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrEmailExists):
		status = http.StatusConflict
	case isValidationError(err):
		status = http.StatusBadRequest
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func isValidationError(err error) bool {
	for _, candidate := range []error{
		calculator.ErrMissingSplits,
		calculator.ErrDuplicateParticipant,
		calculator.ErrNoIncludedParticipant,
		calculator.ErrInvalidSplitMethod,
		calculator.ErrPercentSumMismatch,
		calculator.ErrExactSumMismatch,
		calculator.ErrInvalidWeight,
		calculator.ErrCurrencyMismatch,
		service.ErrInvalidAmount,
		service.ErrInvalidType,
		service.ErrNotBalanceLedger,
		service.ErrSameParty,
		service.ErrMissingPayer,
		auth.ErrWeakPassword,
		errBadRequest,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequestf("invalid request body: %v", err)
	}
	return nil
}
