package server

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/middleware"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/service"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := s.auth.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		User:  userResponse{ID: user.ID, Email: user.Email, DisplayName: user.DisplayName},
		Token: token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		User:  userResponse{ID: user.ID, Email: user.Email, DisplayName: user.DisplayName},
		Token: token,
	})
}

// handleMe echoes the identity claims carried by the session token.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, meResponse{
		ID:    middleware.GetUserID(r.Context()),
		Email: middleware.GetEmail(r.Context()),
	})
}

func (s *Server) handleCreateLedger(w http.ResponseWriter, r *http.Request) {
	var req createLedgerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Name == "" || req.Currency == "" {
		writeError(w, badRequestf("name and currency are required"))
		return
	}
	kind := models.LedgerKind(req.Kind)
	if kind == "" {
		kind = models.LedgerBalance
	}

	ledger, err := s.ledgers.Create(r.Context(), middleware.GetUserID(r.Context()), req.Name, kind, req.Currency, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLedgerResponse(ledger))
}

func (s *Server) handleListLedgers(w http.ResponseWriter, r *http.Request) {
	ledgers, err := s.ledgers.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]ledgerResponse, 0, len(ledgers))
	for _, l := range ledgers {
		resp = append(resp, toLedgerResponse(l))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	ledger, err := s.ledgers.Get(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLedgerResponse(ledger))
}

func (s *Server) handleAddMembers(w http.ResponseWriter, r *http.Request) {
	var req addMembersRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	ledger, err := s.ledgers.AddMembers(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"), req.UserIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toLedgerResponse(ledger))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, badRequestf("amount %q is not a decimal", req.Amount))
		return
	}

	splits := make([]models.SplitItem, 0, len(req.Splits))
	for _, item := range req.Splits {
		split, err := item.toModel()
		if err != nil {
			writeError(w, err)
			return
		}
		splits = append(splits, split)
	}

	txn, computed, err := s.transactions.Create(r.Context(), middleware.GetUserID(r.Context()), service.TransactionInput{
		LedgerID: r.PathValue("id"),
		Type:     models.TransactionType(req.Type),
		Currency: req.Currency,
		Amount:   amount,
		Category: req.Category,
		PayerID:  req.PayerID,
		Rounding: models.RoundingStrategy(req.Rounding),
		Tail:     models.TailStrategy(req.Tail),
		Private:  req.Private,
		Splits:   splits,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(txn, computed))
}

func (s *Server) handleCreateLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, badRequestf("amount %q is not a decimal", req.Amount))
		return
	}

	txn, err := s.transactions.CreateLoan(r.Context(), middleware.GetUserID(r.Context()), service.LoanInput{
		LedgerID:   r.PathValue("id"),
		CreditorID: req.CreditorID,
		DebtorID:   req.DebtorID,
		Currency:   req.Currency,
		Amount:     amount,
		Category:   req.Category,
		Private:    req.Private,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(txn, nil))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.transactions.List(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]transactionResponse, 0, len(txns))
	for _, txn := range txns {
		resp = append(resp, toTransactionResponse(txn, nil))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTransactionSplits(w http.ResponseWriter, r *http.Request) {
	splits, err := s.transactions.Splits(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]splitResponse, 0, len(splits))
	for _, split := range splits {
		resp = append(resp, toSplitResponse(split))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Delete(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSettlement(w http.ResponseWriter, r *http.Request) {
	plan, err := s.settlements.Plan(r.Context(), middleware.GetUserID(r.Context()), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettlementResponse(plan))
}
