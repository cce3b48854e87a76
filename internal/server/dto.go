package server

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/models"
)

// errBadRequest marks request decoding and field validation failures.
var errBadRequest = errors.New("bad request")

func badRequestf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// Amounts travel as JSON strings so nothing is lost to float parsing.

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type userResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// meResponse carries the identity claims of the current session.
type meResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type createLedgerRequest struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Currency string   `json:"currency"`
	Members  []string `json:"members"`
}

type ledgerResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Kind      string   `json:"kind"`
	Currency  string   `json:"currency"`
	Members   []string `json:"members"`
	CreatedBy string   `json:"created_by"`
	CreatedAt int64    `json:"created_at"`
}

func toLedgerResponse(l *models.Ledger) ledgerResponse {
	return ledgerResponse{
		ID:        l.ID,
		Name:      l.Name,
		Kind:      string(l.Kind),
		Currency:  l.Currency,
		Members:   l.Members,
		CreatedBy: l.CreatedBy,
		CreatedAt: l.CreatedAt,
	}
}

type addMembersRequest struct {
	UserIDs []string `json:"user_ids"`
}

type splitItemRequest struct {
	UserID   string `json:"user_id"`
	Method   string `json:"method"`
	Share    string `json:"share"`
	Included bool   `json:"included"`
}

func (r splitItemRequest) toModel() (models.SplitItem, error) {
	share := decimal.Zero
	if r.Share != "" {
		var err error
		if share, err = decimal.NewFromString(r.Share); err != nil {
			return models.SplitItem{}, badRequestf("split share %q is not a decimal", r.Share)
		}
	}
	return models.SplitItem{
		UserID:   r.UserID,
		Method:   models.SplitMethod(r.Method),
		Share:    share,
		Included: r.Included,
	}, nil
}

type createTransactionRequest struct {
	Type     string             `json:"type"`
	Currency string             `json:"currency"`
	Amount   string             `json:"amount"`
	Category string             `json:"category"`
	PayerID  string             `json:"payer_id"`
	Rounding string             `json:"rounding"`
	Tail     string             `json:"tail"`
	Private  bool               `json:"private"`
	Splits   []splitItemRequest `json:"splits"`
}

type createLoanRequest struct {
	CreditorID string `json:"creditor_id"`
	DebtorID   string `json:"debtor_id"`
	Currency   string `json:"currency"`
	Amount     string `json:"amount"`
	Category   string `json:"category"`
	Private    bool   `json:"private"`
}

type transactionResponse struct {
	ID        string          `json:"id"`
	LedgerID  string          `json:"ledger_id"`
	Type      string          `json:"type"`
	Currency  string          `json:"currency"`
	Amount    string          `json:"amount"`
	Category  string          `json:"category,omitempty"`
	PayerID   string          `json:"payer_id,omitempty"`
	CreatedBy string          `json:"created_by"`
	Private   bool            `json:"private"`
	CreatedAt int64           `json:"created_at"`
	Splits    []splitResponse `json:"splits,omitempty"`
}

type splitResponse struct {
	UserID   string `json:"user_id"`
	Method   string `json:"method"`
	Share    string `json:"share"`
	Included bool   `json:"included"`
	Amount   string `json:"amount"`
}

func toTransactionResponse(t *models.Transaction, splits []models.ComputedSplit) transactionResponse {
	resp := transactionResponse{
		ID:        t.ID,
		LedgerID:  t.LedgerID,
		Type:      string(t.Type),
		Currency:  t.Currency,
		Amount:    t.Amount.String(),
		Category:  t.Category,
		PayerID:   t.PayerID,
		CreatedBy: t.CreatedBy,
		Private:   t.Private,
		CreatedAt: t.CreatedAt,
	}
	for _, s := range splits {
		resp.Splits = append(resp.Splits, toSplitResponse(s))
	}
	return resp
}

func toSplitResponse(s models.ComputedSplit) splitResponse {
	return splitResponse{
		UserID:   s.UserID,
		Method:   string(s.Method),
		Share:    s.Share.String(),
		Included: s.Included,
		Amount:   s.Amount.String(),
	}
}

type transferResponse struct {
	FromUserID string `json:"from_user_id"`
	FromName   string `json:"from_name"`
	ToUserID   string `json:"to_user_id"`
	ToName     string `json:"to_name"`
	Amount     string `json:"amount"`
}

type settlementResponse struct {
	LedgerID  string             `json:"ledger_id"`
	Currency  string             `json:"currency"`
	Transfers []transferResponse `json:"transfers"`
	Count     int                `json:"count"`
}

func toSettlementResponse(p *models.SettlementPlan) settlementResponse {
	resp := settlementResponse{
		LedgerID:  p.LedgerID,
		Currency:  p.Currency,
		Transfers: make([]transferResponse, 0, len(p.Transfers)),
		Count:     p.Count,
	}
	for _, t := range p.Transfers {
		resp.Transfers = append(resp.Transfers, transferResponse{
			FromUserID: t.FromUserID,
			FromName:   t.FromName,
			ToUserID:   t.ToUserID,
			ToName:     t.ToName,
			Amount:     t.Amount.String(),
		})
	}
	return resp
}
