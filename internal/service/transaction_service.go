package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/divvy/internal/calculator"
	"github.com/mmynk/divvy/internal/middleware"
	"github.com/mmynk/divvy/internal/models"
	"github.com/mmynk/divvy/internal/storage"
)

// TransactionInput carries one expense or income to be recorded.
type TransactionInput struct {
	LedgerID string
	Type     models.TransactionType
	Currency string
	Amount   decimal.Decimal
	Category string
	PayerID  string
	Rounding models.RoundingStrategy
	Tail     models.TailStrategy
	Private  bool
	Splits   []models.SplitItem
}

// LoanInput carries one peer loan: the creditor lent Amount to the debtor.
type LoanInput struct {
	LedgerID   string
	CreditorID string
	DebtorID   string
	Currency   string
	Amount     decimal.Decimal
	Category   string
	Private    bool
}

// TransactionService implements the write path: allocate the total
// across the split set, derive debt edges, and persist all of it in
// one atomic storage transaction.
type TransactionService struct {
	store storage.Store
}

// NewTransactionService creates a new TransactionService with the given storage backend.
func NewTransactionService(store storage.Store) *TransactionService {
	return &TransactionService{store: store}
}

// Create records an expense or income transaction and returns it with
// its computed splits.
func (s *TransactionService) Create(ctx context.Context, actorID string, in TransactionInput) (*models.Transaction, []models.ComputedSplit, error) {
	ledger, err := s.store.GetLedger(ctx, in.LedgerID)
	if err != nil {
		return nil, nil, err
	}
	if !ledger.HasMember(actorID) {
		return nil, nil, ErrNotMember
	}
	if !in.Amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}
	if in.Currency != ledger.Currency {
		return nil, nil, fmt.Errorf("%w: transaction %s, ledger %s", calculator.ErrCurrencyMismatch, in.Currency, ledger.Currency)
	}
	if len(in.Splits) == 0 {
		return nil, nil, calculator.ErrMissingSplits
	}

	// The split path records expenses and income only; loans go
	// through CreateLoan as a single direct edge.
	switch in.Type {
	case models.TransactionExpense, models.TransactionIncome:
	case "":
		in.Type = models.TransactionExpense
	default:
		return nil, nil, fmt.Errorf("%w: got %q", ErrInvalidType, in.Type)
	}

	trackBalances := ledger.Kind == models.LedgerBalance
	if trackBalances && in.PayerID == "" {
		return nil, nil, ErrMissingPayer
	}
	if in.PayerID != "" && !ledger.HasMember(in.PayerID) {
		return nil, nil, fmt.Errorf("payer: %w", ErrNotMember)
	}

	rounding := in.Rounding
	if rounding == "" {
		rounding = models.RoundingHalfUp
	}
	tail := in.Tail
	if tail == "" {
		tail = models.TailPayer
	}

	splits, err := calculator.Allocate(
		in.Amount,
		models.CurrencyExponent(in.Currency),
		in.Splits,
		rounding,
		tail,
		in.PayerID,
		actorID,
	)
	if err != nil {
		return nil, nil, err
	}

	txn := &models.Transaction{
		ID:        uuid.New().String(),
		LedgerID:  in.LedgerID,
		Type:      in.Type,
		Currency:  in.Currency,
		Amount:    in.Amount,
		Category:  in.Category,
		PayerID:   in.PayerID,
		Rounding:  rounding,
		Tail:      tail,
		CreatedBy: actorID,
		Private:   in.Private,
	}

	// SIMPLE ledgers record the transaction and splits only.
	var edges []models.DebtEdge
	if trackBalances {
		edges = calculator.GenerateEdges(txn.Type, txn.PayerID, txn.Currency, splits, txn.LedgerID, txn.ID)
	}

	if err := s.store.CreateTransaction(ctx, txn, splits, edges); err != nil {
		return nil, nil, fmt.Errorf("persist transaction: %w", err)
	}

	middleware.TransactionsCreated.WithLabelValues(string(txn.Type)).Inc()
	slog.Info("Transaction recorded",
		"transaction_id", txn.ID,
		"ledger_id", txn.LedgerID,
		"type", txn.Type,
		"amount", txn.Amount,
		"edges", len(edges),
	)
	return txn, splits, nil
}

// CreateLoan records a peer loan as a single creditor-to-debtor edge,
// bypassing the allocator entirely.
func (s *TransactionService) CreateLoan(ctx context.Context, actorID string, in LoanInput) (*models.Transaction, error) {
	ledger, err := s.store.GetLedger(ctx, in.LedgerID)
	if err != nil {
		return nil, err
	}
	if !ledger.HasMember(actorID) {
		return nil, ErrNotMember
	}
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if in.Currency != ledger.Currency {
		return nil, fmt.Errorf("%w: transaction %s, ledger %s", calculator.ErrCurrencyMismatch, in.Currency, ledger.Currency)
	}
	if in.CreditorID == in.DebtorID {
		return nil, ErrSameParty
	}
	if !ledger.HasMember(in.CreditorID) || !ledger.HasMember(in.DebtorID) {
		return nil, ErrNotMember
	}

	txn := &models.Transaction{
		ID:        uuid.New().String(),
		LedgerID:  in.LedgerID,
		Type:      models.TransactionLoan,
		Currency:  in.Currency,
		Amount:    in.Amount,
		Category:  in.Category,
		PayerID:   in.CreditorID,
		Rounding:  models.RoundingNone,
		Tail:      models.TailPayer,
		CreatedBy: actorID,
		Private:   in.Private,
	}

	var edges []models.DebtEdge
	if ledger.Kind == models.LedgerBalance {
		edges = []models.DebtEdge{
			calculator.LoanEdge(in.LedgerID, txn.ID, in.CreditorID, in.DebtorID, in.Amount, in.Currency),
		}
	}

	if err := s.store.CreateTransaction(ctx, txn, nil, edges); err != nil {
		return nil, fmt.Errorf("persist loan: %w", err)
	}

	middleware.TransactionsCreated.WithLabelValues(string(models.TransactionLoan)).Inc()
	slog.Info("Loan recorded",
		"transaction_id", txn.ID,
		"ledger_id", txn.LedgerID,
		"creditor", in.CreditorID,
		"debtor", in.DebtorID,
		"amount", in.Amount,
	)
	return txn, nil
}

// Delete removes a transaction with cascade: edges, then splits, then
// the transaction itself.
func (s *TransactionService) Delete(ctx context.Context, actorID, transactionID string) error {
	txn, err := s.store.GetTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	ledger, err := s.store.GetLedger(ctx, txn.LedgerID)
	if err != nil {
		return err
	}
	if !ledger.HasMember(actorID) {
		return ErrNotMember
	}

	if err := s.store.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}
	slog.Info("Transaction deleted", "transaction_id", transactionID, "ledger_id", txn.LedgerID)
	return nil
}

// List retrieves a ledger's transactions visible to the actor.
// Private transactions are shown only to their creator and payer.
func (s *TransactionService) List(ctx context.Context, actorID, ledgerID string) ([]*models.Transaction, error) {
	ledger, err := s.store.GetLedger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if !ledger.HasMember(actorID) {
		return nil, ErrNotMember
	}

	txns, err := s.store.ListTransactionsByLedger(ctx, ledgerID)
	if err != nil {
		return nil, err
	}

	visible := txns[:0]
	for _, txn := range txns {
		if txn.Private && txn.CreatedBy != actorID && txn.PayerID != actorID {
			continue
		}
		visible = append(visible, txn)
	}
	return visible, nil
}

// Splits retrieves a transaction's computed splits.
func (s *TransactionService) Splits(ctx context.Context, actorID, transactionID string) ([]models.ComputedSplit, error) {
	txn, err := s.store.GetTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	ledger, err := s.store.GetLedger(ctx, txn.LedgerID)
	if err != nil {
		return nil, err
	}
	if !ledger.HasMember(actorID) {
		return nil, ErrNotMember
	}
	return s.store.GetTransactionSplits(ctx, transactionID)
}
