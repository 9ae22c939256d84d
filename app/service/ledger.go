package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ledger/app/entity"
	"ledger/app/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotOwner         = errors.New("caller does not own the sending account")
	ErrTransferNotFound = errors.New("transfer not found")
	ErrEmailMismatch    = errors.New("email does not match the authenticated account")
)

// LedgerService moves funds between accounts. It is the sole writer of
// account balances after registration; all durable state lives in the store
// and the store's transaction is the only point of serialization.
type LedgerService struct {
	db           *sql.DB
	transferRepo *repository.TransferRepository
	userRepo     *repository.UserRepository
}

func NewLedgerService(db *sql.DB, transferRepo *repository.TransferRepository, userRepo *repository.UserRepository) *LedgerService {
	return &LedgerService{
		db:           db,
		transferRepo: transferRepo,
		userRepo:     userRepo,
	}
}

// Transfer debits the sender, credits the receiver and records the transfer
// as one atomic unit. Either all three mutations commit or none do. The
// caller may only move funds out of their own account; that check happens
// before any store access. Amounts are not validated for sign or sufficiency,
// so a balance may go negative.
func (s *LedgerService) Transfer(ctx context.Context, callerID, senderID, receiverID string, amount decimal.Decimal, description string) (string, error) {
	if callerID != senderID {
		logrus.WithField("caller_id", callerID).Warn("Transfer attempted on another account")
		return "", ErrNotOwner
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	txRepo := repository.NewTransferRepository(tx)

	if err := txRepo.Debit(ctx, senderID, amount); err != nil {
		return "", err
	}
	if err := txRepo.Credit(ctx, receiverID, amount); err != nil {
		return "", err
	}

	transfer := &entity.Transfer{
		ID:          uuid.New().String(),
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Amount:      amount,
		Description: nullString(description),
		CreatedAt:   time.Now(),
	}
	if err := txRepo.Insert(ctx, transfer); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"transfer_id": transfer.ID,
		"sender_id":   senderID,
		"receiver_id": receiverID,
	}).Info("Transfer committed")
	return transfer.ID, nil
}

// GetTransfer returns a transfer only to its sender or receiver. Any other
// transfer id yields ErrTransferNotFound; existence is never revealed to a
// non-party.
func (s *LedgerService) GetTransfer(ctx context.Context, callerID, transferID string) (*entity.Transfer, error) {
	transfer, err := s.transferRepo.FindByIDForParticipant(ctx, transferID, callerID)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, ErrTransferNotFound
	}
	return transfer, nil
}

// ListTransfers streams every transfer the caller is a party to, one row at a
// time. The sequence is finite and unordered; a fresh call restarts from
// scratch.
func (s *LedgerService) ListTransfers(ctx context.Context, callerID string, yield func(*entity.Transfer) error) error {
	return s.transferRepo.ListByParticipant(ctx, callerID, yield)
}

// Deposit credits the caller's own balance and returns the new balance. The
// supplied email must match the authenticated account's stored email.
func (s *LedgerService) Deposit(ctx context.Context, callerID, email string, amount decimal.Decimal) (decimal.Decimal, error) {
	user, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		return decimal.Zero, err
	}
	if user == nil {
		return decimal.Zero, ErrUserNotFound
	}
	if user.Email != email {
		return decimal.Zero, ErrEmailMismatch
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback()

	balance, err := repository.NewTransferRepository(tx).AddToBalance(ctx, callerID, amount)
	if err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(); err != nil {
		return decimal.Zero, err
	}

	logrus.WithField("user_id", callerID).Info("Deposit committed")
	return balance, nil
}
