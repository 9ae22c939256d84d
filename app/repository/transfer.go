package repository

import (
	"context"
	"database/sql"

	"ledger/app/entity"

	"github.com/shopspring/decimal"
)

// TransferRepository owns the transfers table and is the only writer of the
// users.balance column after account creation. Debit, Credit and Insert are
// meant to be issued against a single transaction; the row locks taken by the
// balance updates are what serializes concurrent transfers on an account.
type TransferRepository struct {
	db DBTX
}

func NewTransferRepository(db DBTX) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Debit(ctx context.Context, userID string, amount decimal.Decimal) error {
	query := `UPDATE users SET balance = balance - ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, amount, userID)
	return err
}

func (r *TransferRepository) Credit(ctx context.Context, userID string, amount decimal.Decimal) error {
	query := `UPDATE users SET balance = balance + ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, amount, userID)
	return err
}

func (r *TransferRepository) Insert(ctx context.Context, transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, sender_id, receiver_id, amount, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		transfer.ID,
		transfer.SenderID,
		transfer.ReceiverID,
		transfer.Amount,
		transfer.Description,
		transfer.CreatedAt,
	)
	return err
}

// FindByIDForParticipant returns the transfer only when userID is its sender
// or receiver; any other transfer id behaves as if it does not exist.
func (r *TransferRepository) FindByIDForParticipant(ctx context.Context, transferID, userID string) (*entity.Transfer, error) {
	query := `
		SELECT id, sender_id, receiver_id, amount, description, created_at
		FROM transfers WHERE id = ? AND (sender_id = ? OR receiver_id = ?)
	`
	transfer := &entity.Transfer{}
	err := r.db.QueryRowContext(ctx, query, transferID, userID, userID).Scan(
		&transfer.ID,
		&transfer.SenderID,
		&transfer.ReceiverID,
		&transfer.Amount,
		&transfer.Description,
		&transfer.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// ListByParticipant streams every transfer where userID is a party, invoking
// yield once per row while the cursor is still open. The result set is never
// materialized; a yield error stops the scan and is returned as-is.
func (r *TransferRepository) ListByParticipant(ctx context.Context, userID string, yield func(*entity.Transfer) error) error {
	query := `
		SELECT id, sender_id, receiver_id, amount, description, created_at
		FROM transfers WHERE sender_id = ? OR receiver_id = ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, userID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		transfer := &entity.Transfer{}
		if err := rows.Scan(
			&transfer.ID,
			&transfer.SenderID,
			&transfer.ReceiverID,
			&transfer.Amount,
			&transfer.Description,
			&transfer.CreatedAt,
		); err != nil {
			return err
		}
		if err := yield(transfer); err != nil {
			return err
		}
	}
	return rows.Err()
}

// AddToBalance credits a deposit outside the transfer path and returns the
// resulting balance.
func (r *TransferRepository) AddToBalance(ctx context.Context, userID string, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := r.Credit(ctx, userID, amount); err != nil {
		return decimal.Zero, err
	}

	var balance decimal.Decimal
	query := `SELECT balance FROM users WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}
