package http

import (
	"database/sql"
	"time"

	"ledger/app/entity"

	"github.com/shopspring/decimal"
)

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
}

type TransferResponse struct {
	TransferID string `json:"transfer_id"`
}

type TransferRecord struct {
	ID          string          `json:"id"`
	SenderID    string          `json:"sender_id"`
	ReceiverID  string          `json:"receiver_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewTransferRecord(transfer *entity.Transfer) TransferRecord {
	return TransferRecord{
		ID:          transfer.ID,
		SenderID:    transfer.SenderID,
		ReceiverID:  transfer.ReceiverID,
		Amount:      transfer.Amount,
		Description: transfer.Description.String,
		CreatedAt:   transfer.CreatedAt,
	}
}

// UserResponse intentionally has no field for the password hash.
type UserResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	FullName  string          `json:"full_name,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  nullableString(user.FullName),
		Balance:   user.Balance,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

type DepositResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func nullableString(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return value.String
}
