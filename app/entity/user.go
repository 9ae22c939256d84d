package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     sql.NullString
	Balance      decimal.Decimal
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type RefreshToken struct {
	ID        uint64
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
