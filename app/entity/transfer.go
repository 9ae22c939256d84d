package entity

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is an append-only audit record. A row exists only together with the
// debit and credit it describes; the three are committed as one transaction.
type Transfer struct {
	ID          string
	SenderID    string
	ReceiverID  string
	Amount      decimal.Decimal
	Description sql.NullString
	CreatedAt   time.Time
}
