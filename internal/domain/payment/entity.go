// Package payment records money received across the studio's services.
package payment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Payment methods accepted at the counter and online.
const (
	MethodCard       = "Card"
	MethodUPI        = "UPI"
	MethodNetBanking = "NetBanking"
	MethodCash       = "Cash"
)

// Payment is one received payment.
type Payment struct {
	ID           uuid.UUID      `db:"id"`
	CustomerName string         `db:"customer_name"`
	Amount       float64        `db:"amount"`
	Method       string         `db:"method"`
	Reference    sql.NullString `db:"reference"` // txn id, cheque no, etc.
	PaidAt       time.Time      `db:"paid_at"`
	Notes        sql.NullString `db:"notes"`
	CreatedAt    time.Time      `db:"created_at"`
}
