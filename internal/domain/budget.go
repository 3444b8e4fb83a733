package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-category spending limit for one calendar month.
// Month is stored as the first day of the month (UTC).
type Budget struct {
	ID        int64           `db:"id" json:"id"`
	UserID    int64           `db:"user_id" json:"user_id"`
	Category  string          `db:"category" json:"category"`
	Month     time.Time       `db:"month" json:"month"`
	Limit     decimal.Decimal `db:"limit_amount" json:"limit"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// BudgetStatus is the computed view of a budget against actual spend.
type BudgetStatus struct {
	Budget      Budget          `json:"budget"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	UsedPercent float64         `json:"used_percent"`
	Over        bool            `json:"over"`
}
