package domain

import "time"

type EmailStatus string

const (
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

// Email kinds
const (
	EmailKindOTP    = "otp"
	EmailKindReport = "report"
)

// EmailLog records every outbound email attempt. Logs are purged by the
// retention job; transactions never are.
type EmailLog struct {
	ID        int64       `db:"id" json:"id"`
	UserID    int64       `db:"user_id" json:"user_id"`
	Recipient string      `db:"recipient" json:"recipient"`
	Subject   string      `db:"subject" json:"subject"`
	Kind      string      `db:"kind" json:"kind"`
	Status    EmailStatus `db:"status" json:"status"`
	Error     string      `db:"error" json:"error,omitempty"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
}
