package service

import (
	"context"
	"time"

	"wallettally/internal/domain"
	mailer "wallettally/internal/mail"
	"wallettally/internal/report"
	"wallettally/internal/repository"
)

// ReportService renders monthly PDF reports and emails them on request.
type ReportService struct {
	users  *repository.UserRepository
	txs    *TransactionService
	mailer *mailer.Mailer
}

func NewReportService(users *repository.UserRepository, txs *TransactionService, m *mailer.Mailer) *ReportService {
	return &ReportService{users: users, txs: txs, mailer: m}
}

// MonthlyPDF renders the user's report for the given month.
func (s *ReportService) MonthlyPDF(ctx context.Context, userID int64, month time.Time) ([]byte, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	_, monthTxs, err := s.txs.MonthSummary(ctx, userID, month)
	if err != nil {
		return nil, err
	}

	return report.MonthlyPDF(user.Name, month, monthTxs)
}

// EmailMonthly renders the report and sends it to the user's address.
func (s *ReportService) EmailMonthly(ctx context.Context, userID int64, month time.Time) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	pdf, err := s.MonthlyPDF(ctx, userID, month)
	if err != nil {
		return err
	}

	label := month.Format("January 2006")
	return s.mailer.Send(ctx, userID, user.Email,
		"Your Wallet Tally report for "+label,
		domain.EmailKindReport,
		mailer.ReportBody(user.Name, label),
		mailer.Attachment{
			Filename: "wallet-tally-" + month.Format("2006-01") + ".pdf",
			Data:     pdf,
		},
	)
}
