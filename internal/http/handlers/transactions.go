package handlers

import (
	"errors"
	"net/http"
	"time"

	"wallettally/internal/domain"
	"wallettally/internal/repository"
	"wallettally/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type transactionRequest struct {
	Type        string `json:"type" binding:"required,oneof=income expense"`
	Amount      string `json:"amount" binding:"required"`
	Category    string `json:"category" binding:"max=64"`
	Description string `json:"description" binding:"max=255"`
}

func (r *transactionRequest) toDomain(userID int64) (*domain.Transaction, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return nil, errors.New("amount must be a decimal number")
	}
	return &domain.Transaction{
		UserID:      userID,
		Type:        domain.TransactionType(r.Type),
		Amount:      amount,
		Category:    r.Category,
		Description: r.Description,
	}, nil
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req transactionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	tx, err := req.toDomain(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Txs.Create(c.Request.Context(), tx); err != nil {
		switch {
		case errors.Is(err, service.ErrInsufficientFunds):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "expense exceeds current balance"})
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInvalidType):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create transaction"})
		}
		return
	}

	c.JSON(http.StatusCreated, tx)
}

func (h *Handler) ListTransactions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	views, err := h.Txs.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list transactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": views})
}

func (h *Handler) UpdateTransaction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req transactionRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	updated, err := req.toDomain(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.Txs.Update(c.Request.Context(), userID, c.Param("id"), updated)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.Txs.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// respondMutationError maps update/delete failures. The edit lock is
// enforced here regardless of what the client rendered; a disabled
// button is not a security boundary.
func respondMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLocked):
		c.JSON(http.StatusLocked, gin.H{"error": "transaction can no longer be modified"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not your transaction"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
	case errors.Is(err, service.ErrInsufficientFunds):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "expense exceeds current balance"})
	case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mutation failed"})
	}
}

func (h *Handler) Summary(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	summary, err := h.Txs.Summary(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// MonthSummary returns totals for ?month=2006-01 (default: current month).
func (h *Handler) MonthSummary(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	month, err := parseMonth(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	summary, txs, err := h.Txs.MonthSummary(c.Request.Context(), userID, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"month":        month.Format("2006-01"),
		"summary":      summary,
		"transactions": txs,
	})
}

func parseMonth(s string) (time.Time, error) {
	if s == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01", s)
}
