package handlers

import (
	"errors"
	"net/http"
	"time"

	"wallettally/internal/ai"
	"wallettally/internal/logger"

	"github.com/gin-gonic/gin"
)

// Suggestions asks the LLM for cost-cutting advice based on the current
// month's transactions and budgets.
func (h *Handler) Suggestions(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if !h.Suggester.Enabled() {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "suggestions are not configured"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now().UTC()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	_, txs, err := h.Txs.MonthSummary(ctx, userID, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}

	budgets, err := h.Budgets.Status(ctx, userID, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load budgets"})
		return
	}

	suggestion, err := h.Suggester.Suggest(ctx, txs, budgets)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			c.JSON(http.StatusNotImplemented, gin.H{"error": "suggestions are not configured"})
			return
		}
		logger.Error("suggestion request failed", "user_id", userID, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "suggestion service unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestion})
}
