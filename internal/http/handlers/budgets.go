package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"wallettally/internal/repository"
	"wallettally/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type budgetRequest struct {
	Category string `json:"category" binding:"required,max=64"`
	Month    string `json:"month" binding:"required"` // YYYY-MM
	Limit    string `json:"limit" binding:"required"`
}

func (h *Handler) SetBudget(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req budgetRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	month, err := parseMonth(req.Month)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}

	limit, err := decimal.NewFromString(req.Limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a decimal number"})
		return
	}

	budget, err := h.Budgets.Set(c.Request.Context(), userID, req.Category, month, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidBudget) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save budget"})
		return
	}

	c.JSON(http.StatusOK, budget)
}

// BudgetStatus returns the month's budgets with spend folded in.
func (h *Handler) BudgetStatus(c *gin.Context) {
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

	statuses, err := h.Budgets.Status(c.Request.Context(), userID, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute budget status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": statuses})
}

func (h *Handler) DeleteBudget(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.Budgets.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "budget not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete budget"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
