package handlers

import (
	"net/http"

	"wallettally/internal/logger"

	"github.com/gin-gonic/gin"
)

// ReportPDF streams the monthly report for ?month=YYYY-MM.
func (h *Handler) ReportPDF(c *gin.Context) {
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

	pdf, err := h.Reports.MonthlyPDF(c.Request.Context(), userID, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
		return
	}

	filename := "wallet-tally-" + month.Format("2006-01") + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// EmailReport renders the monthly report and mails it to the user.
func (h *Handler) EmailReport(c *gin.Context) {
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

	if err := h.Reports.EmailMonthly(c.Request.Context(), userID, month); err != nil {
		logger.Error("failed to email report", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "report sent"})
}
