package handlers

import (
	"net/http"

	"wallettally/internal/domain"

	"github.com/gin-gonic/gin"
)

type feedbackRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
}

func (h *Handler) SubmitFeedback(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req feedbackRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	f := &domain.Feedback{
		UserID:  userID,
		Message: req.Message,
		Rating:  req.Rating,
	}
	if err := h.Feedback.Create(c.Request.Context(), f); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save feedback"})
		return
	}

	c.JSON(http.StatusCreated, f)
}
