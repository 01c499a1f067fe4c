package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/history — newest first, truncated to the most recent 100.
func (h *Handler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"history": h.Store.History()})
}

// GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.Store.Stats()})
}
