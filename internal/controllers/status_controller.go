package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airide/internal/config"
	"airide/internal/models"
)

// Root answers GET /api/ so clients can check the backend is reachable.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
}

func CreateStatusCheck(c *gin.Context) {
	var input struct {
		ClientName string `json:"client_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	check := models.StatusCheck{ClientName: input.ClientName}
	if err := config.GetDB().Create(&check).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create status check: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, check)
}

// ListStatusChecks returns up to 1000 checks, oldest first.
func ListStatusChecks(c *gin.Context) {
	checks := []models.StatusCheck{}
	if err := config.GetDB().Order("checked_at asc").Limit(1000).Find(&checks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listing status checks: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, checks)
}
