package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealthz godoc
// @Summary Show the status of the server.
// @Description get the status of the server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /healthz [get]
func getHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
