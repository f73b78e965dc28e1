// File: handlers/assistant.go
package handlers

import (
	"net/http"

	"lengolf/models"
	"lengolf/services/assistant"
	"lengolf/utils"

	"github.com/gin-gonic/gin"
)

// Assistant is injected from main during wiring.
var Assistant assistant.AssistantService

// HandleAssistantMessage processes one incoming customer message and returns
// the resulting suggestion, including any pending approval id.
func HandleAssistantMessage(c *gin.Context) {
	var input assistant.IncomingMessage
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !models.ValidChannel(input.Channel) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "unknown channel "+string(input.Channel))
		return
	}

	suggestion, err := Assistant.HandleMessage(c.Request.Context(), input)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to process message", err.Error())
		return
	}
	c.JSON(http.StatusOK, suggestion)
}
