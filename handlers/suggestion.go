// File: handlers/suggestion.go
package handlers

import (
	"net/http"

	suggestionRepo "lengolf/database/repository/suggestion"
	"lengolf/utils"

	"github.com/gin-gonic/gin"
)

// Suggestions is injected from main during wiring.
var Suggestions suggestionRepo.SuggestionRepository

var validFeedback = map[string]bool{"accepted": true, "edited": true, "rejected": true}

// SubmitSuggestionFeedback records how staff treated an assistant suggestion.
// The feedback feeds future retrieval quality review.
func SubmitSuggestionFeedback(c *gin.Context) {
	id := c.Param("id")

	var input struct {
		Feedback string `json:"feedback" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if !validFeedback[input.Feedback] {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "feedback must be accepted, edited or rejected")
		return
	}

	existing, err := Suggestions.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load suggestion", err.Error())
		return
	}
	if existing == nil {
		utils.JSONError(c, http.StatusNotFound, "suggestion not found", id)
		return
	}

	if err := Suggestions.SetFeedback(c.Request.Context(), id, input.Feedback); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to record feedback", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "feedback": input.Feedback})
}
