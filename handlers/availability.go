// File: handlers/availability.go
package handlers

import (
	"net/http"
	"strconv"

	"lengolf/models"
	"lengolf/services/availability"
	"lengolf/utils"

	"github.com/gin-gonic/gin"
)

// Availability is injected from main during wiring.
var Availability availability.Engine

// GetAvailability answers a direct staff availability query. With start_time
// it checks one slot; without, it returns the compressed day summary.
func GetAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date is required")
		return
	}
	classRaw := c.Query("class")
	if classRaw == "" {
		classRaw = c.DefaultQuery("resource_class", "bay")
	}
	class := models.ResourceClass(classRaw)
	if !models.ValidResourceClass(class) {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "unknown resource class "+string(class))
		return
	}
	hours, err := strconv.ParseFloat(c.DefaultQuery("duration", "1"), 64)
	if err != nil || hours <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "duration must be a positive number of hours")
		return
	}
	duration := int(hours * 60)

	if startRaw := c.Query("start_time"); startRaw != "" {
		start, err := availability.MinuteOfDay(startRaw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", "start_time must be HH:MM")
			return
		}
		slot, err := Availability.CheckSlot(c.Request.Context(), date, start, duration, class)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "availability check failed", err.Error())
			return
		}
		c.JSON(http.StatusOK, slot)
		return
	}

	summary, err := Availability.DaySummary(c.Request.Context(), date, duration, class)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "availability check failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}
