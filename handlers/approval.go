// File: handlers/approval.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lengolf/services/approval"
	"lengolf/utils"

	"github.com/gin-gonic/gin"
)

// Approvals is injected from main during wiring.
var Approvals approval.ApprovalService

// ListApprovals returns open approval requests for the staff dashboard.
func ListApprovals(c *gin.Context) {
	if state := c.Query("state"); state != "" && state != "pending" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "only state=pending is supported")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	reqs, err := Approvals.ListPending(c.Request.Context(), limit)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list approvals", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"approvals": reqs})
}

// ApproveRequest applies an approve decision to a pending request.
func ApproveRequest(c *gin.Context) {
	resolveApproval(c, true)
}

// DeclineRequest applies a decline decision to a pending request.
func DeclineRequest(c *gin.Context) {
	resolveApproval(c, false)
}

func resolveApproval(c *gin.Context, approve bool) {
	id := c.Param("id")
	staffID := c.GetString("staffID")

	req, err := Approvals.Resolve(c.Request.Context(), id, staffID, approve)
	if err != nil {
		var gateErr *approval.GateError
		if errors.As(err, &gateErr) {
			switch gateErr.Code {
			case "not_found":
				utils.JSONError(c, http.StatusNotFound, "approval not found", gateErr.Message)
				return
			case "execution_failed":
				// The decision stuck, the committed action did not.
				c.JSON(http.StatusConflict, gin.H{"approval": req, "error": gateErr.Message})
				return
			}
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to resolve approval", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"approval": req})
}
