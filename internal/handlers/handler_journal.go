package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/flowcounts/backend/internal/core/ports/services"
	"github.com/flowcounts/backend/internal/dto"
	"github.com/flowcounts/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for the journal entry workflow.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: js,
	}
}

// registerJournalRoutes registers routes related to journal entries.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.submitEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:id", h.getEntry)
		entries.PUT("/:id", h.editEntry)
		entries.DELETE("/:id", h.deleteEntry)
		entries.POST("/:id/approve", h.approveEntry)
		entries.POST("/:id/reject", h.rejectEntry)
	}
}

func entryIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry ID"})
		return 0, false
	}
	return id, true
}

// submitEntry godoc
// @Summary Submit a new journal entry
// @Description Validates and persists a balanced journal entry in PENDING status
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} map[string]interface{} "Invalid input format or validation errors"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to submit entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) submitEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SubmitEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to submit journal entry", slog.Int("line_count", len(req.Lines)))

	entry, err := h.journalService.SubmitEntry(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to submit entry")
		return
	}

	logger.Info("Journal entry submitted", slog.Int64("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves journal entries newest-first, optionally filtered by status
// @Tags journal-entries
// @Produce  json
// @Param   status query string false "Filter by status (PENDING, APPROVED, REJECTED)"
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.EntryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, dto.ToListEntriesResponse(entries))
}

// getEntry godoc
// @Summary Get a journal entry by ID
// @Description Retrieves a journal entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   id path int true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// editEntry godoc
// @Summary Edit a pending journal entry
// @Description Re-validates and rewrites a PENDING entry. Decided entries cannot be edited.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path int true "Entry ID to edit"
// @Param   entry body dto.UpdateEntryRequest true "Replacement entry details"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]interface{} "Invalid input format or validation errors"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already decided"
// @Failure 500 {object} map[string]string "Failed to edit entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [put]
func (h *journalHandler) editEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to edit journal entry", slog.Int64("entry_id", entryID))

	entry, err := h.journalService.EditEntry(c.Request.Context(), entryID, req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to edit entry")
		return
	}

	logger.Info("Journal entry edited", slog.Int64("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a pending journal entry
// @Description Removes a PENDING entry and its lines. Decided entries are permanent.
// @Tags journal-entries
// @Produce  json
// @Param   id path int true "Entry ID to delete"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already decided"
// @Failure 500 {object} map[string]string "Failed to delete entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to delete journal entry", slog.Int64("entry_id", entryID))

	if err := h.journalService.DeleteEntry(c.Request.Context(), entryID, actor); err != nil {
		respondServiceError(c, logger, err, "Failed to delete entry")
		return
	}

	logger.Info("Journal entry deleted", slog.Int64("entry_id", entryID))
	c.Status(http.StatusNoContent)
}

// approveEntry godoc
// @Summary Approve a pending journal entry
// @Description Atomically posts the entry to account balances and marks it APPROVED (MANAGER or ADMIN)
// @Tags journal-entries
// @Produce  json
// @Param   id path int true "Entry ID to approve"
// @Success 200 {object} dto.EntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already decided"
// @Failure 500 {object} map[string]string "Failed to approve entry"
// @Security BearerAuth
// @Router /journal-entries/{id}/approve [post]
func (h *journalHandler) approveEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to approve journal entry", slog.Int64("entry_id", entryID))

	entry, err := h.journalService.ApproveEntry(c.Request.Context(), entryID, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to approve entry")
		return
	}

	logger.Info("Journal entry approved", slog.Int64("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// rejectEntry godoc
// @Summary Reject a pending journal entry
// @Description Marks a PENDING entry REJECTED with a mandatory reason (MANAGER or ADMIN). No balances change.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path int true "Entry ID to reject"
// @Param   rejection body dto.RejectEntryRequest true "Rejection reason"
// @Success 200 {object} dto.EntryResponse
// @Failure 400 {object} map[string]interface{} "Missing rejection reason"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry already decided"
// @Failure 500 {object} map[string]string "Failed to reject entry"
// @Security BearerAuth
// @Router /journal-entries/{id}/reject [post]
func (h *journalHandler) rejectEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID, ok := entryIDParam(c)
	if !ok {
		return
	}

	var req dto.RejectEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RejectEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to reject journal entry", slog.Int64("entry_id", entryID))

	entry, err := h.journalService.RejectEntry(c.Request.Context(), entryID, req, actor)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reject entry")
		return
	}

	logger.Info("Journal entry rejected", slog.Int64("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}
