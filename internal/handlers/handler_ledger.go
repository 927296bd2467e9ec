package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	portssvc "github.com/flowcounts/backend/internal/core/ports/services"
	"github.com/flowcounts/backend/internal/dto"
	"github.com/flowcounts/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for per-account ledger projections.
type ledgerHandler struct {
	ledgerService portssvc.LedgerService
}

func newLedgerHandler(ls portssvc.LedgerService) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers routes related to the ledger projection.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerService) {
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/:accountID", h.getLedger)
	}
}

// optionalDateQuery parses an optional YYYY-MM-DD query parameter.
func optionalDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " date format. Use YYYY-MM-DD"})
		return nil, false
	}
	return &t, true
}

// getLedger godoc
// @Summary Get an account's ledger
// @Description Replays the account's approved lines in posting order with a running balance
// @Tags ledger
// @Produce json
// @Param accountID path int true "Account ID"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to project ledger"
// @Security BearerAuth
// @Router /ledger/{accountID} [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, err := strconv.ParseInt(c.Param("accountID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account ID"})
		return
	}

	from, ok := optionalDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := optionalDateQuery(c, "to")
	if !ok {
		return
	}

	logger.Info("Received request to project ledger", slog.Int64("account_id", accountID))

	ledger, err := h.ledgerService.ProjectLedger(c.Request.Context(), accountID, dto.LedgerParams{From: from, To: to})
	if err != nil {
		respondServiceError(c, logger, err, "Failed to project ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerResponse(ledger))
}
