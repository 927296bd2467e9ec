package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/flowcounts/backend/internal/core/ports/services"
	"github.com/flowcounts/backend/internal/dto"
	"github.com/flowcounts/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/retained-earnings", h.getRetainedEarnings)
	}
}

// asOfQuery parses the asOf query parameter, defaulting to today.
func asOfQuery(c *gin.Context, logger *slog.Logger) (time.Time, bool) {
	asOfStr := c.DefaultQuery("asOf", time.Now().Format("2006-01-02"))
	asOf, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		logger.Warn("Invalid asOf date format", slog.String("asOf", asOfStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return asOf, true
}

// rangeQuery parses the mandatory from/to query parameters for period reports.
func rangeQuery(c *gin.Context, logger *slog.Logger) (time.Time, time.Time, bool) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Both from and to dates are required (YYYY-MM-DD)"})
		return time.Time{}, time.Time{}, false
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		logger.Warn("Invalid from date format", slog.String("from", fromStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid from date format. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		logger.Warn("Invalid to date format", slog.String("to", toStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid to date format. Use YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Lists every account balance in its debit or credit column as of a date, with a self-check
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := asOfQuery(c, logger)
	if !ok {
		return
	}

	logger.Info("Generating trial balance report", slog.Time("as_of", asOf))

	report, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate trial balance report")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report))
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Description Nets revenue against expense movement over a period
// @Tags reports
// @Produce json
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := rangeQuery(c, logger)
	if !ok {
		return
	}

	logger.Info("Generating income statement", slog.Time("from", from), slog.Time("to", to))

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate income statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Presents assets, liabilities and equity (including accumulated net income) as of a date
// @Tags reports
// @Produce json
// @Param asOf query string false "Report date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := asOfQuery(c, logger)
	if !ok {
		return
	}

	logger.Info("Generating balance sheet report", slog.Time("as_of", asOf))

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate balance sheet report")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report))
}

// getRetainedEarnings godoc
// @Summary Generate retained earnings statement
// @Description Rolls retained earnings forward through a period
// @Tags reports
// @Produce json
// @Param from query string true "Period start (YYYY-MM-DD)"
// @Param to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.RetainedEarningsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/retained-earnings [get]
func (h *reportingHandler) getRetainedEarnings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := rangeQuery(c, logger)
	if !ok {
		return
	}

	logger.Info("Generating retained earnings statement", slog.Time("from", from), slog.Time("to", to))

	report, err := h.reportingService.RetainedEarningsStatement(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate retained earnings statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToRetainedEarningsResponse(report))
}
