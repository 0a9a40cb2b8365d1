package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/branchbooks/ledger_backend/internal/apperrors"
	portssvc "github.com/branchbooks/ledger_backend/internal/core/ports/services"
	"github.com/branchbooks/ledger_backend/internal/dto"
	"github.com/branchbooks/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for derived ledger reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// parseAsOf reads the asOf query parameter. Accepts RFC3339 or a bare date;
// defaults to now.
func parseAsOf(c *gin.Context) (time.Time, error) {
	asOfStr := c.Query("asOf")
	if asOfStr == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, asOfStr); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", asOfStr)
	if err != nil {
		return time.Time{}, err
	}
	// include the whole day
	return t.Add(24*time.Hour - time.Nanosecond), nil
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Derives per-account net balances as of a date from journal lines
// @Tags reports
// @Produce  json
// @Param   asOf query string false "As-of date (RFC3339 or YYYY-MM-DD, default now)"
// @Success 200 {object} dto.TrialBalanceResponse "The trial balance"
// @Failure 400 {object} map[string]string "Invalid as-of date"
// @Failure 500 {object} map[string]string "Failed to compute trial balance"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date"})
		return
	}

	caller, _ := middleware.GetCallerFromContext(c)
	tb, err := h.reportingService.TrialBalance(c.Request.Context(), caller, asOf)
	if err != nil {
		logger.Error("Failed to compute trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute trial balance"})
		return
	}

	resp := dto.ToTrialBalanceResponse(tb)
	c.JSON(http.StatusOK, resp)
}

// getAccountBalance godoc
// @Summary Get an account balance
// @Description Derives the balance of one account as of a date from journal lines
// @Tags reports
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   asOf query string false "As-of date (RFC3339 or YYYY-MM-DD, default now)"
// @Success 200 {object} dto.AccountBalanceResponse "The account balance"
// @Failure 400 {object} map[string]string "Invalid as-of date"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Router /accounts/{accountID}/balance [get]
func (h *reportingHandler) getAccountBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	asOf, err := parseAsOf(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date"})
		return
	}

	caller, _ := middleware.GetCallerFromContext(c)
	balance, err := h.reportingService.AccountBalance(c.Request.Context(), caller, accountID, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to compute account balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute balance"})
		return
	}

	c.JSON(http.StatusOK, balance)
}

// registerReportingRoutes registers reporting specific routes
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	reports := group.Group("/reports")
	h := newReportingHandler(reportingService)
	{
		reports.GET("/trial-balance", h.getTrialBalance)
	}

	group.GET("/accounts/:accountID/balance", h.getAccountBalance)
}
