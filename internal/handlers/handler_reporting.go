package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/personal_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/SscSPs/personal_finance_app/internal/middleware"
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
		reportingGroup.GET("/summary", h.getSummary)
		reportingGroup.GET("/by-category", h.getCategoryTotals)
		reportingGroup.GET("/monthly", h.getMonthlyTotals)
		reportingGroup.GET("/dashboard", h.getDashboard)
	}
}

// getSummary godoc
// @Summary Income, expenses and balance for a period
// @Description Defaults to the current month. Both dates are inclusive.
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} domain.Summary
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ReportRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	from, to, err := dateRange(params, time.Now().UTC())
	if err != nil {
		respondWithError(c, err, "Invalid date range")
		return
	}

	middleware.GetLoggerFromContext(c).Debug("Generating summary",
		slog.Time("from", from), slog.Time("to", to))

	summary, err := h.reportingService.GetSummary(c.Request.Context(), userID, from, to)
	if err != nil {
		respondWithError(c, err, "Failed to generate report")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getCategoryTotals godoc
// @Summary Totals per category
// @Description Sums one transaction type per category, largest first, with each category's share of the total.
// @Tags reports
// @Produce json
// @Param type query string false "income or expense" default(expense)
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {array} domain.CategoryTotal
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/by-category [get]
func (h *reportingHandler) getCategoryTotals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.CategoryReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	if params.Type == "" {
		params.Type = domain.Expense
	}
	from, to, err := dateRange(params.ReportRangeParams, time.Now().UTC())
	if err != nil {
		respondWithError(c, err, "Invalid date range")
		return
	}

	totals, err := h.reportingService.GetCategoryTotals(c.Request.Context(), userID, params.Type, from, to)
	if err != nil {
		respondWithError(c, err, "Failed to generate report")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// getMonthlyTotals godoc
// @Summary Month by month income and expenses
// @Tags reports
// @Produce json
// @Param months query int false "Number of months ending with the current one" default(6)
// @Success 200 {array} domain.MonthlyTotal
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /reports/monthly [get]
func (h *reportingHandler) getMonthlyTotals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.MonthlyReportParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	totals, err := h.reportingService.GetMonthlyTotals(c.Request.Context(), userID, params.Months)
	if err != nil {
		respondWithError(c, err, "Failed to generate report")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// getDashboard godoc
// @Summary Dashboard overview
// @Description Current month summary with bill, loan and budget status and the top expense categories.
// @Tags reports
// @Produce json
// @Success 200 {object} domain.Dashboard
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) getDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	dashboard, err := h.reportingService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to generate report")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
