package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := &budgetHandler{budgetService: budgetService}

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:id", h.getBudget)
		budgets.PUT("/:id", h.updateBudget)
		budgets.DELETE("/:id", h.deleteBudget)
	}
}

// budgetMonth reads the optional ?month=YYYY-MM, defaulting to the current month.
func budgetMonth(c *gin.Context) (time.Time, bool) {
	var params dto.BudgetMonthParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return time.Time{}, false
	}
	if params.Month == "" {
		return time.Now().UTC(), true
	}
	month, err := dto.ParseMonth(params.Month)
	if err != nil {
		respondWithError(c, err, "Invalid month")
		return time.Time{}, false
	}
	return month, true
}

// createBudget godoc
// @Summary Create a monthly budget for a category
// @Tags budgets
// @Accept json
// @Produce json
// @Param budget body dto.CreateBudgetRequest true "Budget"
// @Success 201 {object} domain.Budget
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Category already has a budget"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	budget, err := h.budgetService.CreateBudget(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create budget")
		return
	}
	c.JSON(http.StatusCreated, budget)
}

// listBudgets godoc
// @Summary List budgets with progress
// @Description Returns every budget with the amount spent in the chosen month.
// @Tags budgets
// @Produce json
// @Param month query string false "YYYY-MM, defaults to the current month"
// @Success 200 {array} dto.BudgetProgressResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	month, ok := budgetMonth(c)
	if !ok {
		return
	}
	progress, err := h.budgetService.ListBudgetProgress(c.Request.Context(), userID, month)
	if err != nil {
		respondWithError(c, err, "Failed to list budgets")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBudgetProgressResponse(progress))
}

// getBudget godoc
// @Summary Get a budget with progress
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Param month query string false "YYYY-MM, defaults to the current month"
// @Success 200 {object} dto.BudgetProgressResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /budgets/{id} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	month, ok := budgetMonth(c)
	if !ok {
		return
	}
	progress, err := h.budgetService.GetBudget(c.Request.Context(), userID, c.Param("id"), month)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve budget")
		return
	}
	c.JSON(http.StatusOK, dto.BudgetProgressResponse{BudgetProgress: *progress, Exceeded: progress.Exceeded()})
}

// updateBudget godoc
// @Summary Update a budget
// @Tags budgets
// @Accept json
// @Produce json
// @Param id path string true "Budget ID"
// @Param budget body dto.UpdateBudgetRequest true "Fields to update"
// @Success 200 {object} domain.Budget
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /budgets/{id} [put]
func (h *budgetHandler) updateBudget(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update budget")
		return
	}
	c.JSON(http.StatusOK, budget)
}

// deleteBudget godoc
// @Summary Delete a budget
// @Tags budgets
// @Param id path string true "Budget ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /budgets/{id} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.budgetService.DeleteBudget(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete budget")
		return
	}
	c.Status(http.StatusNoContent)
}
