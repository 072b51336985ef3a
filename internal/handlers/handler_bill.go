package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/SscSPs/personal_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// billHandler handles payable and receivable bills and their recurrence rules.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

func registerBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	h := &billHandler{billService: billService}

	bills := rg.Group("/bills")
	{
		// recurrence routes go first so "recurrences" is never read as a bill ID
		bills.GET("/recurrences", h.listRecurrences)
		bills.POST("/recurrences/generate", h.generateDueBills)
		bills.DELETE("/recurrences/:id", h.deactivateRecurrence)

		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/:id", h.getBill)
		bills.PUT("/:id", h.updateBill)
		bills.DELETE("/:id", h.deleteBill)
		bills.POST("/:id/pay", h.payBill)
		bills.POST("/:id/cancel", h.cancelBill)
	}
}

// createBill godoc
// @Summary Create a bill
// @Description Creates a bill. With a recurrence block, future occurrences are generated automatically.
// @Tags bills
// @Accept json
// @Produce json
// @Param bill body dto.CreateBillRequest true "Bill"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	bill, err := h.billService.CreateBill(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create bill")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBillResponse(*bill, time.Now().UTC()))
}

// listBills godoc
// @Summary List bills
// @Description Lists bills by due date. Status "overdue" selects open bills past their due date.
// @Tags bills
// @Produce json
// @Param status query string false "open, paid, overdue or canceled"
// @Param type query string false "payable or receivable"
// @Param from query string false "Due from (YYYY-MM-DD)"
// @Param to query string false "Due until, inclusive (YYYY-MM-DD)"
// @Success 200 {array} dto.BillResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListBillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	bills, err := h.billService.ListBills(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list bills")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBillResponse(bills, time.Now().UTC()))
}

// getBill godoc
// @Summary Get a bill
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bills/{id} [get]
func (h *billHandler) getBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bill, err := h.billService.GetBill(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(*bill, time.Now().UTC()))
}

// updateBill godoc
// @Summary Update an open bill
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param bill body dto.UpdateBillRequest true "Fields to update"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bills/{id} [put]
func (h *billHandler) updateBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	bill, err := h.billService.UpdateBill(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(*bill, time.Now().UTC()))
}

// deleteBill godoc
// @Summary Delete a bill
// @Tags bills
// @Param id path string true "Bill ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bills/{id} [delete]
func (h *billHandler) deleteBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.billService.DeleteBill(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete bill")
		return
	}
	c.Status(http.StatusNoContent)
}

// payBill godoc
// @Summary Mark a bill as paid
// @Description Closes an open bill. With createTransaction, the matching expense or income is recorded in the same database transaction.
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param payment body dto.PayBillRequest false "Payment details"
// @Success 200 {object} dto.PayBillResponse
// @Failure 400 {object} dto.ErrorResponse "Bill is not open"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bills/{id}/pay [post]
func (h *billHandler) payBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.PayBillRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	bill, txn, err := h.billService.PayBill(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to pay bill")
		return
	}
	if txn != nil {
		middleware.GetLoggerFromContext(c).Info("Bill paid with transaction",
			slog.String("bill_id", bill.BillID), slog.String("transaction_id", txn.TransactionID))
	}
	c.JSON(http.StatusOK, dto.PayBillResponse{
		Bill:        dto.ToBillResponse(*bill, time.Now().UTC()),
		Transaction: txn,
	})
}

// cancelBill godoc
// @Summary Cancel an open bill
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} dto.ErrorResponse "Bill is not open"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bills/{id}/cancel [post]
func (h *billHandler) cancelBill(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	bill, err := h.billService.CancelBill(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to cancel bill")
		return
	}
	c.JSON(http.StatusOK, dto.ToBillResponse(*bill, time.Now().UTC()))
}

// listRecurrences godoc
// @Summary List recurrence rules
// @Tags bills
// @Produce json
// @Success 200 {array} domain.BillRecurrence
// @Security BearerAuth
// @Router /bills/recurrences [get]
func (h *billHandler) listRecurrences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recurrences, err := h.billService.ListRecurrences(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list recurrences")
		return
	}
	c.JSON(http.StatusOK, recurrences)
}

// generateDueBills godoc
// @Summary Generate upcoming recurring bills
// @Tags bills
// @Produce json
// @Success 200 {object} dto.GenerateBillsResponse
// @Security BearerAuth
// @Router /bills/recurrences/generate [post]
func (h *billHandler) generateDueBills(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	created, err := h.billService.GenerateDueBills(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to generate bills")
		return
	}
	c.JSON(http.StatusOK, dto.GenerateBillsResponse{Created: created})
}

// deactivateRecurrence godoc
// @Summary Stop a recurrence
// @Description Stops generating new bills. Bills already generated are kept.
// @Tags bills
// @Param id path string true "Recurrence ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /bills/recurrences/{id} [delete]
func (h *billHandler) deactivateRecurrence(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.billService.DeactivateRecurrence(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to stop recurrence")
		return
	}
	c.Status(http.StatusNoContent)
}
