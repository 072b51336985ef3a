package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type loanHandler struct {
	loanService portssvc.LoanSvcFacade
}

func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade) {
	h := &loanHandler{loanService: loanService}

	loans := rg.Group("/loans")
	{
		loans.POST("", h.createLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:id", h.getLoan)
		loans.PUT("/:id", h.updateLoan)
		loans.DELETE("/:id", h.deleteLoan)
		loans.GET("/:id/payments", h.listPayments)
		loans.POST("/:id/payments", h.addPayment)
		loans.DELETE("/:id/payments/:paymentId", h.deletePayment)
	}
}

// createLoan godoc
// @Summary Record a loan
// @Tags loans
// @Accept json
// @Produce json
// @Param loan body dto.CreateLoanRequest true "Loan"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans [post]
func (h *loanHandler) createLoan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	loan, err := h.loanService.CreateLoan(c.Request.Context(), userID, req)
	if err != nil {
		respondWithError(c, err, "Failed to create loan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLoanResponse(*loan))
}

// listLoans godoc
// @Summary List loans
// @Tags loans
// @Produce json
// @Param type query string false "lent or borrowed"
// @Param status query string false "pending, partial or paid"
// @Success 200 {array} dto.LoanResponse
// @Security BearerAuth
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var params dto.ListLoansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	loans, err := h.loanService.ListLoans(c.Request.Context(), userID, params)
	if err != nil {
		respondWithError(c, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLoanResponse(loans))
}

// getLoan godoc
// @Summary Get a loan
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	loan, err := h.loanService.GetLoan(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(*loan))
}

// updateLoan godoc
// @Summary Update a loan
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param loan body dto.UpdateLoanRequest true "Fields to update"
// @Success 200 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [put]
func (h *loanHandler) updateLoan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	loan, err := h.loanService.UpdateLoan(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(*loan))
}

// deleteLoan godoc
// @Summary Delete a loan and its payments
// @Tags loans
// @Param id path string true "Loan ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.loanService.DeleteLoan(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete loan")
		return
	}
	c.Status(http.StatusNoContent)
}

// listPayments godoc
// @Summary List payments of a loan
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Success 200 {array} domain.LoanPayment
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id}/payments [get]
func (h *loanHandler) listPayments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	payments, err := h.loanService.ListPayments(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to list loan payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

// addPayment godoc
// @Summary Record a partial or full loan payment
// @Tags loans
// @Accept json
// @Produce json
// @Param id path string true "Loan ID"
// @Param payment body dto.AddLoanPaymentRequest true "Payment"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} dto.ErrorResponse "Payment exceeds the remaining balance"
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id}/payments [post]
func (h *loanHandler) addPayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AddLoanPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	loan, err := h.loanService.AddPayment(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to add loan payment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLoanResponse(*loan))
}

// deletePayment godoc
// @Summary Remove a loan payment
// @Tags loans
// @Produce json
// @Param id path string true "Loan ID"
// @Param paymentId path string true "Payment ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /loans/{id}/payments/{paymentId} [delete]
func (h *loanHandler) deletePayment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	loan, err := h.loanService.DeletePayment(c.Request.Context(), userID, c.Param("id"), c.Param("paymentId"))
	if err != nil {
		respondWithError(c, err, "Failed to delete loan payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(*loan))
}
