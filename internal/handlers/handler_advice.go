package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/SscSPs/personal_finance_app/internal/middleware"
	"github.com/SscSPs/personal_finance_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

type adviceHandler struct {
	adviceService portssvc.AdviceSvc
	analytics     *utils.PosthogClientWrapper
}

func registerAdviceRoutes(rg *gin.RouterGroup, adviceService portssvc.AdviceSvc, analytics *utils.PosthogClientWrapper, adviceLimiter *limiter.Limiter) {
	h := &adviceHandler{adviceService: adviceService, analytics: analytics}
	rg.POST("/advice", middleware.RateLimit(adviceLimiter), h.getAdvice)
}

// getAdvice godoc
// @Summary Ask for financial advice
// @Description Sends a summary of recent transactions to a language model and returns its advice. The question is optional.
// @Tags advice
// @Accept json
// @Produce json
// @Param request body dto.AdviceRequest false "Optional question"
// @Success 200 {object} dto.AdviceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Failure 502 {object} dto.ErrorResponse "Advice provider unavailable"
// @Security BearerAuth
// @Router /advice [post]
func (h *adviceHandler) getAdvice(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AdviceRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	advice, err := h.adviceService.GetAdvice(c.Request.Context(), userID, req.Question)
	if err != nil {
		respondWithError(c, err, "Failed to generate advice")
		return
	}

	middleware.PosthogEvent(c, h.analytics, utils.EventAdviceRequested, map[string]any{
		"with_question": req.Question != "",
	})
	c.JSON(http.StatusOK, dto.AdviceResponse{Advice: advice})
}
