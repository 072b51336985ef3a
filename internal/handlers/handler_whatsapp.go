package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/SscSPs/personal_finance_app/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_app/internal/dto"
	"github.com/SscSPs/personal_finance_app/internal/middleware"
	"github.com/SscSPs/personal_finance_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// whatsAppHandler serves the chat webhook. Callers are a messaging gateway, not a signed-in user.
type whatsAppHandler struct {
	whatsAppService portssvc.WhatsAppSvc
	analytics       *utils.PosthogClientWrapper
	verifyToken     string
}

func registerWhatsAppRoutes(r gin.IRouter, whatsAppService portssvc.WhatsAppSvc, analytics *utils.PosthogClientWrapper, verifyToken, apiKey string) {
	h := &whatsAppHandler{whatsAppService: whatsAppService, analytics: analytics, verifyToken: verifyToken}

	webhook := r.Group("/webhooks/whatsapp")
	{
		webhook.GET("", h.verify)
		webhook.POST("", middleware.WebhookAPIKey(apiKey), h.receive)
	}
}

// verify godoc
// @Summary Webhook verification handshake
// @Tags whatsapp
// @Produce plain
// @Param hub.mode query string true "Must be subscribe"
// @Param hub.verify_token query string true "Configured verify token"
// @Param hub.challenge query string true "Echoed back on success"
// @Success 200 {string} string "The challenge"
// @Failure 403 {string} string "Forbidden"
// @Router /webhooks/whatsapp [get]
func (h *whatsAppHandler) verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode != "subscribe" || h.verifyToken == "" || token != h.verifyToken {
		middleware.GetLoggerFromContext(c).Warn("WhatsApp webhook verification failed", slog.String("mode", mode))
		c.String(http.StatusForbidden, "Forbidden")
		return
	}
	c.String(http.StatusOK, challenge)
}

// receive godoc
// @Summary Handle a chat message
// @Description Parses a text command, records expenses and incomes, and returns the reply to send back.
// @Tags whatsapp
// @Accept json
// @Produce json
// @Param message body dto.WhatsAppMessageRequest true "Message"
// @Success 200 {object} dto.WhatsAppMessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Unknown user"
// @Router /webhooks/whatsapp [post]
func (h *whatsAppHandler) receive(c *gin.Context) {
	var req dto.WhatsAppMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	req.Message = strings.TrimSpace(req.Message)
	req.UserID = strings.TrimSpace(req.UserID)
	if req.Message == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message and userId are required"})
		return
	}

	resp, err := h.whatsAppService.HandleMessage(c.Request.Context(), req.UserID, req.Message)
	if err != nil {
		respondWithError(c, err, "Failed to handle message")
		return
	}

	middleware.GetLoggerFromContext(c).Info("WhatsApp command handled",
		slog.String("user_id", req.UserID), slog.String("kind", string(resp.Kind)))
	h.analytics.Enqueue(req.UserID, utils.EventWhatsAppCommand, map[string]any{"kind": string(resp.Kind)})
	c.JSON(http.StatusOK, resp)
}
