package middleware

import (
	"net/http"

	"github.com/SscSPs/personal_finance_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// routeEvents names the analytics event for each tracked route, keyed by method and
// gin route pattern. Transaction creation, import commits and advice are sent by
// their handlers with richer properties, so they are not listed here.
var routeEvents = map[string]string{
	"PUT /api/v1/users/me": "profile_updated",

	"PUT /api/v1/transactions/:id":    "transaction_updated",
	"DELETE /api/v1/transactions/:id": "transaction_deleted",

	"POST /api/v1/categories":       "category_created",
	"PUT /api/v1/categories/:id":    "category_updated",
	"DELETE /api/v1/categories/:id": "category_deleted",

	"POST /api/v1/bills":                      "bill_created",
	"PUT /api/v1/bills/:id":                   "bill_updated",
	"DELETE /api/v1/bills/:id":                "bill_deleted",
	"POST /api/v1/bills/:id/pay":              "bill_paid",
	"POST /api/v1/bills/:id/cancel":           "bill_canceled",
	"POST /api/v1/bills/recurrences/generate": "bills_generated",
	"DELETE /api/v1/bills/recurrences/:id":    "bill_recurrence_deactivated",

	"POST /api/v1/loans":                           "loan_created",
	"PUT /api/v1/loans/:id":                        "loan_updated",
	"DELETE /api/v1/loans/:id":                     "loan_deleted",
	"POST /api/v1/loans/:id/payments":              "loan_payment_added",
	"DELETE /api/v1/loans/:id/payments/:paymentId": "loan_payment_deleted",

	"POST /api/v1/budgets":       "budget_created",
	"PUT /api/v1/budgets/:id":    "budget_updated",
	"DELETE /api/v1/budgets/:id": "budget_deleted",

	"POST /api/v1/goals":                   "goal_created",
	"PUT /api/v1/goals/:id":                "goal_updated",
	"DELETE /api/v1/goals/:id":             "goal_deleted",
	"POST /api/v1/goals/:id/contributions": "goal_contribution_added",

	"POST /api/v1/imports/preview": "statement_previewed",
}

// routeEvent returns the event tracked for a method and route pattern.
func routeEvent(method, fullPath string) (string, bool) {
	event, ok := routeEvents[method+" "+fullPath]
	return event, ok
}

// PosthogMiddleware sends one analytics event per successful write to a tracked route,
// attributed to the authenticated user.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		event, ok := routeEvent(c.Request.Method, c.FullPath())
		if !ok {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		props := map[string]any{"status_code": c.Writer.Status()}
		if id := c.Param("id"); id != "" {
			props["resource_id"] = id
		}
		if paymentID := c.Param("paymentId"); paymentID != "" {
			props["payment_id"] = paymentID
		}
		posthogClient.Enqueue(userID, event, props)
	}
}

// PosthogEvent sends a handler-defined event for the authenticated user.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["route"] = c.FullPath()
	posthogClient.Enqueue(userID, eventName, properties)
}
