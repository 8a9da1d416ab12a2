package v1

import (
	"net/http"

	"go-recruitment-chatbot/internal/delivery/http/response"
	"go-recruitment-chatbot/internal/domain"

	"github.com/gin-gonic/gin"
)

type AlertHandler struct {
	alertUC domain.AlertUsecase
}

// NewAlertHandler registers the manual alert trigger (dashboard, JWT
// protected). The same scan also runs on the cron schedule.
func NewAlertHandler(protected *gin.RouterGroup, alertUC domain.AlertUsecase) {
	handler := &AlertHandler{alertUC: alertUC}

	protected.POST("/alerts/unfilled-check", handler.RunUnfilledCheck)
}

// RunUnfilledCheck godoc
// @Summary      Run the unfilled-requisition check
// @Description  Scans requisitions open past the tenant threshold and emails recruiters. Scans all active tenants unless tenant_id is given.
// @Tags         alerts
// @Produce      json
// @Security     BearerAuth
// @Param        tenant_id  query     string  false  "Restrict the scan to one tenant"
// @Success      200        {object}  response.Response{data=domain.AlertSummary}
// @Failure      404        {object}  response.Response
// @Router       /alerts/unfilled-check [post]
func (h *AlertHandler) RunUnfilledCheck(c *gin.Context) {
	summary, err := h.alertUC.RunUnfilledCheck(c.Request.Context(), c.Query("tenant_id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Unfilled-requisition check finished", summary)
}
