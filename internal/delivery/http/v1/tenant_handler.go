package v1

import (
	"net/http"

	"go-recruitment-chatbot/internal/delivery/http/response"
	"go-recruitment-chatbot/internal/domain"
	"go-recruitment-chatbot/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type TenantHandler struct {
	tenantUC domain.TenantUsecase
}

// NewTenantHandler registers the tenant configuration routes (dashboard,
// JWT protected).
func NewTenantHandler(protected *gin.RouterGroup, tenantUC domain.TenantUsecase) {
	handler := &TenantHandler{tenantUC: tenantUC}

	tenants := protected.Group("/tenants")
	{
		tenants.GET("", handler.List)
		tenants.GET("/:id", handler.Get)
		tenants.PUT("/:id/branding", handler.UpdateBranding)
		tenants.PUT("/:id/alert-settings", handler.UpdateAlertSettings)
	}
}

// List godoc
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]domain.Tenant}
// @Router       /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.tenantUC.ListTenants(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tenants fetched", tenants)
}

// Get godoc
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tenant ID"
// @Success      200  {object}  response.Response{data=domain.Tenant}
// @Failure      404  {object}  response.Response
// @Router       /tenants/{id} [get]
func (h *TenantHandler) Get(c *gin.Context) {
	tenant, err := h.tenantUC.GetTenant(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Tenant fetched", tenant)
}

// UpdateBranding godoc
// @Summary      Update tenant branding
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string           true  "Tenant ID"
// @Param        branding  body      domain.Branding  true  "Branding settings"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /tenants/{id}/branding [put]
func (h *TenantHandler) UpdateBranding(c *gin.Context) {
	var branding domain.Branding
	if err := c.ShouldBindJSON(&branding); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.tenantUC.UpdateBranding(c.Request.Context(), c.Param("id"), branding); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Branding updated", nil)
}

// UpdateAlertSettings godoc
// @Summary      Update tenant alert settings
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string                true  "Tenant ID"
// @Param        settings  body      domain.AlertSettings  true  "Alert settings"
// @Success      200       {object}  response.Response
// @Failure      400       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /tenants/{id}/alert-settings [put]
func (h *TenantHandler) UpdateAlertSettings(c *gin.Context) {
	var settings domain.AlertSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.tenantUC.UpdateAlertSettings(c.Request.Context(), c.Param("id"), settings); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Alert settings updated", nil)
}
