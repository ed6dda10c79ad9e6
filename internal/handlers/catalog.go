package handlers

import (
	"net/http"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the regions, notifications and contacts pages.
type CatalogHandler struct {
	regions       *service.Regions
	notifications *service.Notifications
	contacts      *service.Contacts
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(dash *service.Dashboard) *CatalogHandler {
	return &CatalogHandler{
		regions:       dash.Regions,
		notifications: dash.Notifications,
		contacts:      dash.Contacts,
	}
}

// CreateRegion handles POST /api/v1/regions
func (h *CatalogHandler) CreateRegion(c *gin.Context) {
	var in models.RegionInput
	if !bindJSON(c, &in) {
		return
	}
	errs, err := h.regions.Create(c.Request.Context(), in)
	if writeFieldErrors(c, errs) {
		return
	}
	if err != nil {
		apierror.WriteClientError(c, err, "regions", apierror.OpMutation)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Region created successfully"})
}

// DeleteRegion handles DELETE /api/v1/regions/:id?name=&confirm=true
func (h *CatalogHandler) DeleteRegion(c *gin.Context) {
	requestAction(c, "regions", h.regions, func() (models.MutationIntent, error) {
		return h.regions.RequestDelete(c.Param("id"), c.Query("name"))
	})
}

// DeleteContact handles DELETE /api/v1/contacts/:id?name=&confirm=true
func (h *CatalogHandler) DeleteContact(c *gin.Context) {
	requestAction(c, "contacts", h.contacts, func() (models.MutationIntent, error) {
		return h.contacts.RequestDelete(c.Param("id"), c.Query("name"))
	})
}

// SendNotification handles POST /api/v1/notifications
func (h *CatalogHandler) SendNotification(c *gin.Context) {
	var in models.NotificationInput
	if !bindJSON(c, &in) {
		return
	}
	errs, err := h.notifications.Send(c.Request.Context(), in)
	if writeFieldErrors(c, errs) {
		return
	}
	if err != nil {
		apierror.WriteClientError(c, err, "notifications", apierror.OpMutation)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Notification sent successfully"})
}
