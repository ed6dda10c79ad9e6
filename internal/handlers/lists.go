package handlers

import (
	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/gin-gonic/gin"
)

// ListHandler serves stateless normalized pages for every resource.
type ListHandler struct {
	dash     *service.Dashboard
	pageSize int
	images   ImageResolver
}

// NewListHandler creates a new list handler
func NewListHandler(dash *service.Dashboard, pageSize int, images ImageResolver) *ListHandler {
	return &ListHandler{dash: dash, pageSize: pageSize, images: images}
}

// Brokers handles GET /api/v1/brokers
func (h *ListHandler) Brokers() gin.HandlerFunc {
	return listEndpoint("brokers", h.pageSize, h.dash.Brokers.List, h.images.broker)
}

// Leads handles GET /api/v1/leads
func (h *ListHandler) Leads() gin.HandlerFunc {
	return listEndpoint("leads", h.pageSize, h.dash.Leads.List, nil)
}

// Properties handles GET /api/v1/properties
func (h *ListHandler) Properties() gin.HandlerFunc {
	return listEndpoint("properties", h.pageSize, h.dash.Properties.List, h.images.property)
}

// Regions handles GET /api/v1/regions
func (h *ListHandler) Regions() gin.HandlerFunc {
	return listEndpoint("regions", h.pageSize, h.dash.Regions.List, nil)
}

// Notifications handles GET /api/v1/notifications
func (h *ListHandler) Notifications() gin.HandlerFunc {
	return listEndpoint("notifications", h.pageSize, h.dash.Notifications.List, nil)
}

// Contacts handles GET /api/v1/contacts
func (h *ListHandler) Contacts() gin.HandlerFunc {
	return listEndpoint("contacts", h.pageSize, h.dash.Contacts.List, nil)
}
