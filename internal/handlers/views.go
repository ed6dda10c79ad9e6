package handlers

import (
	"net/http"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/listctl"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/gin-gonic/gin"
)

// ViewHandler drives the stateful list pages: search box, filter panel,
// pagination and refresh. Every endpoint answers with the page state.
type ViewHandler struct {
	dash   *service.Dashboard
	images ImageResolver
}

// NewViewHandler creates a new view handler
func NewViewHandler(dash *service.Dashboard, images ImageResolver) *ViewHandler {
	return &ViewHandler{dash: dash, images: images}
}

func (h *ViewHandler) view(c *gin.Context) (service.View, bool) {
	resource := c.Param("resource")
	v, ok := h.dash.View(resource)
	if !ok {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "views", resource))
		return nil, false
	}
	return v, true
}

func (h *ViewHandler) respond(c *gin.Context, v service.View) {
	switch st := v.State().(type) {
	case listctl.State[models.Broker]:
		st.Items = mapItems(st.Items, h.images.broker)
		c.JSON(http.StatusOK, st)
	case listctl.State[models.PropertyCard]:
		st.Items = mapItems(st.Items, h.images.property)
		c.JSON(http.StatusOK, st)
	default:
		c.JSON(http.StatusOK, st)
	}
}

func mapItems[T any](items []T, fn func(T) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}

// Get handles GET /api/v1/views/:resource. The first call mounts the page.
func (h *ViewHandler) Get(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	v.Mount()
	h.respond(c, v)
}

type searchRequest struct {
	Text string `json:"text"`
}

// Search handles POST /api/v1/views/:resource/search. The fetch happens
// once typing pauses, so the returned state may still show old items.
func (h *ViewHandler) Search(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	var req searchRequest
	if !bindJSON(c, &req) {
		return
	}
	v.Search(req.Text)
	h.respond(c, v)
}

type filterRequest struct {
	Value string `json:"value"`
}

// SetFilter handles PUT /api/v1/views/:resource/filters/:key
func (h *ViewHandler) SetFilter(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	var req filterRequest
	if !bindJSON(c, &req) {
		return
	}
	v.SetFilter(c.Param("key"), req.Value)
	h.respond(c, v)
}

// ApplyFilters handles POST /api/v1/views/:resource/filters/apply
func (h *ViewHandler) ApplyFilters(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	v.ApplyFilters()
	h.respond(c, v)
}

// ClearFilters handles DELETE /api/v1/views/:resource/filters
func (h *ViewHandler) ClearFilters(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	v.ClearFilters()
	h.respond(c, v)
}

type panelRequest struct {
	Open bool `json:"open"`
}

// FilterPanel handles POST /api/v1/views/:resource/filters/panel
func (h *ViewHandler) FilterPanel(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	var req panelRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Open {
		v.OpenFilterPanel()
	} else {
		v.CloseFilterPanel()
	}
	h.respond(c, v)
}

type pageRequest struct {
	Page int `json:"page"`
}

// GoToPage handles POST /api/v1/views/:resource/page
func (h *ViewHandler) GoToPage(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	var req pageRequest
	if !bindJSON(c, &req) {
		return
	}
	v.GoToPage(req.Page)
	h.respond(c, v)
}

// Refresh handles POST /api/v1/views/:resource/refresh
func (h *ViewHandler) Refresh(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	v.Mount()
	v.Refetch()
	h.respond(c, v)
}
