package handlers

import (
	"net/http"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/logger"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/mutation"
	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/gin-gonic/gin"
)

// PropertyHandler serves the property detail page and its approve/reject
// buttons.
type PropertyHandler struct {
	properties *service.Properties
	images     ImageResolver
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(properties *service.Properties, images ImageResolver) *PropertyHandler {
	return &PropertyHandler{properties: properties, images: images}
}

// Get handles GET /api/v1/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	p, err := h.properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierror.WriteClientError(c, err, "properties", apierror.OpItem)
		return
	}
	c.JSON(http.StatusOK, h.images.property(p))
}

type decisionRequest struct {
	Title string `json:"title"`
}

// Decide handles POST /api/v1/properties/:id/:action (approve or reject).
// On success the reloaded detail is returned with the message; a failure is
// answered with a problem and the client reloads the detail itself.
func (h *PropertyHandler) Decide(c *gin.Context) {
	var req decisionRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	id := c.Param("id")
	intent := models.MutationIntent{TargetID: id, TargetName: req.Title, Kind: models.MutationKind(c.Param("action"))}

	if err := h.properties.Decide(ctx, id, req.Title, intent.Kind); err != nil {
		writeActionError(c, err, "properties")
		return
	}

	resp := gin.H{"message": mutation.SuccessMessage(intent)}
	if p, err := h.properties.Get(ctx, id); err == nil {
		resp["property"] = h.images.property(p)
	} else {
		logger.Ctx(ctx).Warn("failed to reload property", logger.String("id", id), logger.Err(err))
	}
	c.JSON(http.StatusOK, resp)
}
