package handlers

import (
	"net/http"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/gin-gonic/gin"
)

// BrokerHandler serves the brokers page: summary counters, the add form and
// row actions.
type BrokerHandler struct {
	brokers *service.Brokers
}

// NewBrokerHandler creates a new broker handler
func NewBrokerHandler(brokers *service.Brokers) *BrokerHandler {
	return &BrokerHandler{brokers: brokers}
}

// Summary handles GET /api/v1/brokers/summary
func (h *BrokerHandler) Summary(c *gin.Context) {
	counters, err := h.brokers.LoadCounters(c.Request.Context())
	if err != nil {
		apierror.WriteClientError(c, err, "brokers", apierror.OpList)
		return
	}
	c.JSON(http.StatusOK, counters)
}

// Counters handles GET /api/v1/brokers/counters
func (h *BrokerHandler) Counters(c *gin.Context) {
	c.JSON(http.StatusOK, h.brokers.Counters())
}

// Create handles POST /api/v1/brokers
func (h *BrokerHandler) Create(c *gin.Context) {
	var in models.BrokerInput
	if !bindJSON(c, &in) {
		return
	}
	errs, err := h.brokers.Create(c.Request.Context(), in)
	if writeFieldErrors(c, errs) {
		return
	}
	if err != nil {
		apierror.WriteClientError(c, err, "brokers", apierror.OpMutation)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Broker added successfully"})
}

type actionRequest struct {
	Name string `json:"name"`
}

// Action handles POST /api/v1/brokers/:id/:action
func (h *BrokerHandler) Action(c *gin.Context) {
	var req actionRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	kind := models.MutationKind(c.Param("action"))
	requestAction(c, "brokers", h.brokers, func() (models.MutationIntent, error) {
		return h.brokers.Request(c.Param("id"), req.Name, kind)
	})
}
