package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/mutation"
	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/gin-gonic/gin"
)

// confirmer is a page whose row actions go through a confirmation dialog.
type confirmer interface {
	Confirm(ctx context.Context) error
	Cancel()
	Pending() (models.MutationIntent, bool)
}

// ActionHandler exposes the confirmation dialogs of the brokers, regions
// and contacts pages.
type ActionHandler struct {
	pages map[string]confirmer
}

// NewActionHandler creates a new action handler
func NewActionHandler(dash *service.Dashboard) *ActionHandler {
	return &ActionHandler{pages: map[string]confirmer{
		"brokers":  dash.Brokers,
		"regions":  dash.Regions,
		"contacts": dash.Contacts,
	}}
}

func (h *ActionHandler) page(c *gin.Context) (string, confirmer, bool) {
	resource := c.Param("resource")
	p, ok := h.pages[resource]
	if !ok {
		apierror.WriteProblem(c, apierror.NewNotFoundError(apierror.GetRequestID(c), "actions", resource))
		return "", nil, false
	}
	return resource, p, true
}

// Pending handles GET /api/v1/actions/:resource
func (h *ActionHandler) Pending(c *gin.Context) {
	_, p, ok := h.page(c)
	if !ok {
		return
	}
	intent, open := p.Pending()
	if !open {
		c.JSON(http.StatusOK, gin.H{"dialog_open": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dialog_open": true, "pending": intent})
}

// Confirm handles POST /api/v1/actions/:resource/confirm
func (h *ActionHandler) Confirm(c *gin.Context) {
	resource, p, ok := h.page(c)
	if !ok {
		return
	}
	confirmPending(c, resource, p)
}

// Cancel handles DELETE /api/v1/actions/:resource
func (h *ActionHandler) Cancel(c *gin.Context) {
	_, p, ok := h.page(c)
	if !ok {
		return
	}
	p.Cancel()
	c.JSON(http.StatusOK, gin.H{"dialog_open": false})
}

// requestAction opens the dialog for an action. With ?confirm=true the
// caller has already confirmed and the action runs straight away.
func requestAction(c *gin.Context, resource string, p confirmer, request func() (models.MutationIntent, error)) {
	intent, err := request()
	if err != nil {
		writeActionError(c, err, resource)
		return
	}
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusAccepted, gin.H{"dialog_open": true, "pending": intent})
		return
	}
	confirmPending(c, resource, p)
}

func confirmPending(c *gin.Context, resource string, p confirmer) {
	intent, ok := p.Pending()
	if !ok {
		writeActionError(c, mutation.ErrNoPendingIntent, resource)
		return
	}
	if err := p.Confirm(c.Request.Context()); err != nil {
		writeActionError(c, err, resource)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": mutation.SuccessMessage(intent),
		"action":  intent,
	})
}

func writeActionError(c *gin.Context, err error, resource string) {
	requestID := apierror.GetRequestID(c)
	switch {
	case errors.Is(err, mutation.ErrBusy):
		apierror.WriteProblem(c, apierror.NewConflictError(requestID, err.Error(), "Another action is in progress. Please wait."))
	case errors.Is(err, mutation.ErrNoPendingIntent):
		apierror.WriteProblem(c, apierror.NewConflictError(requestID, err.Error(), "There is no action awaiting confirmation."))
	case errors.Is(err, mutation.ErrInvalidIntent), errors.Is(err, service.ErrUnsupportedAction):
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "This action is not available."))
	default:
		apierror.WriteClientError(c, err, resource, apierror.OpMutation)
	}
}
