package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/csvimport"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/brokeradda/adda-admin/internal/repository"
	"github.com/brokeradda/adda-admin/internal/service"
	"github.com/gin-gonic/gin"
)

// MaxImportBytes bounds an uploaded CSV.
const MaxImportBytes = 20 << 20

type ImportHandler struct {
	imports *service.Imports
}

// NewImportHandler creates a new import handler
func NewImportHandler(imports *service.Imports) *ImportHandler {
	return &ImportHandler{imports: imports}
}

// Tabs handles GET /api/v1/import
func (h *ImportHandler) Tabs(c *gin.Context) {
	c.JSON(http.StatusOK, h.imports.Tabs())
}

// Upload handles POST /api/v1/import/:kind with a multipart "file" field.
func (h *ImportHandler) Upload(c *gin.Context) {
	requestID := apierror.GetRequestID(c)
	kind := models.ImportKind(c.Param("kind"))
	if !kind.Valid() {
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "import", string(kind)))
		return
	}

	fh, err := c.FormFile(repository.ImportField)
	if err != nil {
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: repository.ImportField, Message: csvimport.MsgInvalidFile, Code: "required"},
		}))
		return
	}
	if fh.Size > MaxImportBytes {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
			fmt.Sprintf("file is %d bytes, limit is %d", fh.Size, MaxImportBytes), "The file is too large"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), csvimport.MsgInvalidFile))
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, MaxImportBytes))
	if err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), csvimport.MsgInvalidFile))
		return
	}

	tab, err := h.imports.Upload(c.Request.Context(), kind, fh.Filename, data)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, tab)
	case errors.Is(err, csvimport.ErrInvalidFile):
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: repository.ImportField, Message: csvimport.MsgInvalidFile, Code: "invalid_format"},
		}))
	case errors.Is(err, csvimport.ErrInProgress):
		apierror.WriteProblem(c, apierror.NewConflictError(requestID, err.Error(), "An import is already running for this tab."))
	case tab.State == csvimport.Failed:
		apierror.WriteProblem(c, apierror.NewUpstreamError(requestID, tab.Err))
	default:
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}

// Reset handles DELETE /api/v1/import/:kind
func (h *ImportHandler) Reset(c *gin.Context) {
	requestID := apierror.GetRequestID(c)
	tab, err := h.imports.Reset(models.ImportKind(c.Param("kind")))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, tab)
	case errors.Is(err, csvimport.ErrUnknownKind):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, "import", c.Param("kind")))
	default:
		apierror.WriteProblem(c, apierror.NewConflictError(requestID, err.Error(), "An import is already running for this tab."))
	}
}
