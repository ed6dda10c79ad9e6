package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/brokeradda/adda-admin/internal/apierror"
	"github.com/brokeradda/adda-admin/internal/models"
	"github.com/gin-gonic/gin"
)

// reserved query parameters that are not filters
var reserved = map[string]bool{"page": true, "limit": true, "search": true}

// listQuery reads page, search and every other parameter as a filter. The
// repositories drop filters they do not know.
func listQuery(c *gin.Context, pageSize int) models.ListQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	q := models.ListQuery{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		Filters:  map[string]string{},
	}
	for key, values := range c.Request.URL.Query() {
		if reserved[key] || len(values) == 0 {
			continue
		}
		if v := strings.TrimSpace(values[0]); v != "" {
			q.Filters[key] = v
		}
	}
	return q
}

// listEndpoint serves one normalized page. mapItem, when set, rewrites each
// item before it is sent.
func listEndpoint[T any](resource string, pageSize int,
	fetch func(ctx context.Context, q models.ListQuery) (models.Page[T], error), mapItem func(T) T) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := fetch(c.Request.Context(), listQuery(c, pageSize))
		if err != nil {
			apierror.WriteClientError(c, err, resource, apierror.OpList)
			return
		}
		page.Clamp(pageSize)
		if mapItem != nil {
			for i := range page.Items {
				page.Items[i] = mapItem(page.Items[i])
			}
		}
		c.JSON(http.StatusOK, page)
	}
}

// bindJSON decodes the request body or writes a 400 problem.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		apierror.WriteProblem(c, apierror.NewBadRequestError(apierror.GetRequestID(c), err.Error(), "Invalid JSON format"))
		return false
	}
	return true
}

// writeFieldErrors writes a validation problem when errs is non-empty.
func writeFieldErrors(c *gin.Context, errs []apierror.FieldError) bool {
	if len(errs) == 0 {
		return false
	}
	apierror.WriteProblem(c, apierror.NewValidationError(apierror.GetRequestID(c), errs))
	return true
}
