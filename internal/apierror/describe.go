package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/brokeradda/adda-admin/pkg/adda"
	"github.com/gin-gonic/gin"
)

// MsgNoToken is shown whenever a call is attempted without a session token.
const MsgNoToken = "No authentication token found. Please log in again."

// Operation distinguishes list fetches from single-item fetches, which word
// a 404 differently.
type Operation int

const (
	OpList Operation = iota
	OpItem
	OpMutation
)

// Describe turns a client error into the message shown in the dashboard.
// resource is the plural noun used by the page ("brokers", "leads").
func Describe(err error, resource string, op Operation) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, adda.ErrNoToken) {
		return MsgNoToken
	}

	switch status := adda.StatusCode(err); {
	case status == http.StatusUnauthorized:
		return "Authentication failed. Please log in again."
	case status == http.StatusForbidden:
		return fmt.Sprintf("Access denied. You don't have permission to view %s.", resource)
	case status == http.StatusNotFound && op == OpList:
		return fmt.Sprintf("%s endpoint not found", capitalize(resource))
	case status == http.StatusNotFound:
		return "Data not found"
	case status >= 500:
		return "Server error. Please try again later."
	}

	if op == OpMutation {
		return fmt.Sprintf("Failed to update %s", resource)
	}
	return fmt.Sprintf("Failed to fetch %s", resource)
}

// WriteClientError maps a backend failure onto a problem response.
func WriteClientError(c *gin.Context, err error, resource string, op Operation) {
	requestID := GetRequestID(c)
	msg := Describe(err, resource, op)

	switch {
	case errors.Is(err, adda.ErrNoToken), adda.StatusCode(err) == http.StatusUnauthorized:
		p := NewUnauthorizedError(requestID)
		p.UserMessage = msg
		WriteProblem(c, p)
	case adda.StatusCode(err) == http.StatusForbidden:
		p := NewForbiddenError(requestID)
		p.UserMessage = msg
		WriteProblem(c, p)
	case adda.StatusCode(err) == http.StatusNotFound:
		p := NewNotFoundError(requestID, resource, c.Param("id"))
		p.UserMessage = msg
		WriteProblem(c, p)
	default:
		WriteProblem(c, NewUpstreamError(requestID, msg))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
