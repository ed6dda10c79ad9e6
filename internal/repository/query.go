package repository

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/brokeradda/adda-admin/internal/models"
)

// QuerySerializer turns a list query into backend URL parameters.
type QuerySerializer func(q models.ListQuery) url.Values

// NewQuerySerializer builds a serializer that sends page, limit and search
// plus the filters named in params, renamed to their backend parameter.
// Empty values and unknown filter keys are omitted.
func NewQuerySerializer(params map[string]string) QuerySerializer {
	return func(q models.ListQuery) url.Values {
		v := url.Values{}
		if q.Page > 0 {
			v.Set("page", strconv.Itoa(q.Page))
		}
		if q.PageSize > 0 {
			v.Set("limit", strconv.Itoa(q.PageSize))
		}
		if s := strings.TrimSpace(q.Search); s != "" {
			v.Set("search", s)
		}

		keys := make([]string, 0, len(q.Filters))
		for k := range q.Filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			param, ok := params[k]
			val := strings.TrimSpace(q.Filters[k])
			if !ok || val == "" || strings.EqualFold(val, "all") {
				continue
			}
			v.Set(param, val)
		}
		return v
	}
}

// Filter parameters accepted per resource, keyed by the dashboard filter name.
var (
	BrokerParams = map[string]string{
		"status":     "approvedByAdmin",
		"membership": "membership",
		"region":     "region",
		"verified":   "verified",
	}
	LeadParams = map[string]string{
		"region":       "region",
		"propertyType": "propertyType",
		"status":       "status",
		"budget":       "budget",
		"broker":       "broker",
	}
	PropertyParams = map[string]string{
		"status":       "status",
		"propertyType": "propertyType",
		"approval":     "approvedByAdmin",
		"region":       "region",
	}
	RegionParams       = map[string]string{"state": "state"}
	NotificationParams = map[string]string{"type": "type", "audience": "audience"}
	ContactParams      = map[string]string{}
)
