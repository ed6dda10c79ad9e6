package apierror

// Error type URIs used as the "type" field in RFC 9457 Problem Details.
const (
	TypeValidation   = "urn:brokeradda:error:validation"
	TypeNotFound     = "urn:brokeradda:error:not_found"
	TypeRateLimit    = "urn:brokeradda:error:rate_limit"
	TypeUnauthorized = "urn:brokeradda:error:unauthorized"
	TypeForbidden    = "urn:brokeradda:error:forbidden"
	TypeInternal     = "urn:brokeradda:error:internal"
	TypeBadRequest   = "urn:brokeradda:error:bad_request"
	TypeConflict     = "urn:brokeradda:error:conflict"
	// TypeUpstream indicates the Broker Adda backend rejected or failed a call (502)
	TypeUpstream = "urn:brokeradda:error:upstream"
)

const (
	TitleValidation   = "Validation Error"
	TitleNotFound     = "Resource Not Found"
	TitleRateLimit    = "Rate Limit Exceeded"
	TitleUnauthorized = "Authentication Required"
	TitleForbidden    = "Permission Denied"
	TitleInternal     = "Internal Server Error"
	TitleBadRequest   = "Bad Request"
	TitleConflict     = "Conflict"
	TitleUpstream     = "Upstream Request Failed"
)
