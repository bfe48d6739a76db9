package apierror

// Problem type URIs (urn:tempo:error:*), used as the RFC 9457 "type" member.
// The HTTP status each one maps to is fixed by its constructor in response.go.
const (
	TypeValidation   = "urn:tempo:error:validation"
	TypeBadRequest   = "urn:tempo:error:bad_request"
	TypeFutureDate   = "urn:tempo:error:future_date"
	TypeUnauthorized = "urn:tempo:error:unauthorized"
	TypeNotFound     = "urn:tempo:error:not_found"
	TypeRateLimit    = "urn:tempo:error:rate_limited"
	TypeInternal     = "urn:tempo:error:internal"
	TypeUnavailable  = "urn:tempo:error:unavailable"
)

const (
	TitleValidation   = "Validation Error"
	TitleBadRequest   = "Bad Request"
	TitleFutureDate   = "Future Date Not Allowed"
	TitleUnauthorized = "Authentication Required"
	TitleNotFound     = "Resource Not Found"
	TitleRateLimit    = "Too Many Requests"
	TitleInternal     = "Internal Server Error"
	TitleUnavailable  = "Service Unavailable"
)
