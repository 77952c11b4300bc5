package common

const (
	// AuthorizationHeaderName carries the bearer token issued by the identity provider.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries the request correlation id in both directions.
	RequestIDHeaderName = "X-Request-ID"
)
