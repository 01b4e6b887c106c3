// Package common contains shared constants and the error taxonomy used across
// drivequiz client components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName correlates a client request with server logs.
const RequestIDHeaderName = "X-Request-ID"

// CredentialKey is the fixed storage key of the persisted bearer token.
const CredentialKey = "token"
