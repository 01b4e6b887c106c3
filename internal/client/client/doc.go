// Package client is the HTTP client of the driving-quiz REST API and the only
// place the program talks to the network.
//
// # Overview
//
// HTTPClient exposes one method per endpoint (Login, Me, Register,
// GenerateQuiz, SubmitAnswer, the quiz list/get/create calls, the analysis
// and profile calls, Ping). Callers never choose an encoding: login is an
// OAuth2 password grant (form), quiz generation is a streamed multipart
// upload, everything else is JSON. Every response is decoded into an explicit
// struct and checked before it is handed out.
//
// # Authentication
//
// All requests go through authTransport, which reads the credential store
// and attaches "Authorization: Bearer <token>" when a token exists. Any 401
// clears the stored token (only if it is still the one that was sent) and
// notifies the subscribers registered with OnUnauthorized. The caller still
// receives ErrUnauthorized.
//
// # Error Handling
//
// Errors can be matched with errors.Is / errors.As: ErrUnauthorized,
// ErrUnavailable, ErrMalformedResponse, *APIError. Classify maps them onto
// the kinds in package common.
//
// Every call is bounded by a deadline; there are no retries.
package client
