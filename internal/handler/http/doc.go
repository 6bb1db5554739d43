// Package http implements the HTTP transport layer of the service.
//
// It exposes route wiring, request handlers, and middleware for the
// auth REST API. Cross-cutting concerns such as request tracing and
// access logging are handled in this package before requests are
// delegated to the service layer; handlers translate the service
// failure taxonomy into HTTP status codes.
package http
