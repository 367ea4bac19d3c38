// Package handler is the HTTP entry point behind the router. Handlers
// bind and validate input, call a service and write the response.
package handler
