// Package errs defines the error types returned to API clients.
//
// HTTPError is the single error envelope of the API. Handlers and services
// return it as a plain Go error and the global error handler serialises it,
// so every non-2xx response has the same JSON shape.
package errs
