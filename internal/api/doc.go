// Package api handles incoming HTTP requests for tasks: request decoding and
// validation, calls into service.TaskService, and response formatting.
//
// Errors returned by the service are classified with errors.Is against the
// store error kinds and translated to status codes by MapErrorToStatusCode.
// Clients only ever see the sanitized message from GetSafeErrorMessage; the
// full error is logged, redacted, with the request's trace ID.
package api
