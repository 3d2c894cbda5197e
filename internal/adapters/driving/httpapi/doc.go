// Package httpapi serves the task API over HTTP.
//
// Routes use net/http method patterns. Every response is JSON; failures are
// {"success": false, "error": "..."} with 400 for invalid input, 404 for a
// missing task and 500 for anything else. Internal error detail is logged,
// never returned.
//
// Middleware, outermost first: panic recovery, request id, access log,
// rate limiting, request timeout.
package httpapi
