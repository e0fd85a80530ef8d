// Package api contains the HTTP handlers, request/response models, and
// error mapping for the study-plan API. Handlers validate input, call the
// service layer, and translate service errors to sanitized HTTP responses.
package api
