// Package api contains the HTTP handlers, request/response models, and
// error mapping for the content assistant's REST surface.
package api
