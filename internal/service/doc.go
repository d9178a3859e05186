// Package service implements the application's use cases on top of the
// domain, stores, and generation pipeline: fragment capture with
// asynchronous tagging, the full generation cycle, re-audit, style analysis,
// and settings management.
package service
