// Package gemini implements the primary provider adapter on top of Google's
// Gemini API via the google.golang.org/genai SDK. It covers the three native
// calling conventions the pipeline needs: plain text generation with an
// optional thinking budget, schema-constrained JSON for the audit engine,
// and image generation with a fixed portrait aspect ratio.
package gemini
