// Package generation contains the AI-orchestration pipeline: the provider
// abstraction over interchangeable text-generation backends, the prompt
// builders for each task, the generation orchestrator, the structured audit
// engine, and the cover-image synthesis adapter. It abstracts the details of
// LLM API integration, allowing the application to produce platform-tailored
// copies without coupling to specific external services.
package generation
