// Package domain contains the core entities of the spark content assistant:
// idea fragments captured by the user, the process-wide creator settings, the
// immutable per-request generation configuration, generated copies and their
// audit scores. Domain types carry their own validation and have no
// dependencies on storage, transport, or LLM providers.
package domain
