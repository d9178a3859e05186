// Package task implements background task processing: a worker-pool runner
// consuming an in-memory queue, a best-effort task store for status tracking
// and recovery, and the fragment tagging task that labels newly captured
// fragments asynchronously.
package task
