// Package events provides a lightweight in-process event mechanism that
// decouples the services that trigger background work from the task runner
// that executes it. Services emit TaskRequestEvents; a handler in the task
// layer turns them into queued tasks.
package events
