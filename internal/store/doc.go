// Package store defines the persistence interfaces for the application's
// entities. Implementations live under internal/platform; services depend
// only on these interfaces.
package store
