// Package store defines the persistence interfaces and shared errors for the
// study-plan engine. Implementations live in platform-specific packages.
package store
