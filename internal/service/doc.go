// Package service provides application-level services for mastery tracking,
// practice-result ingestion, and study-plan scheduling. Services own the
// transaction boundaries; stores perform the individual reads and writes.
package service
