// Package task provides the background task infrastructure: a persisted
// task queue, a worker-pool runner with crash recovery, and the concrete
// task types the services enqueue (currently mastery folding).
package task
