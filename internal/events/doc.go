// Package events defines the event types and emitter used to decouple
// services from background task creation. Services emit TaskRequestEvents;
// handlers registered on the emitter turn them into persisted tasks.
package events
