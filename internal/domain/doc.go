// Package domain contains the core business entities of the study-plan
// engine: the category taxonomy, per-user knowledge profiles, practice
// evidence pulses, study plans, and scheduled calendar activities.
package domain
