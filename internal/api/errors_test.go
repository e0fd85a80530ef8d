package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/premedly/studyplan-api/internal/domain"
	"github.com/premedly/studyplan-api/internal/service"
	"github.com/premedly/studyplan-api/internal/service/auth"
	"github.com/premedly/studyplan-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"invalid source secret", auth.ErrInvalidSourceSecret, http.StatusUnauthorized},
		{"not owned", service.ErrNotOwned, http.StatusForbidden},
		{"premium required", service.ErrPremiumRequired, http.StatusForbidden},
		{"plan not found", service.ErrPlanNotFound, http.StatusNotFound},
		{"activity not found", service.ErrActivityNotFound, http.StatusNotFound},
		{"category not found", service.ErrCategoryNotFound, http.StatusNotFound},
		{"store not found", store.ErrNotFound, http.StatusNotFound},
		{"not replaceable", service.ErrActivityNotReplaceable, http.StatusConflict},
		{"plan exists", store.ErrPlanExists, http.StatusConflict},
		{"unmapped subject", service.ErrUnmappedSubject, http.StatusBadRequest},
		{"invalid exam date", service.ErrInvalidExamDate, http.StatusBadRequest},
		{"invalid scope", service.ErrInvalidScope, http.StatusBadRequest},
		{"invalid section", domain.ErrInvalidSection, http.StatusBadRequest},
		{"invalid counts", domain.ErrInvalidCounts, http.StatusBadRequest},
		{"unknown error", errors.New("driver: bad connection"), http.StatusInternalServerError},
		{
			name:     "wrapped sentinel",
			err:      fmt.Errorf("generate plan: %w", service.ErrPremiumRequired),
			expected: http.StatusForbidden,
		},
		{
			name: "service error wrapping sentinel",
			err: &service.SchedulerServiceError{
				Operation: "replace_activity",
				Message:   "activity is terminal",
				Err:       service.ErrActivityNotReplaceable,
			},
			expected: http.StatusConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapErrorToStatusCode(tc.err); got != tc.expected {
				t.Errorf("Expected status %d, got %d", tc.expected, got)
			}
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		if got := GetSafeErrorMessage(nil); got != "An unexpected error occurred" {
			t.Errorf("Expected generic message, got %q", got)
		}
	})

	t.Run("internal details never leak", func(t *testing.T) {
		err := errors.New("pq: connection to postgres://app:hunter22@db:5432 refused")
		got := GetSafeErrorMessage(err)
		if strings.Contains(got, "postgres") || strings.Contains(got, "hunter22") {
			t.Errorf("Safe message leaked internal details: %q", got)
		}
	})

	t.Run("sentinel maps to its message", func(t *testing.T) {
		got := GetSafeErrorMessage(fmt.Errorf("ingest: %w", service.ErrUnmappedSubject))
		if got != "Unknown subject label" {
			t.Errorf("Expected subject message, got %q", got)
		}
	})
}
