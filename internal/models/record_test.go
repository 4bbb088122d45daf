// ABOUTME: Tests for record models and RecordType.
// ABOUTME: Validates constructors, date truncation, and builder methods.
package models

import (
	"testing"
	"time"
)

func TestIsValidRecordType(t *testing.T) {
	for _, rt := range AllRecordTypes {
		if !IsValidRecordType(string(rt)) {
			t.Errorf("IsValidRecordType(%s) = false, want true", rt)
		}
	}
	if IsValidRecordType("mood") {
		t.Error("IsValidRecordType(mood) = true, want false")
	}
	if IsValidRecordType("") {
		t.Error("IsValidRecordType(\"\") = true, want false")
	}
}

func TestDate(t *testing.T) {
	in := time.Date(2026, time.August, 20, 23, 45, 12, 999, time.FixedZone("X", 3600))
	got := Date(in)

	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("Date did not truncate to midnight: %v", got)
	}
	if got.Location() != time.UTC {
		t.Errorf("Date location = %v, want UTC", got.Location())
	}
	if got.Year() != 2026 || got.Month() != time.August || got.Day() != 20 {
		t.Errorf("Date = %v, want 2026-08-20", got)
	}
}

func TestNewRecovery(t *testing.T) {
	r := NewRecovery(time.Now(), 72, 48, 55)

	if r.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if r.RecoveryScore != 72 {
		t.Errorf("RecoveryScore = %f, want 72", r.RecoveryScore)
	}
	if r.RecordedOn.Hour() != 0 {
		t.Error("expected RecordedOn truncated to midnight")
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if r.Notes != nil {
		t.Error("expected Notes to start nil")
	}

	r.WithNotes("rough night")
	if r.Notes == nil || *r.Notes != "rough night" {
		t.Error("WithNotes did not set notes")
	}
}

func TestSleepHours(t *testing.T) {
	s := NewSleep(time.Now(), 88, 7.5*60*60*1000)

	if got := s.Hours(); got != 7.5 {
		t.Errorf("Hours() = %f, want 7.5", got)
	}
}

func TestWorkoutIsStrength(t *testing.T) {
	tests := []struct {
		kind string
		want bool
	}{
		{"strength", true},
		{"lift", true},
		{"Lifting", true},
		{"WEIGHTS", true},
		{"weightlifting", true},
		{"run", false},
		{"cycle", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			w := NewWorkout(time.Now(), tt.kind, 50, 45)
			if got := w.IsStrength(); got != tt.want {
				t.Errorf("IsStrength(%s) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestBodyBuilders(t *testing.T) {
	b := NewBody(time.Now())
	if b.Weight != nil || b.Adherence != nil {
		t.Error("expected weight and adherence to start nil")
	}

	b.WithWeight(81.2).WithAdherence(90)
	if b.Weight == nil || *b.Weight != 81.2 {
		t.Error("WithWeight did not set weight")
	}
	if b.Adherence == nil || *b.Adherence != 90 {
		t.Error("WithAdherence did not set adherence")
	}
}
