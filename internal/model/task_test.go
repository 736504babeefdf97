package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        1,
		Text:      "Buy milk",
		Priority:  PriorityMedium,
		CreatedAt: now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBlankText(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        1,
		Text:      "   ",
		Priority:  PriorityLow,
		CreatedAt: now,
	}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for whitespace-only text, got nil")
	}
}

func TestTaskValidateInvalidPriority(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        1,
		Text:      "Walk dog",
		Priority:  Priority("urgent"),
		CreatedAt: now,
	}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}
}

func TestParsePriority(t *testing.T) {
	cases := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"low", PriorityLow, false},
		{"Medium", PriorityMedium, false},
		{" HIGH ", PriorityHigh, false},
		{"", "", true},
		{"urgent", "", true},
	}
	for _, tc := range cases {
		got, err := ParsePriority(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParsePriority(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePriority(%q): unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParsePriority(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
