package domain

import (
	"strings"
	"time"
)

type Recurrence string

const (
	RecurrenceNone      Recurrence = "none"
	RecurrenceDaily     Recurrence = "daily"
	RecurrenceWeekly    Recurrence = "weekly"
	RecurrenceMonthly   Recurrence = "monthly"
	RecurrenceQuarterly Recurrence = "quarterly"
	RecurrenceYearly    Recurrence = "yearly"
	RecurrenceCustom    Recurrence = "custom"
)

// IsSet reports whether the rule names an actual cadence.
func (r Recurrence) IsSet() bool {
	return r != "" && r != RecurrenceNone
}

// BaseUnit reports whether the rule can serve as the unit of a custom
// rule, i.e. one of the five fixed cadences.
func (r Recurrence) BaseUnit() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceQuarterly, RecurrenceYearly:
		return true
	}
	return false
}

type Subtask struct {
	ID   string
	Text string
	Done bool
}

// Task is a single occurrence of work, possibly one instance of a
// recurring series.
type Task struct {
	ID             string
	Title          string
	DueDate        *Date // nil means "someday"
	Completed      bool
	Subtasks       []Subtask
	Tags           []string // lowercase-normalized
	Recurrence     Recurrence
	CustomInterval int        // multiplier, only meaningful for RecurrenceCustom
	CustomUnit     Recurrence // base unit, only meaningful for RecurrenceCustom
	SeriesID       string     // shared by occurrences generated together, empty for standalone tasks
	IsLastInstance bool
	AutoRenew      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InSeries reports whether the task belongs to a recurring series.
func (t Task) InSeries() bool {
	return t.SeriesID != ""
}

// HasOpenSubtasks reports whether any subtask is still unchecked.
func (t Task) HasOpenSubtasks() bool {
	for _, sub := range t.Subtasks {
		if !sub.Done {
			return true
		}
	}
	return false
}

// NormalizeTags lowercases, trims and dedupes tags, preserving order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// CloneSubtasks deep-copies subtasks. When resetDone is true the copies
// start unchecked, the rule for every occurrence after a batch's first.
func CloneSubtasks(subtasks []Subtask, resetDone bool) []Subtask {
	if len(subtasks) == 0 {
		return nil
	}
	out := make([]Subtask, len(subtasks))
	copy(out, subtasks)
	if resetDone {
		for i := range out {
			out[i].Done = false
		}
	}
	return out
}
