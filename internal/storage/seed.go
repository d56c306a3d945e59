package storage

import (
	"time"

	"github.com/valter-silva-au/taskflow/pkg/models"
)

// seedTasks returns the bundled starter dataset used when no blob exists
// yet. Each call returns fresh copies so callers can never mutate the
// seed itself.
func seedTasks() []models.Task {
	return []models.Task{
		{
			ID:          6,
			Title:       "Review pull request feedback",
			Description: "Address reviewer comments on the storage refactor branch.",
			DueDate:     datePtr(2026, time.September, 1),
			Priority:    models.PriorityHigh,
			Status:      models.StatusActive,
			CreatedAt:   seedTime("2026-08-24T09:15:00Z"),
		},
		{
			ID:          5,
			Title:       "Prepare sprint demo",
			Description: "Walk through the search and filter flows end to end.",
			DueDate:     datePtr(2026, time.September, 4),
			Priority:    models.PriorityMedium,
			Status:      models.StatusActive,
			CreatedAt:   seedTime("2026-08-22T14:30:00Z"),
		},
		{
			ID:          4,
			Title:       "Update dependency versions",
			Description: "",
			DueDate:     nil,
			Priority:    models.PriorityLow,
			Status:      models.StatusActive,
			CreatedAt:   seedTime("2026-08-20T11:00:00Z"),
		},
		{
			ID:          3,
			Title:       "Write onboarding notes",
			Description: "Short guide for setting up the local environment.",
			DueDate:     datePtr(2026, time.August, 28),
			Priority:    models.PriorityMedium,
			Status:      models.StatusCompleted,
			CreatedAt:   seedTime("2026-08-18T08:45:00Z"),
			CompletedAt: timePtr(seedTime("2026-08-21T16:20:00Z")),
		},
		{
			ID:          2,
			Title:       "File expense report",
			Description: "Conference travel receipts from last month.",
			DueDate:     nil,
			Priority:    models.PriorityLow,
			Status:      models.StatusCompleted,
			CreatedAt:   seedTime("2026-08-15T10:05:00Z"),
			CompletedAt: timePtr(seedTime("2026-08-16T09:00:00Z")),
		},
		{
			ID:          1,
			Title:       "Book dentist appointment",
			Description: "",
			DueDate:     datePtr(2026, time.September, 10),
			Priority:    models.PriorityHigh,
			Status:      models.StatusActive,
			CreatedAt:   seedTime("2026-08-12T17:40:00Z"),
		},
	}
}

func seedTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func timePtr(t time.Time) *time.Time {
	return &t
}
