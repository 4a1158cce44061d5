package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"juriscrm/models"
	"juriscrm/repository"
	"juriscrm/storage"
)

// DefaultLookaheadDays is the window within which an incomplete task counts
// as urgent.
const DefaultLookaheadDays = 7

// KeyAlertDismissed stores the date string of the last deadline-alert
// dismissal.
const KeyAlertDismissed = "deadlineAlertDismissed"

// ScheduleService scans tasks across all cases to surface urgent deadlines
type ScheduleService struct {
	caseRepo      *repository.CaseRepository
	lookaheadDays int
}

// NewScheduleService creates a new schedule service. A non-positive
// lookahead falls back to the default window.
func NewScheduleService(caseRepo *repository.CaseRepository, lookaheadDays int) *ScheduleService {
	if lookaheadDays <= 0 {
		lookaheadDays = DefaultLookaheadDays
	}
	return &ScheduleService{
		caseRepo:      caseRepo,
		lookaheadDays: lookaheadDays,
	}
}

// UrgentTasks returns every incomplete task due within the lookahead window.
// Overdue tasks are always included regardless of the window. The result is
// ordered ascending by due date (id as tie-break) for stable display.
// Tasks with an unparseable due date are skipped.
func (s *ScheduleService) UrgentTasks(ctx context.Context, now time.Time) []models.Task {
	horizon := now.AddDate(0, 0, s.lookaheadDays).Format(time.DateOnly)

	var urgent []models.Task
	for _, kase := range s.caseRepo.List(ctx) {
		for _, task := range kase.Tasks {
			if task.Completed {
				continue
			}
			if _, err := time.Parse(time.DateOnly, task.DueDate); err != nil {
				continue
			}
			// YYYY-MM-DD strings order the same way the dates do
			if task.DueDate <= horizon {
				urgent = append(urgent, task)
			}
		}
	}

	sort.Slice(urgent, func(i, j int) bool {
		if urgent[i].DueDate != urgent[j].DueDate {
			return urgent[i].DueDate < urgent[j].DueDate
		}
		return urgent[i].ID < urgent[j].ID
	})
	return urgent
}

// DeadlineAlertGate enforces the once-per-calendar-day contract of the
// urgent-deadline alert. The dismissal date is persisted so a restart within
// the same day stays quiet.
type DeadlineAlertGate struct {
	store storage.Storage
}

// NewDeadlineAlertGate creates a new alert gate
func NewDeadlineAlertGate(store storage.Storage) *DeadlineAlertGate {
	return &DeadlineAlertGate{store: store}
}

// ShouldShow reports whether the alert may be displayed today. It is true
// only when there is something to alert about and today's date differs from
// the recorded dismissal.
func (g *DeadlineAlertGate) ShouldShow(ctx context.Context, now time.Time, hasUrgentTasks bool) bool {
	if !hasUrgentTasks {
		return false
	}

	data, err := g.store.Load(ctx, KeyAlertDismissed)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return true
	}
	if err != nil {
		log.Printf("Warning: failed to load alert dismissal: %v", err)
		return true
	}
	return string(data) != now.Format(time.DateOnly)
}

// Dismiss records today as the last dismissal date
func (g *DeadlineAlertGate) Dismiss(ctx context.Context, now time.Time) error {
	return g.store.Save(ctx, KeyAlertDismissed, []byte(now.Format(time.DateOnly)))
}
