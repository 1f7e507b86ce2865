package projections

import (
	"context"
	"time"

	"campusevents/internal/domain/event"
)

// HomeEvent carries one event with the viewing student's registration state.
type HomeEvent struct {
	Event       event.Event
	IsCompleted bool
	Registered  bool
	Status      string // pending, approved or rejected when Registered
}

// GetStudentHomeQuery carries input for the student home projection.
type GetStudentHomeQuery struct {
	StudentID string
}

// GetStudentHomeDeps holds dependencies for the student home projection.
type GetStudentHomeDeps struct {
	EventStore        EventStore
	RegistrationStore RegistrationStore
}

// GetStudentHomeResult carries the output of the student home projection.
type GetStudentHomeResult struct {
	Events []HomeEvent
}

// QueryGetStudentHome lists all events in ascending date order, marking
// each with whether the student already has a registration and its status.
func QueryGetStudentHome(ctx context.Context, query GetStudentHomeQuery, deps GetStudentHomeDeps, now time.Time) (GetStudentHomeResult, error) {
	events, err := deps.EventStore.ListByDate(ctx)
	if err != nil {
		return GetStudentHomeResult{}, err
	}

	regs, err := deps.RegistrationStore.ListByStudentID(ctx, query.StudentID)
	if err != nil {
		return GetStudentHomeResult{}, err
	}
	statusByEvent := make(map[string]string, len(regs))
	for _, r := range regs {
		statusByEvent[r.EventID] = r.Status
	}

	result := GetStudentHomeResult{Events: make([]HomeEvent, 0, len(events))}
	for _, e := range events {
		he := HomeEvent{Event: e, IsCompleted: e.IsCompleted(now)}
		if status, ok := statusByEvent[e.ID]; ok {
			he.Registered = true
			he.Status = status
		}
		result.Events = append(result.Events, he)
	}

	return result, nil
}
