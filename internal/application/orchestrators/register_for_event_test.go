package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"campusevents/internal/domain/event"
	"campusevents/internal/domain/registration"
)

func openEvent() event.Event {
	return event.Event{ID: "e1", Title: "T", Date: fixedTime.Add(24 * time.Hour), Category: event.CategoryOther}
}

// TestExecuteRegisterForEvent_Valid tests the happy path.
func TestExecuteRegisterForEvent_Valid(t *testing.T) {
	events := newMockEventStore()
	events.events["e1"] = openEvent()
	regs := newMockRegistrationStore()

	id, err := ExecuteRegisterForEvent(context.Background(),
		RegisterForEventInput{StudentID: "s1", EventID: "e1"},
		RegisterForEventDeps{EventStore: events, RegistrationStore: regs, GenerateID: fixedID, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	created := regs.registrations[id]
	if created.Status != registration.StatusPending {
		t.Errorf("status = %q, want pending", created.Status)
	}
	if created.StudentID != "s1" || created.EventID != "e1" {
		t.Errorf("registration = %+v", created)
	}
}

// TestExecuteRegisterForEvent_EventNotFound tests the missing-event outcome.
func TestExecuteRegisterForEvent_EventNotFound(t *testing.T) {
	_, err := ExecuteRegisterForEvent(context.Background(),
		RegisterForEventInput{StudentID: "s1", EventID: "missing"},
		RegisterForEventDeps{EventStore: newMockEventStore(), RegistrationStore: newMockRegistrationStore(), GenerateID: fixedID, Now: fixedNow})
	if !errors.Is(err, ErrEventNotFound) {
		t.Errorf("error = %v, want ErrEventNotFound", err)
	}
}

// TestExecuteRegisterForEvent_StoreFailure tests that a failing event read
// is not reported as a missing event.
func TestExecuteRegisterForEvent_StoreFailure(t *testing.T) {
	events := newMockEventStore()
	events.getErr = errors.New("disk I/O error")

	_, err := ExecuteRegisterForEvent(context.Background(),
		RegisterForEventInput{StudentID: "s1", EventID: "e1"},
		RegisterForEventDeps{EventStore: events, RegistrationStore: newMockRegistrationStore(), GenerateID: fixedID, Now: fixedNow})
	if !errors.Is(err, events.getErr) {
		t.Errorf("error = %v, want the store failure", err)
	}
	if errors.Is(err, ErrEventNotFound) {
		t.Error("store failure was reported as a missing event")
	}
}

// TestExecuteRegisterForEvent_Closed tests that completed events reject registration.
func TestExecuteRegisterForEvent_Closed(t *testing.T) {
	events := newMockEventStore()
	e := openEvent()
	e.Date = fixedTime.Add(-time.Hour)
	events.events["e1"] = e
	regs := newMockRegistrationStore()

	_, err := ExecuteRegisterForEvent(context.Background(),
		RegisterForEventInput{StudentID: "s1", EventID: "e1"},
		RegisterForEventDeps{EventStore: events, RegistrationStore: regs, GenerateID: fixedID, Now: fixedNow})
	if !errors.Is(err, ErrRegistrationClosed) {
		t.Errorf("error = %v, want ErrRegistrationClosed", err)
	}
	if len(regs.registrations) != 0 {
		t.Error("a registration was created for a completed event")
	}
}

// TestExecuteRegisterForEvent_Duplicate tests the duplicate-pair guard across statuses.
func TestExecuteRegisterForEvent_Duplicate(t *testing.T) {
	for _, status := range []string{registration.StatusPending, registration.StatusApproved, registration.StatusRejected} {
		t.Run(status, func(t *testing.T) {
			events := newMockEventStore()
			events.events["e1"] = openEvent()
			regs := newMockRegistrationStore()
			regs.registrations["r0"] = registration.Registration{ID: "r0", StudentID: "s1", EventID: "e1", Status: status}

			_, err := ExecuteRegisterForEvent(context.Background(),
				RegisterForEventInput{StudentID: "s1", EventID: "e1"},
				RegisterForEventDeps{EventStore: events, RegistrationStore: regs, GenerateID: fixedID, Now: fixedNow})
			if !errors.Is(err, ErrAlreadyRegistered) {
				t.Errorf("error = %v, want ErrAlreadyRegistered", err)
			}
			if len(regs.registrations) != 1 {
				t.Error("a second registration was created for the pair")
			}
		})
	}
}

// TestExecuteRegisterForEvent_OtherPairUnaffected tests that the guard is per pair.
func TestExecuteRegisterForEvent_OtherPairUnaffected(t *testing.T) {
	events := newMockEventStore()
	events.events["e1"] = openEvent()
	regs := newMockRegistrationStore()
	regs.registrations["r0"] = registration.Registration{ID: "r0", StudentID: "s2", EventID: "e1", Status: registration.StatusApproved}

	if _, err := ExecuteRegisterForEvent(context.Background(),
		RegisterForEventInput{StudentID: "s1", EventID: "e1"},
		RegisterForEventDeps{EventStore: events, RegistrationStore: regs, GenerateID: fixedID, Now: fixedNow}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
