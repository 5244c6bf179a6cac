package stores

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/insider/internal/client/models"
	"github.com/dmitrijs2005/insider/internal/client/services"
	"github.com/dmitrijs2005/insider/internal/client/validation"
	"github.com/dmitrijs2005/insider/internal/logging"
)

// DefaultPageSize is used when a store is built with a non-positive page size.
const DefaultPageSize = 20

// EventsState is a snapshot of the event store. The list and the selected
// event are independent: a failure in one never touches the other.
type EventsState struct {
	Events           []models.Event
	EventsLoading    bool
	EventsError      string
	EventsPagination models.Pagination

	SelectedEvent        *models.EventWithUserStatus
	SelectedEventLoading bool
	SelectedEventError   string
}

type EventStore struct {
	svc services.EventService
	log logging.Logger

	mu          sync.Mutex
	state       EventsState
	listReq     tracker
	selectedReq tracker
}

func NewEventStore(svc services.EventService, pageSize int, log logging.Logger) *EventStore {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if log == nil {
		log = logging.Discard()
	}
	return &EventStore{
		svc:   svc,
		log:   log.With("store", "events"),
		state: EventsState{EventsPagination: models.Pagination{Page: 1, PageSize: pageSize}},
	}
}

func (s *EventStore) State() EventsState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// FetchEvents replaces the list with the requested page. On failure the
// previous items stay visible and EventsError is set.
func (s *EventStore) FetchEvents(ctx context.Context, page int, filters models.EventFilters) error {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	n := s.listReq.issue()
	s.state.EventsLoading = true
	s.state.EventsError = ""
	filters.Page = page
	filters.PageSize = s.state.EventsPagination.PageSize
	s.mu.Unlock()

	resp, err := s.svc.Events(ctx, filters)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.listReq.latest(n) {
		return ErrStale
	}
	s.state.EventsLoading = false
	if err != nil {
		de := displayError(err, "Failed to fetch events")
		s.state.EventsError = de.Message
		return de
	}

	meta := resp.Meta()
	if meta.PageSize <= 0 {
		meta.PageSize = filters.PageSize
	}
	s.state.Events = resp.Items
	s.state.EventsPagination = meta
	return nil
}

// FetchEventByID loads the detail of one event into SelectedEvent.
func (s *EventStore) FetchEventByID(ctx context.Context, id string) error {
	s.mu.Lock()
	n := s.selectedReq.issue()
	s.state.SelectedEventLoading = true
	s.state.SelectedEventError = ""
	s.mu.Unlock()

	var (
		ev  *models.EventWithUserStatus
		err = validation.ResourceID(id)
	)
	if err == nil {
		ev, err = s.svc.Event(ctx, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.selectedReq.latest(n) {
		return ErrStale
	}
	s.state.SelectedEventLoading = false
	if err != nil {
		de := displayError(err, "Failed to fetch event details")
		s.state.SelectedEventError = de.Message
		return de
	}
	s.state.SelectedEvent = ev
	return nil
}

// AttendEvent records the user's RSVP. The selected event is patched only
// after the backend accepted the change and only if it is the same event.
func (s *EventStore) AttendEvent(ctx context.Context, id string, status models.AttendanceStatus) error {
	if err := validation.ResourceID(id); err != nil {
		return displayError(err, "")
	}
	if !status.Valid() {
		return displayError(fmt.Errorf("unknown attendance status %q", status), "")
	}

	if err := s.svc.Attend(ctx, id, status); err != nil {
		s.log.Warn(ctx, "failed to attend event", "event_id", id, "error", err)
		return displayError(err, "Failed to update attendance")
	}

	s.patchSelected(id, func(ev *models.EventWithUserStatus) {
		st := status
		ev.UserStatus = &st
	})
	return nil
}

// JoinEventGroup joins the event's group chat.
func (s *EventStore) JoinEventGroup(ctx context.Context, id string) error {
	if err := validation.ResourceID(id); err != nil {
		return displayError(err, "")
	}

	if err := s.svc.JoinGroup(ctx, id); err != nil {
		s.log.Warn(ctx, "failed to join event group", "event_id", id, "error", err)
		return displayError(err, "Failed to join event group")
	}

	s.patchSelected(id, func(ev *models.EventWithUserStatus) {
		ev.UserJoinedGroup = true
	})
	return nil
}

// patchSelected replaces the selected event with a patched copy, so earlier
// snapshots are not affected.
func (s *EventStore) patchSelected(id string, patch func(ev *models.EventWithUserStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.SelectedEvent == nil || s.state.SelectedEvent.ID != id {
		return
	}
	ev := *s.state.SelectedEvent
	patch(&ev)
	s.state.SelectedEvent = &ev
}

// ResetSelectedEvent clears the detail slice. A detail request still in
// flight will not repopulate it.
func (s *EventStore) ResetSelectedEvent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedReq.issue()
	s.state.SelectedEvent = nil
	s.state.SelectedEventError = ""
	s.state.SelectedEventLoading = false
}
