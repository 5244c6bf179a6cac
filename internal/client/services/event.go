package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/insider/internal/client/client"
	"github.com/dmitrijs2005/insider/internal/client/models"
)

type EventService interface {
	Events(ctx context.Context, filters models.EventFilters) (*models.EventListResponse, error)
	Event(ctx context.Context, id string) (*models.EventWithUserStatus, error)
	Attend(ctx context.Context, id string, status models.AttendanceStatus) error
	JoinGroup(ctx context.Context, id string) error
}

type eventService struct {
	client client.Client
}

func NewEventService(c client.Client) EventService {
	return &eventService{client: c}
}

// eventQuery encodes filters; zero values are omitted.
func eventQuery(f models.EventFilters) url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status_filter", string(f.Status))
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return q
}

func (s *eventService) Events(ctx context.Context, filters models.EventFilters) (*models.EventListResponse, error) {
	var out models.EventListResponse
	if err := s.client.Get(ctx, client.EventsPath, eventQuery(filters), &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []models.Event{}
	}
	return &out, nil
}

func (s *eventService) Event(ctx context.Context, id string) (*models.EventWithUserStatus, error) {
	var out models.EventWithUserStatus
	if err := s.client.Get(ctx, client.EventPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type attendRequest struct {
	Status models.AttendanceStatus `json:"status"`
}

func (s *eventService) Attend(ctx context.Context, id string, status models.AttendanceStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown attendance status %q", status)
	}
	return s.client.Post(ctx, client.EventAttendPath(id), attendRequest{Status: status}, nil)
}

func (s *eventService) JoinGroup(ctx context.Context, id string) error {
	return s.client.Post(ctx, client.EventJoinGroupPath(id), nil, nil)
}
