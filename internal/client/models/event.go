package models

type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusUpcoming  EventStatus = "upcoming"
	EventStatusOngoing   EventStatus = "ongoing"
	EventStatusPast      EventStatus = "past"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusAll       EventStatus = "all"
)

type LocationType string

const (
	LocationInPerson LocationType = "in_person"
	LocationVirtual  LocationType = "virtual"
	LocationHybrid   LocationType = "hybrid"
)

// AttendanceStatus is the caller's RSVP for an event.
type AttendanceStatus string

const (
	Attending    AttendanceStatus = "attending"
	NotAttending AttendanceStatus = "not_attending"
)

// Valid reports whether s is one of the values accepted by events/{id}/attend.
func (s AttendanceStatus) Valid() bool {
	return s == Attending || s == NotAttending
}

type Event struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Description       string        `json:"description"`
	ShortDescription  *string       `json:"short_description"`
	CardImageURL      *string       `json:"card_image_url"`
	EventType         *string       `json:"event_type"`
	Category          *string       `json:"category"`
	StartDatetime     string        `json:"start_datetime"`
	EndDatetime       string        `json:"end_datetime"`
	Timezone          string        `json:"timezone"`
	LocationType      *LocationType `json:"location_type"`
	LocationAddress   *string       `json:"location_address"`
	VirtualMeetingURL *string       `json:"virtual_meeting_url"`
	Capacity          *int          `json:"capacity"`
	AttendeeCount     int           `json:"attendee_count"`
	Status            EventStatus   `json:"status"`
	CreatedBy         *string       `json:"created_by"`
	CreatedAt         string        `json:"created_at"`
	UpdatedAt         string        `json:"updated_at"`
	PublishedAt       *string       `json:"published_at"`
}

// EventWithUserStatus is the event detail document.
type EventWithUserStatus struct {
	Event
	UserStatus      *AttendanceStatus `json:"user_status"`
	UserJoinedGroup bool              `json:"user_joined_group"`
	CanJoinGroup    bool              `json:"can_join_group"`
}

type EventListResponse = Page[Event]

// EventFilters narrows events. Zero values are not sent.
type EventFilters struct {
	Status   EventStatus
	Category string
	Page     int
	PageSize int
}
