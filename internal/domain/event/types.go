package event

import "time"

// Event is a single club event as stored and served.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ClubName    string `json:"clubName"`
	ClubSlug    string `json:"clubSlug"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// Config drives the event service.
type Config struct {
	CacheTTL time.Duration
	Location *time.Location
}

// Actor identifies who performs a write. Populated from validated token claims.
type Actor struct {
	UserID   int64
	Role     string
	ClubName string
	ClubSlug string
}

// Roles carried by Actor.Role.
const (
	RoleAdmin      = "admin"
	RoleClubMember = "club_member"
)

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CreateRequest is the payload accepted when creating an event. Club fields come from the actor.
type CreateRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// CreateResponse returns the identifier assigned to a new event.
type CreateResponse struct {
	ID string `json:"newEventId"`
}

// UpdateRequest carries the editable fields. Club name and slug cannot change.
type UpdateRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// Detail pairs an event with the viewer specific edit permission.
type Detail struct {
	Event   Event `json:"event"`
	CanEdit bool  `json:"canEdit"`
	IsPast  bool  `json:"isPast"`
}
