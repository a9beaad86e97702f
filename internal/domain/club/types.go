package club

import (
	"io"
	"time"

	"github.com/yanqian/unievents/internal/domain/event"
)

// Club is a directory entry.
type Club struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	LogoURL      string `json:"logoUrl"`
	LeaderName   string `json:"leaderName"`
	ContactEmail string `json:"contactEmail"`
	Purpose      string `json:"purpose"`
}

// Listing is a directory row.
type Listing struct {
	Club
	UpcomingEvents int `json:"upcomingEvents"`
}

// Config drives the club service.
type Config struct {
	Location     *time.Location
	MaxLogoBytes int64
	ProductID    string
	// LogoPath renders the served URL of a stored logo, e.g. /api/v1/clubs/{slug}/logo.
	LogoPath func(slug string) string
}

// Profile is a club page: the club plus its events split around today.
type Profile struct {
	Club      Club          `json:"club"`
	Upcoming  []event.Event `json:"upcoming"`
	Past      []event.Event `json:"past"`
	IsOwnClub bool          `json:"isOwnClub"`
}

// LogoUpload is an uploaded image before validation.
type LogoUpload struct {
	Filename string
	Data     []byte
}

// StoredLogo is the metadata of a persisted logo.
type StoredLogo struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
	ETag        string `json:"etag"`
}

// LogoObject streams a stored logo. Callers close Body.
type LogoObject struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
	ETag        string
}

// UploadResponse is returned after a successful logo upload.
type UploadResponse struct {
	Club Club       `json:"club"`
	Logo StoredLogo `json:"logo"`
}
