package auth

import "time"

// Config drives authentication behavior.
type Config struct {
	Secret          string
	TokenTTL        time.Duration
	RefreshTokenTTL time.Duration
}

// Roles a user can hold.
const (
	RoleAdmin      = "admin"
	RoleClubMember = "club_member"
)

// User represents a persisted account. Club representatives carry the club they act for;
// admins may have no club slug.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ClubName     string    `json:"clubName"`
	ClubSlug     string    `json:"clubSlug"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// LoginRequest captures login details.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns the signed tokens.
type LoginResponse struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refreshToken"`
	User         UserView `json:"user"`
}

// UserView trims sensitive fields. ClubSlug is null for accounts without a club.
type UserView struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ClubName  string    `json:"clubName"`
	ClubSlug  *string   `json:"clubSlug"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Claims are extracted from the JWT token.
type Claims struct {
	TokenID   string
	UserID    int64
	Email     string
	Role      string
	ClubName  string
	ClubSlug  string
	TokenType string
	ExpiresAt time.Time
}

// RefreshRequest encapsulates refresh token payload.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest optionally carries the refresh token to revoke alongside the access token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}
