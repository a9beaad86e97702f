// Package demodata holds the sample clubs, events and accounts loaded into empty stores.
package demodata

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yanqian/unievents/internal/domain/auth"
	"github.com/yanqian/unievents/internal/domain/club"
	"github.com/yanqian/unievents/internal/domain/event"
)

// Account is a demo login with its plain password.
type Account struct {
	User     auth.User
	Password string
}

// ClubWriter inserts or replaces a directory entry.
type ClubWriter interface {
	Upsert(ctx context.Context, c club.Club) error
}

// Events returns the sample events.
func Events() []event.Event {
	return []event.Event{
		{ID: "evt-1", Title: "Intro to React", ClubName: "Coding Club", ClubSlug: "coding-club", Date: "2025-10-27", StartTime: "10:00", EndTime: "11:00", Description: "Join us to learn the basics of React! No prior experience needed. We will cover components, props, and state.", Location: "Room 101, Tech Hall"},
		{ID: "evt-2", Title: "Robotics Workshop", ClubName: "Robotics Club", ClubSlug: "robotics-club", Date: "2025-10-27", StartTime: "14:00", EndTime: "16:00", Description: "Build and program your first robot. All parts will be provided.", Location: "Engineering Lab B"},
		{ID: "evt-3", Title: "Debate Meetup", ClubName: "Debate Society", ClubSlug: "debate-society", Date: "2025-10-30", StartTime: "17:00", EndTime: "18:00", Description: "This week's topic: \"Is AI beneficial for society?\" Come to argue or just to listen!", Location: "Social Sciences Bldg, Room 204"},
		{ID: "evt-4", Title: "Guest Speaker: Jane Doe", ClubName: "Coding Club", ClubSlug: "coding-club", Date: "2025-11-03", StartTime: "18:00", EndTime: "19:00", Description: "Hear from Jane Doe, a software engineer, about her journey into tech.", Location: "Main Auditorium"},
		{ID: "evt-5", Title: "Stargazing Night", ClubName: "Astronomy Club", ClubSlug: "astronomy-club", Date: "2025-11-05", StartTime: "20:00", EndTime: "22:00", Description: "Join us on the observatory hill to look at Mars and the Andromeda Galaxy.", Location: "Observatory Hill"},
	}
}

// Clubs returns the sample directory.
func Clubs() []club.Club {
	return []club.Club{
		{ID: "club-1", Name: "Coding Club", Slug: "coding-club", LogoURL: "https://placehold.co/100x100/4299E1/FFFFFF?text=CC", LeaderName: "Alex Johnson", ContactEmail: "coding@unievents.com", Purpose: "To foster a community of student programmers and explore new technologies. We host weekly workshops, guest speakers, and hackathons."},
		{ID: "club-2", Name: "Robotics Club", Slug: "robotics-club", LogoURL: "https://placehold.co/100x100/E53E3E/FFFFFF?text=RC", LeaderName: "Samira Chen", ContactEmail: "robotics@unievents.com", Purpose: "Building, competing, and learning all things robotics. Open to all skill levels, from beginners to experienced builders."},
		{ID: "club-3", Name: "Debate Society", Slug: "debate-society", LogoURL: "https://placehold.co/100x100/38A169/FFFFFF?text=DS", LeaderName: "David Kim", ContactEmail: "debate@unievents.com", Purpose: "Sharpening minds through reasoned discourse. We compete in regional tournaments and hold public debates on campus."},
		{ID: "club-4", Name: "Astronomy Club", Slug: "astronomy-club", LogoURL: "https://placehold.co/100x100/6B46C1/FFFFFF?text=AC", LeaderName: "Maria Rodriguez", ContactEmail: "astro@unievents.com", Purpose: "Exploring the cosmos together. We host stargazing nights, visit observatories, and discuss the latest in space exploration."},
	}
}

// Accounts returns the demo logins.
func Accounts() []Account {
	return []Account{
		{
			User:     auth.User{Username: "okkes donbaloglu", Email: "club@unievents.com", ClubName: "Coding Club", ClubSlug: "coding-club", Role: auth.RoleClubMember},
			Password: "password123",
		},
		{
			User:     auth.User{Username: "admin okkes", Email: "admin@unievents.com", ClubName: "University Admin", Role: auth.RoleAdmin},
			Password: "admin123",
		},
	}
}

// Seed loads the demo data. Records that already exist are left untouched.
func Seed(ctx context.Context, users auth.Repository, clubs ClubWriter, events event.Repository, logger *slog.Logger) error {
	logger = logger.With("component", "demodata")
	for _, c := range Clubs() {
		if err := clubs.Upsert(ctx, c); err != nil {
			return err
		}
	}
	created := 0
	for _, ev := range Events() {
		if _, found, err := events.Get(ctx, ev.ID); err != nil {
			return err
		} else if found {
			continue
		}
		if _, err := events.Create(ctx, ev); err != nil && !errors.Is(err, event.ErrDuplicateID) {
			return err
		}
		created++
	}
	for _, account := range Accounts() {
		if _, found, err := users.GetByEmail(ctx, account.User.Email); err != nil {
			return err
		} else if found {
			continue
		}
		hashed, err := auth.HashPassword(account.Password)
		if err != nil {
			return err
		}
		user := account.User
		user.PasswordHash = hashed
		if _, err := users.Create(ctx, user); err != nil && !errors.Is(err, auth.ErrEmailExists) {
			return err
		}
	}
	logger.Info("demo data seeded", "clubs", len(Clubs()), "events_created", created, "accounts", len(Accounts()))
	return nil
}
