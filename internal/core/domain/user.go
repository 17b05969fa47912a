package domain

import (
	"regexp"
	"strings"
	"time"
)

var handlePattern = regexp.MustCompile(`^[a-z0-9_-]{3,30}$`)

// ValidHandle reports whether h is an acceptable public handle.
func ValidHandle(h string) bool {
	return handlePattern.MatchString(h)
}

// User models an account. Profile fields are only exposed through the
// public directory when Public is set and a Handle has been chosen.
type User struct {
	ID                string      `json:"id"`
	Email             string      `json:"email,omitempty"`
	PasswordHash      string      `json:"-"`
	Name              string      `json:"name"`
	Handle            string      `json:"handle,omitempty"`
	Role              Role        `json:"role"`
	Public            bool        `json:"public"`
	BannedFromPosting bool        `json:"banned_from_posting"`
	Bio               string      `json:"bio,omitempty"`
	Location          string      `json:"location,omitempty"`
	Website           string      `json:"website,omitempty"`
	Social            SocialLinks `json:"social"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// SocialLinks holds the user's account names or URLs on other networks.
// Empty fields are not shown.
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Discord   string `json:"discord,omitempty"`
	Twitch    string `json:"twitch,omitempty"`
}

// Trimmed returns a copy with surrounding whitespace removed from every link.
func (s SocialLinks) Trimmed() SocialLinks {
	return SocialLinks{
		Twitter:   strings.TrimSpace(s.Twitter),
		Instagram: strings.TrimSpace(s.Instagram),
		Facebook:  strings.TrimSpace(s.Facebook),
		LinkedIn:  strings.TrimSpace(s.LinkedIn),
		YouTube:   strings.TrimSpace(s.YouTube),
		TikTok:    strings.TrimSpace(s.TikTok),
		GitHub:    strings.TrimSpace(s.GitHub),
		Discord:   strings.TrimSpace(s.Discord),
		Twitch:    strings.TrimSpace(s.Twitch),
	}
}

// Discoverable reports whether the user is listed in the public directory.
func (u *User) Discoverable() bool {
	return u.Public && u.Handle != ""
}
