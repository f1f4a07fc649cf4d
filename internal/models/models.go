package models

import (
	"strings"
	"time"
)

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

type TokenScope string

const (
	TokenScopeAPI  TokenScope = "api"
	TokenScopeICal TokenScope = "ical"
)

type User struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	PasswordHash       string    `json:"-"`
	OIDCSubject        *string   `json:"-"`
	Image              string    `json:"image"`
	Theme              Theme     `json:"theme"`
	Language           Language  `json:"language"`
	EmailNotifications bool      `json:"emailNotifications"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type APIToken struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	TokenHash       string     `json:"-"`
	Scope           TokenScope `json:"scope"`
	CreatedByUserID string     `json:"-"`
	ExpiresAt       *time.Time `json:"expiresAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func (token APIToken) Expired(now time.Time) bool {
	return token.ExpiresAt != nil && token.ExpiresAt.Before(now)
}

// Settings are the user-editable preferences stored on the user row.
type Settings struct {
	Name               string   `json:"name"`
	Theme              Theme    `json:"theme"`
	Language           Language `json:"language"`
	EmailNotifications bool     `json:"emailNotifications"`
}

func (settings Settings) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(settings.Name) == "" {
		errs.Add("name", "name is required")
	}
	switch settings.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		errs.Add("theme", "theme must be light, dark or system")
	}
	switch settings.Language {
	case LanguageArabic, LanguageEnglish:
	default:
		errs.Add("language", "language must be ar or en")
	}
	return errs.Err()
}
