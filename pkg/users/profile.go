package users

import (
	"time"

	"github.com/forerunnerhq/forerunner-store/pkg/logging"
)

// UpdateDisplayName sets the session user's display name. This succeeds
// exactly once per account; every later call fails and leaves the name
// unchanged. Discord sync is the only other path that can set the name,
// and only while this gate is still open.
func (s *Store) UpdateDisplayName(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.current
	if u == nil || u.DisplayNameEdited {
		return false
	}

	u.DisplayName = name
	u.DisplayNameEdited = true
	s.saveUsers()
	s.saveCurrent()

	logging.Audit.LogOp("display_name", u.Username, "success")
	return true
}

// UpdateProfilePicture sets the session user's picture, limited to once
// per 30 days. An absent edit timestamp means the account has never
// changed it and the edit is allowed.
func (s *Store) UpdateProfilePicture(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.current
	if u == nil {
		return false
	}
	now := s.now()
	if u.LastProfilePictureEdit != nil && now.Sub(*u.LastProfilePictureEdit) < PictureCooldown {
		return false
	}

	u.ProfilePicture = url
	u.LastProfilePictureEdit = &now
	s.saveUsers()
	s.saveCurrent()
	return true
}

// UpdateProfileBanner sets the session user's banner, unrestricted
func (s *Store) UpdateProfileBanner(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}
	s.current.ProfileBanner = url
	s.saveUsers()
	s.saveCurrent()
	return true
}

// UpdateBio sets the session user's bio
func (s *Store) UpdateBio(bio string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}
	s.current.Bio = bio
	s.saveUsers()
	s.saveCurrent()
	return true
}

// AddPartner adds a partner entry; adding an existing value is a no-op
func (s *Store) AddPartner(name string) bool {
	return s.mutateCurrent(func(u *User) {
		u.Partners = appendUnique(u.Partners, name)
	})
}

// RemovePartner removes a partner entry
func (s *Store) RemovePartner(name string) bool {
	return s.mutateCurrent(func(u *User) {
		u.Partners = remove(u.Partners, name)
	})
}

// AddFavoriteGame adds a favorite game; duplicates are not kept
func (s *Store) AddFavoriteGame(name string) bool {
	return s.mutateCurrent(func(u *User) {
		u.FavoriteGames = appendUnique(u.FavoriteGames, name)
	})
}

// RemoveFavoriteGame removes a favorite game
func (s *Store) RemoveFavoriteGame(name string) bool {
	return s.mutateCurrent(func(u *User) {
		u.FavoriteGames = remove(u.FavoriteGames, name)
	})
}

// SetStatus sets the session user's presence indicator
func (s *Store) SetStatus(status Status) bool {
	if !ValidStatus(status) {
		return false
	}
	return s.mutateCurrent(func(u *User) {
		u.Status = status
	})
}

// SetDarkMode toggles the dark mode preference
func (s *Store) SetDarkMode(enabled bool) bool {
	return s.mutateSettings(func(set *Settings) {
		set.DarkMode = enabled
	})
}

// SetMessagePermission sets who may message the session user
func (s *Store) SetMessagePermission(p MessagePermission) bool {
	if !ValidMessagePermission(p) {
		return false
	}
	return s.mutateSettings(func(set *Settings) {
		set.MessagePermission = p
	})
}

// SetHomePageColor sets the home page color, clearing any background.
// The two are mutually exclusive.
func (s *Store) SetHomePageColor(color string) bool {
	return s.mutateSettings(func(set *Settings) {
		set.HomePageColor = color
		set.HomePageBackground = ""
	})
}

// SetHomePageBackground sets the home page background, clearing any color
func (s *Store) SetHomePageBackground(background string) bool {
	return s.mutateSettings(func(set *Settings) {
		set.HomePageBackground = background
		set.HomePageColor = ""
	})
}

// mutateCurrent applies fn to the session user and persists
func (s *Store) mutateCurrent(fn func(*User)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}
	fn(s.current)
	s.saveUsers()
	s.saveCurrent()
	return true
}

// mutateSettings applies fn to the session user's settings, backfilling
// a default settings object for older records
func (s *Store) mutateSettings(fn func(*Settings)) bool {
	return s.mutateCurrent(func(u *User) {
		if u.Settings == nil {
			u.Settings = defaultSettings()
		}
		fn(u.Settings)
	})
}

// WarningInput carries the fields for a new moderation record
type WarningInput struct {
	Type        string
	Reason      string
	Description string
	Severity    string
	ExpiresAt   *time.Time
}

// AddWarning prepends a moderation record to the user's warning history
// (newest first)
func (s *Store) AddWarning(userID string, input WarningInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(userID)
	if u == nil {
		return false
	}

	warning := Warning{
		ID:          s.newID(),
		Type:        input.Type,
		Reason:      input.Reason,
		Description: input.Description,
		IssuedAt:    s.now(),
		ExpiresAt:   input.ExpiresAt,
		Severity:    input.Severity,
		Active:      true,
	}
	u.Warnings = append([]Warning{warning}, u.Warnings...)

	s.saveUsers()
	s.saveCurrent()

	logging.Audit.LogOp("warning", u.Username, "success", "type", input.Type, "severity", input.Severity)
	return true
}

// ActiveWarnings returns the user's warnings that have not expired,
// newest first. Expiry is evaluated lazily against the clock.
func (s *Store) ActiveWarnings(userID string) []Warning {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findUser(userID)
	if u == nil {
		return nil
	}

	now := s.now()
	var out []Warning
	for _, w := range u.Warnings {
		if !w.Active {
			continue
		}
		if w.ExpiresAt != nil && !now.Before(*w.ExpiresAt) {
			continue
		}
		out = append(out, w)
	}
	return out
}
