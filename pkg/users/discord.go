package users

import (
	"time"

	"github.com/forerunnerhq/forerunner-store/pkg/discord"
	"github.com/forerunnerhq/forerunner-store/pkg/logging"
)

// LoginWithDiscord signs in with a Discord identity, creating an account
// on first contact. Existing accounts get their cached Discord fields
// refreshed; the Discord global name is adopted as the display name only
// while the user has never edited it manually. The only failure is a
// malformed profile.
func (s *Store) LoginWithDiscord(profile *discord.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findByDiscordID(profile.ID)
	if user != nil {
		s.syncDiscordLocked(user, profile)
		logging.Audit.LogAuth("discord_login", user.Username, "success")
	} else {
		email := profile.Email
		if email == "" {
			email = profile.PlaceholderEmail()
		}

		now := s.now()
		user = &User{
			ID:                   s.newID(),
			Username:             profile.Username,
			Email:                email,
			CreatedAt:            now,
			Followers:            []string{},
			Following:            []string{},
			Friends:              []string{},
			BlockedUsers:         []string{},
			Settings:             defaultSettings(),
			Status:               StatusOnline,
			DiscordID:            profile.ID,
			DiscordUsername:      profile.Username,
			DiscordDiscriminator: profile.Discriminator,
			DiscordAvatar:        profile.Avatar,
			DisplayName:          profile.DisplayName(),
			ProfilePicture:       profile.AvatarURL(),
			Level:                0,
			Rank:                 RankSilver,
			LastActivityUpdate:   now,
			FollowUnlockTimes:    make(map[string]time.Time),
		}
		s.users = append(s.users, user)
		logging.Audit.LogAuth("discord_login", user.Username, "created", "discord_id", profile.ID)
	}

	if user.Settings == nil {
		user.Settings = defaultSettings()
	}

	s.current = user
	s.accrueLevelLocked(user)
	s.saveUsers()
	s.saveCurrent()
	return nil
}

// ConnectDiscord links a Discord identity to the active session user
func (s *Store) ConnectDiscord(profile *discord.Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNoSession
	}

	s.syncDiscordLocked(s.current, profile)
	s.saveUsers()
	s.saveCurrent()

	logging.Audit.LogOp("discord_connect", s.current.Username, "success", "discord_id", profile.ID)
	return nil
}

// syncDiscordLocked refreshes the cached Discord identity fields
func (s *Store) syncDiscordLocked(user *User, profile *discord.Profile) {
	user.DiscordID = profile.ID
	user.DiscordUsername = profile.Username
	user.DiscordDiscriminator = profile.Discriminator
	user.DiscordAvatar = profile.Avatar
	if !user.DisplayNameEdited {
		user.DisplayName = profile.DisplayName()
	}
}
