// Package discord defines the identity profile delivered by the Discord
// OAuth collaborator. The store treats it as an opaque input; no network
// calls happen here.
package discord

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedProfile is returned for profiles missing required fields
	ErrMalformedProfile = errors.New("malformed discord profile")
)

// Profile is the identity payload from the OAuth user endpoint
type Profile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
	GlobalName    string `json:"global_name"`
	Email         string `json:"email,omitempty"`
}

// Validate checks the fields required to establish an identity
func (p *Profile) Validate() error {
	if p == nil || p.ID == "" || p.Username == "" {
		return ErrMalformedProfile
	}
	return nil
}

// AvatarURL returns the CDN URL for the profile's avatar hash, or an
// empty string when no avatar is set
func (p *Profile) AvatarURL() string {
	if p.Avatar == "" {
		return ""
	}
	return fmt.Sprintf("https://cdn.discordapp.com/avatars/%s/%s.png", p.ID, p.Avatar)
}

// PlaceholderEmail synthesizes an address for profiles the provider
// delivered without one
func (p *Profile) PlaceholderEmail() string {
	return fmt.Sprintf("%s@users.discord.placeholder", p.ID)
}

// DisplayName returns the name the site should adopt for this identity
func (p *Profile) DisplayName() string {
	if p.GlobalName != "" {
		return p.GlobalName
	}
	return p.Username
}
