package users

import (
	"context"
	"time"

	"github.com/forerunnerhq/forerunner-store/pkg/logging"
)

// accrueLevelLocked advances u's level by DailyLevelGain per whole day
// elapsed since the activity anchor, clamped to MaxLevel. The anchor
// only advances by whole days so a partial day is never lost between
// passes. Returns true when the level changed.
func (s *Store) accrueLevelLocked(u *User) bool {
	elapsed := s.now().Sub(u.LastActivityUpdate)
	days := int64(elapsed / (24 * time.Hour))
	if days < 1 {
		return false
	}

	u.Level += float64(days) * DailyLevelGain
	if u.Level > MaxLevel {
		u.Level = MaxLevel
	}
	u.Rank = RankForLevel(u.Level)
	u.LastActivityUpdate = u.LastActivityUpdate.Add(time.Duration(days) * 24 * time.Hour)
	return true
}

// RefreshLevel runs one accrual pass for the session user. Correctness
// does not depend on how often this is called; the pass is a pure
// function of the stored anchor and the clock.
func (s *Store) RefreshLevel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}
	if !s.accrueLevelLocked(s.current) {
		return false
	}
	s.saveUsers()
	s.saveCurrent()
	return true
}

// LevelProgress returns the session user's progress toward MaxLevel as a
// percentage, 0 without a session
func (s *Store) LevelProgress() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return 0
	}
	return s.current.Level / MaxLevel * 100
}

// RunLevelRefresh re-runs the accrual pass on a ticker until ctx is
// done. This only keeps displayed progress fresh; the lazy pass in
// RefreshLevel is what guarantees correctness.
func (s *Store) RunLevelRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if s.RefreshLevel() {
				logging.App.Debug("Accrued level on refresh tick")
			}
		case <-ctx.Done():
			return
		}
	}
}

// UserWithMostPosts returns the user owning the most posts, first in
// stored order on ties, or nil when nobody has any posts
func (s *Store) UserWithMostPosts() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, p := range s.posts {
		counts[p.UserID]++
	}

	var best *User
	bestCount := 0
	for _, u := range s.users {
		if c := counts[u.ID]; c > bestCount {
			best = u
			bestCount = c
		}
	}
	return best
}

// UserWithMostFollowers returns the most-followed user, first in stored
// order on ties, or nil when nobody has any followers
func (s *Store) UserWithMostFollowers() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var best *User
	bestCount := 0
	for _, u := range s.users {
		if c := len(u.Followers); c > bestCount {
			best = u
			bestCount = c
		}
	}
	return best
}
