package users

import (
	"github.com/forerunnerhq/forerunner-store/pkg/logging"
)

// Follow adds the session user to target's followers and stamps the
// 24-hour unlock timer for that target's followers-only content. It is
// idempotent; duplicate ids never accumulate.
func (s *Store) Follow(targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer := s.current
	if viewer == nil || viewer.ID == targetID {
		return false
	}
	target := s.findUser(targetID)
	if target == nil {
		return false
	}
	if contains(viewer.BlockedUsers, targetID) || contains(target.BlockedUsers, viewer.ID) {
		return false
	}

	if contains(viewer.Following, targetID) {
		return true
	}

	viewer.Following = appendUnique(viewer.Following, targetID)
	target.Followers = appendUnique(target.Followers, viewer.ID)
	viewer.FollowUnlockTimes[targetID] = s.now().Add(FollowUnlockDelay)

	s.saveUsers()
	s.saveCurrent()

	logging.Audit.LogOp("follow", viewer.Username, "success", "target", targetID)
	return true
}

// Unfollow removes the follow edge in both records
func (s *Store) Unfollow(targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewer := s.current
	if viewer == nil {
		return false
	}
	target := s.findUser(targetID)
	if target == nil {
		return false
	}

	viewer.Following = remove(viewer.Following, targetID)
	target.Followers = remove(target.Followers, viewer.ID)
	delete(viewer.FollowUnlockTimes, targetID)

	s.saveUsers()
	s.saveCurrent()

	logging.Audit.LogOp("unfollow", viewer.Username, "success", "target", targetID)
	return true
}
