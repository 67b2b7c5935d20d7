package users

import (
	"github.com/forerunnerhq/forerunner-store/pkg/logging"
)

// Block adds targetID to the session user's blocked set and atomically
// severs every relation between the two: friend, follower and following
// edges in both directions, plus any pending friend request either way.
func (s *Store) Block(targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocker := s.current
	if blocker == nil || blocker.ID == targetID {
		return false
	}
	target := s.findUser(targetID)
	if target == nil {
		return false
	}

	blocker.BlockedUsers = appendUnique(blocker.BlockedUsers, targetID)

	blocker.Friends = remove(blocker.Friends, targetID)
	blocker.Followers = remove(blocker.Followers, targetID)
	blocker.Following = remove(blocker.Following, targetID)
	delete(blocker.FollowUnlockTimes, targetID)

	target.Friends = remove(target.Friends, blocker.ID)
	target.Followers = remove(target.Followers, blocker.ID)
	target.Following = remove(target.Following, blocker.ID)
	delete(target.FollowUnlockTimes, blocker.ID)

	// Purge pending requests between the pair, keep resolved history
	kept := s.requests[:0]
	for _, r := range s.requests {
		between := (r.FromUserID == blocker.ID && r.ToUserID == targetID) ||
			(r.FromUserID == targetID && r.ToUserID == blocker.ID)
		if between && r.Status == RequestPending {
			continue
		}
		kept = append(kept, r)
	}
	s.requests = kept

	s.saveUsers()
	s.saveCurrent()
	s.saveRequests()

	logging.Audit.LogOp("block", blocker.Username, "success", "target", targetID)
	return true
}

// Unblock removes targetID from the blocked set. Severed relations are
// not restored.
func (s *Store) Unblock(targetID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}

	s.current.BlockedUsers = remove(s.current.BlockedUsers, targetID)
	s.saveUsers()
	s.saveCurrent()
	return true
}

// IsBlocked reports whether the session user has blocked targetID
func (s *Store) IsBlocked(targetID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return false
	}
	return contains(s.current.BlockedUsers, targetID)
}

// CanMessage decides whether the session user may message targetID.
// A block in either direction denies; otherwise the target's message
// permission is evaluated against the current relationship.
func (s *Store) CanMessage(targetID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	viewer := s.current
	if viewer == nil {
		return false
	}
	target := s.findUser(targetID)
	if target == nil {
		return false
	}
	if contains(viewer.BlockedUsers, targetID) || contains(target.BlockedUsers, viewer.ID) {
		return false
	}

	permission := PermissionNobody
	if target.Settings != nil {
		permission = target.Settings.MessagePermission
	}

	switch permission {
	case PermissionEveryone:
		return true
	case PermissionFriends:
		return contains(target.Friends, viewer.ID)
	case PermissionFollowers:
		return contains(target.Followers, viewer.ID)
	default:
		return false
	}
}
