package users

import (
	"github.com/forerunnerhq/forerunner-store/pkg/logging"
)

// SendFriendRequest creates a pending request from the session user.
// No-op when targeting yourself, an existing friend, a blocked party, or
// when a pending request already exists in that direction.
func (s *Store) SendFriendRequest(toID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.current
	if from == nil || from.ID == toID {
		return false
	}
	to := s.findUser(toID)
	if to == nil {
		return false
	}
	if contains(from.Friends, toID) {
		return false
	}
	if contains(from.BlockedUsers, toID) || contains(to.BlockedUsers, from.ID) {
		return false
	}
	for _, r := range s.requests {
		if r.FromUserID == from.ID && r.ToUserID == toID && r.Status == RequestPending {
			return false
		}
	}

	s.requests = append(s.requests, &FriendRequest{
		ID:         s.newID(),
		FromUserID: from.ID,
		ToUserID:   toID,
		CreatedAt:  s.now(),
		Status:     RequestPending,
	})
	s.saveRequests()

	logging.Audit.LogOp("friend_request", from.Username, "success", "target", toID)
	return true
}

// AcceptFriendRequest accepts a pending request addressed to the session
// user, adding a symmetric friend edge. The request is kept as history.
func (s *Store) AcceptFriendRequest(requestID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}
	req := s.findRequest(requestID)
	if req == nil || req.Status != RequestPending || req.ToUserID != s.current.ID {
		return false
	}
	from := s.findUser(req.FromUserID)
	if from == nil {
		return false
	}

	s.current.Friends = appendUnique(s.current.Friends, from.ID)
	from.Friends = appendUnique(from.Friends, s.current.ID)
	req.Status = RequestAccepted

	s.saveUsers()
	s.saveCurrent()
	s.saveRequests()

	logging.Audit.LogOp("friend_accept", s.current.Username, "success", "from", from.ID)
	return true
}

// RejectFriendRequest marks a pending request addressed to the session
// user as rejected. Only the status changes.
func (s *Store) RejectFriendRequest(requestID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}
	req := s.findRequest(requestID)
	if req == nil || req.Status != RequestPending || req.ToUserID != s.current.ID {
		return false
	}

	req.Status = RequestRejected
	s.saveRequests()
	return true
}

// RemoveFriend removes the friend edge in both records
func (s *Store) RemoveFriend(friendID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return false
	}
	friend := s.findUser(friendID)
	if friend == nil {
		return false
	}

	s.current.Friends = remove(s.current.Friends, friendID)
	friend.Friends = remove(friend.Friends, s.current.ID)

	s.saveUsers()
	s.saveCurrent()
	return true
}

// PendingFriendRequests returns pending requests addressed to the
// session user
func (s *Store) PendingFriendRequests() []*FriendRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	var out []*FriendRequest
	for _, r := range s.requests {
		if r.ToUserID == s.current.ID && r.Status == RequestPending {
			out = append(out, r)
		}
	}
	return out
}

// SentFriendRequests returns pending requests the session user has sent
func (s *Store) SentFriendRequests() []*FriendRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	var out []*FriendRequest
	for _, r := range s.requests {
		if r.FromUserID == s.current.ID && r.Status == RequestPending {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) findRequest(id string) *FriendRequest {
	for _, r := range s.requests {
		if r.ID == id {
			return r
		}
	}
	return nil
}
