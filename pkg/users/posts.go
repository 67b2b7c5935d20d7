package users

import (
	"github.com/forerunnerhq/forerunner-store/pkg/logging"
)

// PostInput carries the fields for a new post
type PostInput struct {
	Title        string
	Description  string
	FileURL      string
	FileName     string
	FileSize     int64
	Privacy      Privacy
	Downloadable bool
	Locked       bool
	Tags         []string
}

// PostUpdate carries partial changes to a post; nil fields are untouched
type PostUpdate struct {
	Title        *string
	Description  *string
	FileURL      *string
	Privacy      *Privacy
	Downloadable *bool
	Locked       *bool
	Tags         *[]string
}

// CreatePost creates a post owned by the session user. Without an active
// session it is a silent no-op and returns nil.
func (s *Store) CreatePost(input PostInput) *Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}

	privacy := input.Privacy
	if privacy == "" {
		privacy = PrivacyPublic
	}

	post := &Post{
		ID:           s.newID(),
		UserID:       s.current.ID,
		Title:        input.Title,
		Description:  input.Description,
		FileURL:      input.FileURL,
		FileName:     input.FileName,
		FileSize:     input.FileSize,
		CreatedAt:    s.now(),
		Privacy:      privacy,
		Downloadable: input.Downloadable,
		Locked:       input.Locked,
		Tags:         input.Tags,
	}
	s.posts = append(s.posts, post)
	s.savePosts()

	logging.Audit.LogOp("post_create", s.current.Username, "success", "post", post.ID)
	return post
}

// UpdatePost applies changes to the post with the given id. Ownership is
// not checked at this boundary; callers gate which posts a user may edit.
func (s *Store) UpdatePost(id string, update PostUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	post := s.findPost(id)
	if post == nil {
		return false
	}

	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Description != nil {
		post.Description = *update.Description
	}
	if update.FileURL != nil {
		post.FileURL = *update.FileURL
	}
	if update.Privacy != nil {
		post.Privacy = *update.Privacy
	}
	if update.Downloadable != nil {
		post.Downloadable = *update.Downloadable
	}
	if update.Locked != nil {
		post.Locked = *update.Locked
	}
	if update.Tags != nil {
		post.Tags = *update.Tags
	}

	s.savePosts()
	return true
}

// DeletePost removes the post with the given id. As with UpdatePost,
// ownership is the caller's concern.
func (s *Store) DeletePost(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			s.savePosts()
			logging.Audit.LogOp("post_delete", "", "success", "post", id)
			return true
		}
	}
	return false
}

// Post returns the post with the given id
func (s *Store) Post(id string) (*Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.findPost(id)
	if p == nil {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// PostsByUser returns all posts owned by userID in stored order
func (s *Store) PostsByUser(userID string) []*Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Post
	for _, p := range s.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) findPost(id string) *Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CanViewPost decides whether the session user may see post. Accounts
// younger than 24 hours see nothing, not even their own posts. Followers
// content additionally requires 24 hours to have passed since the viewer
// followed the owner; a follower with no recorded unlock time gets one
// stamped 24 hours out and is denied until it passes.
func (s *Store) CanViewPost(post *Post) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canViewLocked(post)
}

// VisiblePosts returns every post the session user may currently see
func (s *Store) VisiblePosts() []*Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Post
	for _, p := range s.posts {
		if s.canViewLocked(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) canViewLocked(post *Post) bool {
	viewer := s.current
	if viewer == nil || post == nil {
		return false
	}

	// Global post lock for fresh accounts, keyed to viewer age
	if s.now().Sub(viewer.CreatedAt) < AccountLockPeriod {
		return false
	}

	if post.UserID == viewer.ID {
		return true
	}

	switch post.Privacy {
	case PrivacyPublic:
		return true
	case PrivacyFollowers:
		owner := s.findUser(post.UserID)
		if owner == nil {
			return false
		}
		if !contains(owner.Followers, viewer.ID) {
			return false
		}
		unlock, ok := viewer.FollowUnlockTimes[owner.ID]
		if !ok {
			// First-touch initialization for follows recorded before
			// unlock times existed
			viewer.FollowUnlockTimes[owner.ID] = s.now().Add(FollowUnlockDelay)
			s.saveUsers()
			s.saveCurrent()
			return false
		}
		return !s.now().Before(unlock)
	default:
		// private
		return false
	}
}
