// Package admin implements the admin store: the shared admin capability,
// promotional posts, and the fixed set of three content drives.
package admin

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/forerunnerhq/forerunner-store/pkg/authentication"
	"github.com/forerunnerhq/forerunner-store/pkg/logging"
	"github.com/forerunnerhq/forerunner-store/pkg/storage"
)

// Persisted key slots
const (
	keyAdmin  = "admin"
	keyPosts  = "posts"
	keyDrives = "drives"
)

// Login throttling after repeated failures
const (
	maxLoginFailures = 5
	lockoutPeriod    = time.Minute
)

// Post is a promotional entry managed by the admin role. Anyone may like
// a post; likes carry no per-user dedup.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Likes       int       `json:"likes"`
}

// Options configures a Store
type Options struct {
	// PasswordHash is the argon2id hash of the shared admin secret
	PasswordHash string
	// Verifier checks the admin password. Defaults to argon2id.
	Verifier authentication.PasswordVerifier
	// Now overrides the clock, for tests
	Now func() time.Time
}

// Store gates the admin capability and manages promotional posts and the
// three drives.
type Store struct {
	storage      storage.Store
	passwordHash string
	verifier     authentication.PasswordVerifier
	now          func() time.Time
	newID        func() string

	mu          sync.RWMutex
	admin       bool
	posts       []*Post
	drives      map[DriveID]*Drive
	failures    int
	lockedUntil time.Time
}

// New creates a Store backed by st, loading and reconciling persisted
// state. Unless the stored drive data holds exactly the three canonical
// ids it is discarded wholesale for the built-in defaults.
func New(st storage.Store, opts Options) (*Store, error) {
	if st == nil {
		return nil, errors.New("storage is required")
	}
	if opts.Verifier == nil {
		opts.Verifier = authentication.NewArgon2id()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Store{
		storage:      st,
		passwordHash: opts.PasswordHash,
		verifier:     opts.Verifier,
		now:          opts.Now,
		newID:        uuid.NewString,
	}
	s.load()
	return s, nil
}

func (s *Store) load() {
	var flag string
	if err := storage.ReadJSON(s.storage, keyAdmin, &flag); err == nil {
		s.admin = flag == "true"
	} else if !errors.Is(err, storage.ErrKeyNotFound) {
		logging.App.Error("Failed to load admin flag", "error", err)
	}

	if err := storage.ReadJSON(s.storage, keyPosts, &s.posts); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		logging.App.Error("Failed to load admin posts, starting empty", "error", err)
	}

	s.drives = s.reconcileDrives()
}

// reconcileDrives loads persisted drive data against the canonical set.
// Anything other than exactly the three ids is replaced wholesale with
// defaults; a valid set only gets its empty link fields backfilled.
func (s *Store) reconcileDrives() map[DriveID]*Drive {
	defaults := defaultDrives()

	var stored []*Drive
	if err := storage.ReadJSON(s.storage, keyDrives, &stored); err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			logging.App.Error("Failed to load drives, using defaults", "error", err)
		}
		return defaults
	}

	byID := make(map[DriveID]*Drive, len(stored))
	for _, d := range stored {
		byID[d.ID] = d
	}
	if len(stored) != len(defaults) || len(byID) != len(defaults) {
		logging.App.Warn("Stored drive set incomplete, replacing with defaults", "stored", len(stored))
		return defaults
	}
	for id := range defaults {
		if _, ok := byID[id]; !ok {
			logging.App.Warn("Stored drive set missing canonical id, replacing with defaults", "id", id)
			return defaults
		}
	}

	for id, d := range byID {
		if d.Link == "" {
			d.Link = defaults[id].Link
		}
	}
	return byID
}

func (s *Store) saveAdmin() {
	flag := "false"
	if s.admin {
		flag = "true"
	}
	if err := storage.WriteJSON(s.storage, keyAdmin, flag); err != nil {
		logging.App.Error("Failed to persist admin flag", "error", err)
	}
}

func (s *Store) savePosts() {
	if err := storage.WriteJSON(s.storage, keyPosts, s.posts); err != nil {
		logging.App.Error("Failed to persist admin posts", "error", err)
	}
}

func (s *Store) saveDrives() {
	drives := make([]*Drive, 0, len(s.drives))
	for _, id := range DriveIDs() {
		drives = append(drives, s.drives[id])
	}
	if err := storage.WriteJSON(s.storage, keyDrives, drives); err != nil {
		logging.App.Error("Failed to persist drives", "error", err)
	}
}

// Login verifies the shared admin secret and sets the admin flag. After
// five consecutive failures login is refused for a minute.
func (s *Store) Login(password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Before(s.lockedUntil) {
		logging.Audit.LogAuth("admin_login", "admin", "locked_out")
		return false
	}

	if err := s.verifier.VerifyPassword(password, s.passwordHash); err != nil {
		s.failures++
		if s.failures >= maxLoginFailures {
			s.lockedUntil = now.Add(lockoutPeriod)
			s.failures = 0
			logging.Audit.LogAuth("admin_login", "admin", "lockout_started")
		} else {
			logging.Audit.LogAuth("admin_login", "admin", "failed")
		}
		return false
	}

	s.failures = 0
	s.admin = true
	s.saveAdmin()

	logging.Audit.LogAuth("admin_login", "admin", "success")
	return true
}

// Logout clears the admin flag
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.admin = false
	s.saveAdmin()
	logging.Audit.LogAuth("admin_logout", "admin", "success")
}

// IsAdmin reports whether the admin capability is active
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// AddPost creates a promotional post. No-op (nil) without the admin
// capability.
func (s *Store) AddPost(title, description, imageURL string) *Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.admin {
		return nil
	}

	post := &Post{
		ID:          s.newID(),
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   s.now(),
	}
	s.posts = append(s.posts, post)
	s.savePosts()

	logging.Audit.LogOp("admin_post_create", "admin", "success", "post", post.ID)
	return post
}

// DeletePost removes a promotional post. No-op without the admin
// capability.
func (s *Store) DeletePost(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.admin {
		return false
	}
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			s.savePosts()
			return true
		}
	}
	return false
}

// Posts returns the promotional posts in stored order
func (s *Store) Posts() []*Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// LikePost increments a post's like counter. Callable by any visitor,
// no dedup; the counter is unbounded by design of the original site.
func (s *Store) LikePost(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.ID == id {
			p.Likes++
			s.savePosts()
			return true
		}
	}
	return false
}

// UpdateDrive replaces the mutable fields of the given drive and stamps
// its update time. No-op without the admin capability or for an unknown
// id.
func (s *Store) UpdateDrive(id DriveID, update DriveUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.admin || !ValidDriveID(id) {
		return false
	}

	drive := s.drives[id]
	drive.Owner = update.Owner
	drive.Title = update.Title
	drive.Description = update.Description
	drive.Bio = update.Bio
	drive.Link = update.Link
	drive.Images = update.Images
	drive.ComparisonImageBefore = update.ComparisonImageBefore
	drive.ComparisonImageAfter = update.ComparisonImageAfter
	drive.IsPublished = update.IsPublished
	drive.NextUpdate = update.NextUpdate
	drive.WhatsNewBullets = update.WhatsNewBullets
	drive.LastUpdated = s.now()
	// Theme always mirrors the id
	drive.Theme = string(id)

	s.saveDrives()

	logging.Audit.LogOp("drive_update", "admin", "success", "drive", id, "published", update.IsPublished)
	return true
}

// Drive returns the drive for id, or nil for an unknown id
func (s *Store) Drive(id DriveID) *Drive {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.drives[id]
}

// Drives returns the three drives in canonical order
func (s *Store) Drives() []*Drive {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Drive, 0, len(s.drives))
	for _, id := range DriveIDs() {
		out = append(out, s.drives[id])
	}
	return out
}

// PublishedDrives returns the drives visible on the public Explore page
func (s *Store) PublishedDrives() []*Drive {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Drive
	for _, id := range DriveIDs() {
		if d := s.drives[id]; d.IsPublished {
			out = append(out, d)
		}
	}
	return out
}
