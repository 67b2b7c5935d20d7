// Package users implements the account store: registration and login,
// the social graph, user posts and their visibility rules, profile
// customization, and the time-accrued leveling system. All state is held
// in memory and written through to an injected storage.Store after every
// mutation.
package users

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
	keyUsers       = "users"
	keyPosts       = "posts"
	keyPasswords   = "passwords"
	keyCurrentUser = "current_user"
	keyRequests    = "friend_requests"
)

// Options configures a Store
type Options struct {
	// Hasher produces password hashes for new and rehashed records.
	// Defaults to argon2id.
	Hasher authentication.PasswordHasher
	// Verifier checks login passwords. Defaults to the multi-format
	// verifier that upgrades legacy records.
	Verifier *authentication.MultiVerifier
	// Now overrides the clock, for tests
	Now func() time.Time
}

// Store owns the full lifecycle of accounts, the social graph, posts and
// leveling. It is the single source of truth for who can see what.
type Store struct {
	storage  storage.Store
	hasher   authentication.PasswordHasher
	verifier *authentication.MultiVerifier
	now      func() time.Time
	newID    func() string

	mu        sync.RWMutex
	users     []*User
	posts     []*Post
	requests  []*FriendRequest
	passwords map[string]string
	current   *User
}

// New creates a Store backed by st, loading any persisted state.
// Malformed blobs are logged and that collection starts empty; the store
// keeps operating without durability for the failed slot.
func New(st storage.Store, opts Options) (*Store, error) {
	if st == nil {
		return nil, errors.New("storage is required")
	}
	if opts.Hasher == nil {
		opts.Hasher = authentication.NewArgon2id()
	}
	if opts.Verifier == nil {
		opts.Verifier = authentication.NewMultiVerifier()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Store{
		storage:   st,
		hasher:    opts.Hasher,
		verifier:  opts.Verifier,
		now:       opts.Now,
		newID:     uuid.NewString,
		passwords: make(map[string]string),
	}
	s.load()
	return s, nil
}

// load reads all persisted slots. A missing key is a fresh install; a
// parse error is logged and the slot starts empty.
func (s *Store) load() {
	loadSlot(s.storage, keyUsers, &s.users)
	loadSlot(s.storage, keyPosts, &s.posts)
	loadSlot(s.storage, keyRequests, &s.requests)

	passwords := make(map[string]string)
	loadSlot(s.storage, keyPasswords, &passwords)
	s.passwords = passwords

	for _, u := range s.users {
		normalizeUser(u)
	}

	// The canonical record in users wins over the persisted session blob;
	// a stale session for an unknown id is dropped.
	var session *User
	loadSlot(s.storage, keyCurrentUser, &session)
	if session != nil {
		if u := s.findUser(session.ID); u != nil {
			s.current = u
		} else {
			logging.App.Warn("Dropping session for unknown user", "id", session.ID)
		}
	}
}

func loadSlot(st storage.Store, key string, v interface{}) {
	if err := storage.ReadJSON(st, key, v); err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		logging.App.Error("Failed to load slot, starting empty", "key", key, "error", err)
	}
}

// normalizeUser backfills nil collections on records from older blobs
func normalizeUser(u *User) {
	if u.Followers == nil {
		u.Followers = []string{}
	}
	if u.Following == nil {
		u.Following = []string{}
	}
	if u.Friends == nil {
		u.Friends = []string{}
	}
	if u.BlockedUsers == nil {
		u.BlockedUsers = []string{}
	}
	if u.FollowUnlockTimes == nil {
		u.FollowUnlockTimes = make(map[string]time.Time)
	}
}

// defaultSettings are the preferences assigned at registration
func defaultSettings() *Settings {
	return &Settings{
		DarkMode:          false,
		MessagePermission: PermissionNobody,
	}
}

// Persistence write-through. Failures are logged, never returned:
// the in-memory state stays authoritative for the session.

func (s *Store) saveUsers() {
	if err := storage.WriteJSON(s.storage, keyUsers, s.users); err != nil {
		logging.App.Error("Failed to persist users", "error", err)
	}
}

func (s *Store) savePosts() {
	if err := storage.WriteJSON(s.storage, keyPosts, s.posts); err != nil {
		logging.App.Error("Failed to persist posts", "error", err)
	}
}

func (s *Store) savePasswords() {
	if err := storage.WriteJSON(s.storage, keyPasswords, s.passwords); err != nil {
		logging.App.Error("Failed to persist passwords", "error", err)
	}
}

func (s *Store) saveRequests() {
	if err := storage.WriteJSON(s.storage, keyRequests, s.requests); err != nil {
		logging.App.Error("Failed to persist friend requests", "error", err)
	}
}

func (s *Store) saveCurrent() {
	if s.current == nil {
		if err := s.storage.Delete(keyCurrentUser); err != nil {
			logging.App.Error("Failed to clear session", "error", err)
		}
		return
	}
	if err := storage.WriteJSON(s.storage, keyCurrentUser, s.current); err != nil {
		logging.App.Error("Failed to persist session", "error", err)
	}
}

// Lookup helpers. Callers hold the lock.

func (s *Store) findUser(id string) *User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (s *Store) findByEmail(email string) *User {
	for _, u := range s.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (s *Store) findByDiscordID(discordID string) *User {
	for _, u := range s.users {
		if u.DiscordID == discordID {
			return u
		}
	}
	return nil
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

// appendUnique adds id to list unless already present
func appendUnique(list []string, id string) []string {
	if contains(list, id) {
		return list
	}
	return append(list, id)
}

func remove(list []string, id string) []string {
	out := list[:0]
	for _, v := range list {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Register creates an account and makes it the active session. It fails
// when the username or email already exists (exact match) and leaves the
// store untouched in that case.
func (s *Store) Register(username, email, password string) bool {
	if username == "" || email == "" || password == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			logging.Audit.LogAuth("register", username, "duplicate")
			return false
		}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		logging.App.Error("Failed to hash password", "error", err)
		return false
	}

	now := s.now()
	user := &User{
		ID:                 s.newID(),
		Username:           username,
		Email:              email,
		CreatedAt:          now,
		Followers:          []string{},
		Following:          []string{},
		Friends:            []string{},
		BlockedUsers:       []string{},
		Settings:           defaultSettings(),
		Status:             StatusOnline,
		Level:              0,
		Rank:               RankSilver,
		LastActivityUpdate: now,
		FollowUnlockTimes:  make(map[string]time.Time),
	}

	s.users = append(s.users, user)
	s.passwords[user.ID] = hash
	s.current = user

	s.saveUsers()
	s.savePasswords()
	s.saveCurrent()

	logging.Audit.LogAuth("register", username, "success", "id", user.ID)
	return true
}

// Login authenticates by email and password and starts a session.
// Accounts imported with legacy password records are rehashed on the
// first successful login.
func (s *Store) Login(email, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findByEmail(email)
	if user == nil {
		logging.Audit.LogAuth("login", email, "unknown_email")
		return false
	}

	stored := s.passwords[user.ID]
	if err := s.verifier.VerifyPassword(password, stored); err != nil {
		logging.Audit.LogAuth("login", user.Username, "failed")
		return false
	}

	if s.verifier.NeedsRehash(stored) {
		if hash, err := s.hasher.Hash(password); err == nil {
			s.passwords[user.ID] = hash
			s.savePasswords()
			logging.App.Info("Upgraded legacy password record", "id", user.ID)
		}
	}

	// Older blobs may predate the settings object
	if user.Settings == nil {
		user.Settings = defaultSettings()
	}

	s.current = user
	s.accrueLevelLocked(user)
	s.saveUsers()
	s.saveCurrent()

	logging.Audit.LogAuth("login", user.Username, "success")
	return true
}

// Logout clears the session. Account data is untouched.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		logging.Audit.LogAuth("logout", s.current.Username, "success")
	}
	s.current = nil
	s.saveCurrent()
}

// CurrentUser returns the active session user, or nil. The returned
// record is owned by the store; mutate it only through store methods.
func (s *Store) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// User returns the record for id
func (s *Store) User(id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findUser(id)
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Users returns all records in stored order
func (s *Store) Users() []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*User, len(s.users))
	copy(out, s.users)
	return out
}

// UserCount returns the number of accounts
func (s *Store) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// PostCount returns the number of user posts
func (s *Store) PostCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}
