package admin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forerunnerhq/forerunner-store/pkg/authentication"
	"github.com/forerunnerhq/forerunner-store/pkg/storage"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

const adminSecret = "hunter2"

func newTestStore(t *testing.T) (*Store, *testClock, *storage.MemoryStore) {
	t.Helper()
	hash, err := authentication.NewArgon2id().Hash(adminSecret)
	require.NoError(t, err)

	clk := &testClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	st := storage.NewMemoryStore()
	s, err := New(st, Options{PasswordHash: hash, Now: clk.Now})
	require.NoError(t, err)
	return s, clk, st
}

func TestLoginLogout(t *testing.T) {
	s, _, _ := newTestStore(t)

	assert.False(t, s.IsAdmin())
	assert.False(t, s.Login("wrong"))
	assert.False(t, s.IsAdmin())

	assert.True(t, s.Login(adminSecret))
	assert.True(t, s.IsAdmin())

	s.Logout()
	assert.False(t, s.IsAdmin())
}

func TestLoginLockoutAfterRepeatedFailures(t *testing.T) {
	s, clk, _ := newTestStore(t)

	for i := 0; i < maxLoginFailures; i++ {
		assert.False(t, s.Login("wrong"))
	}

	// Locked out: even the correct password is refused
	assert.False(t, s.Login(adminSecret))

	clk.Advance(lockoutPeriod)
	assert.True(t, s.Login(adminSecret))
}

func TestLoginSuccessResetsFailures(t *testing.T) {
	s, _, _ := newTestStore(t)

	for i := 0; i < maxLoginFailures-1; i++ {
		assert.False(t, s.Login("wrong"))
	}
	assert.True(t, s.Login(adminSecret))

	// The counter restarted; a few failures do not lock out
	s.Logout()
	assert.False(t, s.Login("wrong"))
	assert.True(t, s.Login(adminSecret))
}

func TestAdminFlagPersists(t *testing.T) {
	s, clk, st := newTestStore(t)
	require.True(t, s.Login(adminSecret))

	reopened, err := New(st, Options{PasswordHash: s.passwordHash, Now: clk.Now})
	require.NoError(t, err)
	assert.True(t, reopened.IsAdmin())
}

func TestPostsRequireAdmin(t *testing.T) {
	s, _, _ := newTestStore(t)

	assert.Nil(t, s.AddPost("promo", "desc", "img.png"))
	assert.Empty(t, s.Posts())

	require.True(t, s.Login(adminSecret))
	post := s.AddPost("promo", "desc", "img.png")
	require.NotNil(t, post)
	assert.Len(t, s.Posts(), 1)

	s.Logout()
	assert.False(t, s.DeletePost(post.ID))
	assert.Len(t, s.Posts(), 1)

	require.True(t, s.Login(adminSecret))
	assert.True(t, s.DeletePost(post.ID))
	assert.Empty(t, s.Posts())
}

func TestLikePostNeedsNoAdmin(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.True(t, s.Login(adminSecret))
	post := s.AddPost("promo", "", "")
	s.Logout()

	// Any visitor can like, repeatedly
	assert.True(t, s.LikePost(post.ID))
	assert.True(t, s.LikePost(post.ID))
	assert.True(t, s.LikePost(post.ID))
	assert.Equal(t, 3, s.Posts()[0].Likes)

	assert.False(t, s.LikePost("missing"))
}

func TestUpdateDrive(t *testing.T) {
	s, clk, _ := newTestStore(t)

	update := DriveUpdate{
		Owner:           "Kayo",
		Title:           "Kayo Summer Pack",
		Description:     "fresh edits",
		Link:            "https://example.com/kayo",
		Images:          []string{"1.png", "2.png"},
		IsPublished:     true,
		WhatsNewBullets: []string{"new intro", "two clips"},
	}

	// No-op without the admin capability
	assert.False(t, s.UpdateDrive(DriveKayo, update))
	assert.False(t, s.Drive(DriveKayo).IsPublished)

	require.True(t, s.Login(adminSecret))
	assert.True(t, s.UpdateDrive(DriveKayo, update))

	d := s.Drive(DriveKayo)
	assert.True(t, d.IsPublished)
	assert.Equal(t, "Kayo Summer Pack", d.Title)
	assert.Equal(t, clk.now, d.LastUpdated)
	assert.Equal(t, string(DriveKayo), d.Theme)

	published := s.PublishedDrives()
	require.Len(t, published, 1)
	assert.Equal(t, DriveKayo, published[0].ID)

	// Unknown ids can never be written
	assert.False(t, s.UpdateDrive(DriveID("extra"), update))

	s.Logout()
	assert.False(t, s.UpdateDrive(DriveDogs, update))
	assert.False(t, s.Drive(DriveDogs).IsPublished)
}

func TestDrivesCanonicalOrder(t *testing.T) {
	s, _, _ := newTestStore(t)

	drives := s.Drives()
	require.Len(t, drives, 3)
	assert.Equal(t, DriveKayo, drives[0].ID)
	assert.Equal(t, DriveDogs, drives[1].ID)
	assert.Equal(t, DriveEvecita, drives[2].ID)
}

func TestReconcileIncompleteDriveSetReplacedWholesale(t *testing.T) {
	st := storage.NewMemoryStore()
	stored := []*Drive{
		{ID: DriveKayo, Title: "custom kayo", Link: "x"},
		{ID: DriveDogs, Title: "custom dogs", Link: "y"},
	}
	require.NoError(t, storage.WriteJSON(st, keyDrives, stored))

	s, err := New(st, Options{})
	require.NoError(t, err)

	// Two of three ids: no partial repair, defaults win
	defaults := defaultDrives()
	assert.Equal(t, defaults[DriveKayo].Title, s.Drive(DriveKayo).Title)
	assert.Equal(t, defaults[DriveEvecita].Link, s.Drive(DriveEvecita).Link)
}

func TestReconcileUnknownIdReplacedWholesale(t *testing.T) {
	st := storage.NewMemoryStore()
	stored := []*Drive{
		{ID: DriveKayo, Link: "x"},
		{ID: DriveDogs, Link: "y"},
		{ID: DriveID("intruder"), Link: "z"},
	}
	require.NoError(t, storage.WriteJSON(st, keyDrives, stored))

	s, err := New(st, Options{})
	require.NoError(t, err)
	assert.Nil(t, s.Drive(DriveID("intruder")))
	assert.Equal(t, defaultDrives()[DriveKayo].Link, s.Drive(DriveKayo).Link)
}

func TestReconcileBackfillsEmptyLinkOnly(t *testing.T) {
	st := storage.NewMemoryStore()
	stored := []*Drive{
		{ID: DriveKayo, Title: "kept title", Link: "", IsPublished: true},
		{ID: DriveDogs, Title: "dogs", Link: "https://example.com/dogs"},
		{ID: DriveEvecita, Title: "eve", Link: "https://example.com/eve"},
	}
	require.NoError(t, storage.WriteJSON(st, keyDrives, stored))

	s, err := New(st, Options{})
	require.NoError(t, err)

	kayo := s.Drive(DriveKayo)
	assert.Equal(t, defaultDrives()[DriveKayo].Link, kayo.Link, "empty link backfilled")
	assert.Equal(t, "kept title", kayo.Title, "all other fields taken as stored")
	assert.True(t, kayo.IsPublished)

	assert.Equal(t, "https://example.com/dogs", s.Drive(DriveDogs).Link, "non-empty links untouched")
}

func TestCorruptDriveBlobFallsBackToDefaults(t *testing.T) {
	st := storage.NewMemoryStore()
	require.NoError(t, st.Write(keyDrives, []byte("{not json")))

	s, err := New(st, Options{})
	require.NoError(t, err)
	require.Len(t, s.Drives(), 3)
	assert.Equal(t, defaultDrives()[DriveKayo].Link, s.Drive(DriveKayo).Link)
}
