package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowMaintainsBothRecords(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")
	bob := register(t, s, "bob")

	require.True(t, s.Follow(alice.ID))
	assert.Equal(t, []string{alice.ID}, bob.Following)
	assert.Equal(t, []string{bob.ID}, alice.Followers)
}

func TestFollowIsIdempotent(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")
	bob := register(t, s, "bob")

	require.True(t, s.Follow(alice.ID))
	require.True(t, s.Follow(alice.ID))
	assert.Len(t, bob.Following, 1, "duplicate ids must not accumulate")
	assert.Len(t, alice.Followers, 1)
}

func TestFollowRejectsSelfAndUnknown(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")

	assert.False(t, s.Follow(alice.ID))
	assert.False(t, s.Follow("missing"))
	assert.Empty(t, alice.Following)
}

func TestUnfollow(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")
	bob := register(t, s, "bob")

	require.True(t, s.Follow(alice.ID))
	require.True(t, s.Unfollow(alice.ID))
	assert.Empty(t, bob.Following)
	assert.Empty(t, alice.Followers)
	_, ok := bob.FollowUnlockTimes[alice.ID]
	assert.False(t, ok)
}

func TestFriendRequestLifecycle(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")
	bob := register(t, s, "bob")

	// bob -> alice
	require.True(t, s.SendFriendRequest(alice.ID))
	assert.False(t, s.SendFriendRequest(alice.ID), "one pending request per ordered pair")
	assert.Len(t, s.SentFriendRequests(), 1)

	login(t, s, "alice")
	pending := s.PendingFriendRequests()
	require.Len(t, pending, 1)
	req := pending[0]
	assert.Equal(t, bob.ID, req.FromUserID)

	require.True(t, s.AcceptFriendRequest(req.ID))
	assert.Equal(t, RequestAccepted, req.Status)
	assert.Contains(t, alice.Friends, bob.ID)
	assert.Contains(t, bob.Friends, alice.ID)

	// History is retained, not deleted
	assert.Len(t, s.requests, 1)
	assert.Empty(t, s.PendingFriendRequests())

	// Already friends blocks a new request
	assert.False(t, s.SendFriendRequest(bob.ID))
}

func TestFriendRequestOnlyAddresseeMayAct(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")
	register(t, s, "bob")

	require.True(t, s.SendFriendRequest(alice.ID))
	req := s.SentFriendRequests()[0]

	// bob sent it; bob cannot accept or reject it
	assert.False(t, s.AcceptFriendRequest(req.ID))
	assert.False(t, s.RejectFriendRequest(req.ID))
	assert.Equal(t, RequestPending, req.Status)
}

func TestRejectFriendRequestOnlyChangesStatus(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")
	bob := register(t, s, "bob")

	require.True(t, s.SendFriendRequest(alice.ID))
	req := s.SentFriendRequests()[0]

	login(t, s, "alice")
	require.True(t, s.RejectFriendRequest(req.ID))
	assert.Equal(t, RequestRejected, req.Status)
	assert.Empty(t, alice.Friends)
	assert.Empty(t, bob.Friends)
	assert.Len(t, s.requests, 1, "rejected requests are retained as history")

	// A resolved request cannot be acted on again
	assert.False(t, s.AcceptFriendRequest(req.ID))
}

func TestSendFriendRequestRejectsSelf(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")

	assert.False(t, s.SendFriendRequest(alice.ID))
	assert.Empty(t, s.requests)
}

func TestRemoveFriend(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")
	bob := register(t, s, "bob")

	require.True(t, s.SendFriendRequest(alice.ID))
	login(t, s, "alice")
	require.True(t, s.AcceptFriendRequest(s.PendingFriendRequests()[0].ID))

	require.True(t, s.RemoveFriend(bob.ID))
	assert.Empty(t, alice.Friends)
	assert.Empty(t, bob.Friends)
}

func TestBlockSeversAllRelations(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")
	bob := register(t, s, "bob")

	// Build every relation in both directions
	require.True(t, s.Follow(alice.ID)) // bob follows alice
	login(t, s, "alice")
	require.True(t, s.Follow(bob.ID)) // alice follows bob
	require.True(t, s.SendFriendRequest(bob.ID))
	login(t, s, "bob")
	require.True(t, s.AcceptFriendRequest(s.PendingFriendRequests()[0].ID))

	// bob also has an unresolved request toward alice
	require.True(t, s.RemoveFriend(alice.ID))
	require.True(t, s.SendFriendRequest(alice.ID))

	login(t, s, "alice")
	require.True(t, s.Block(bob.ID))

	for _, list := range [][]string{
		alice.Friends, alice.Followers, alice.Following,
		bob.Friends, bob.Followers, bob.Following,
	} {
		assert.NotContains(t, list, alice.ID)
		assert.NotContains(t, list, bob.ID)
	}
	assert.Contains(t, alice.BlockedUsers, bob.ID)

	// No pending request remains between the pair in either direction
	for _, r := range s.requests {
		if r.Status != RequestPending {
			continue
		}
		between := (r.FromUserID == alice.ID && r.ToUserID == bob.ID) ||
			(r.FromUserID == bob.ID && r.ToUserID == alice.ID)
		assert.False(t, between)
	}
}

func TestBlockedPartiesCannotRelink(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")
	bob := register(t, s, "bob")

	login(t, s, "alice")
	require.True(t, s.Block(bob.ID))

	login(t, s, "bob")
	assert.False(t, s.Follow(alice.ID))
	assert.False(t, s.SendFriendRequest(alice.ID))
}

func TestUnblockDoesNotRestoreRelations(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")
	bob := register(t, s, "bob")

	require.True(t, s.Follow(alice.ID))
	login(t, s, "alice")
	require.True(t, s.Block(bob.ID))
	assert.True(t, s.IsBlocked(bob.ID))

	require.True(t, s.Unblock(bob.ID))
	assert.False(t, s.IsBlocked(bob.ID))
	assert.Empty(t, alice.Followers, "severed relations stay severed")
	assert.Empty(t, bob.Following)
}

func TestCanMessagePermissionMatrix(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")
	_ = register(t, s, "bob")

	// bob is the viewer; alice's permission decides
	setPermission := func(p MessagePermission) {
		login(t, s, "alice")
		require.True(t, s.SetMessagePermission(p))
		login(t, s, "bob")
	}

	login(t, s, "bob")
	assert.False(t, s.CanMessage(alice.ID), "default permission is nobody")

	setPermission(PermissionEveryone)
	assert.True(t, s.CanMessage(alice.ID))

	setPermission(PermissionFollowers)
	assert.False(t, s.CanMessage(alice.ID))
	require.True(t, s.Follow(alice.ID))
	assert.True(t, s.CanMessage(alice.ID))

	setPermission(PermissionFriends)
	assert.False(t, s.CanMessage(alice.ID))
	require.True(t, s.SendFriendRequest(alice.ID))
	login(t, s, "alice")
	require.True(t, s.AcceptFriendRequest(s.PendingFriendRequests()[0].ID))
	login(t, s, "bob")
	assert.True(t, s.CanMessage(alice.ID))

	setPermission(PermissionNobody)
	assert.False(t, s.CanMessage(alice.ID))
}

func TestCanMessageDeniedWhenBlockedEitherWay(t *testing.T) {
	s, _, _ := newTestStore(t)
	alice := register(t, s, "alice")
	bob := register(t, s, "bob")

	login(t, s, "alice")
	require.True(t, s.SetMessagePermission(PermissionEveryone))
	login(t, s, "bob")
	require.True(t, s.SetMessagePermission(PermissionEveryone))

	assert.True(t, s.CanMessage(alice.ID))

	// Target blocked the viewer
	login(t, s, "alice")
	require.True(t, s.Block(bob.ID))
	login(t, s, "bob")
	assert.False(t, s.CanMessage(alice.ID))

	// Viewer blocked the target
	login(t, s, "alice")
	require.True(t, s.Unblock(bob.ID))
	login(t, s, "bob")
	require.True(t, s.Block(alice.ID))
	assert.False(t, s.CanMessage(alice.ID))
}
