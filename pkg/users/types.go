package users

import "time"

// Rank is the display tier derived from a user's level
type Rank string

const (
	RankSilver   Rank = "Silver"
	RankGold     Rank = "Gold"
	RankPlatinum Rank = "Platinum"
	RankDiamond  Rank = "Diamond"
	RankElite    Rank = "Elite"
)

// Leveling constants. Levels accrue at DailyLevelGain per full elapsed
// day and never exceed MaxLevel.
const (
	MaxLevel       = 7000.0
	DailyLevelGain = 3.5
)

// RankForLevel maps a level to its rank via the fixed thresholds
func RankForLevel(level float64) Rank {
	switch {
	case level < 1000:
		return RankSilver
	case level < 3000:
		return RankGold
	case level < 5000:
		return RankPlatinum
	case level < 7000:
		return RankDiamond
	default:
		return RankElite
	}
}

// Time gates evaluated lazily against stored timestamps
const (
	// AccountLockPeriod hides all posts from accounts younger than this
	AccountLockPeriod = 24 * time.Hour
	// FollowUnlockDelay gates followers-only content after a follow
	FollowUnlockDelay = 24 * time.Hour
	// PictureCooldown limits profile picture edits
	PictureCooldown = 30 * 24 * time.Hour
)

// Status is a user's presence indicator
type Status string

const (
	StatusOnline    Status = "online"
	StatusInvisible Status = "invisible"
	StatusDND       Status = "dnd"
	StatusSleeping  Status = "sleeping"
	StatusBusy      Status = "busy"
	StatusAway      Status = "away"
)

// ValidStatus reports whether s is a known presence value
func ValidStatus(s Status) bool {
	switch s {
	case StatusOnline, StatusInvisible, StatusDND, StatusSleeping, StatusBusy, StatusAway:
		return true
	}
	return false
}

// MessagePermission controls who may message a user
type MessagePermission string

const (
	PermissionEveryone  MessagePermission = "everyone"
	PermissionFriends   MessagePermission = "friends"
	PermissionFollowers MessagePermission = "followers"
	PermissionNobody    MessagePermission = "nobody"
)

// ValidMessagePermission reports whether p is a known permission value
func ValidMessagePermission(p MessagePermission) bool {
	switch p {
	case PermissionEveryone, PermissionFriends, PermissionFollowers, PermissionNobody:
		return true
	}
	return false
}

// Privacy is a post's visibility class
type Privacy string

const (
	PrivacyPublic    Privacy = "public"
	PrivacyFollowers Privacy = "followers"
	PrivacyPrivate   Privacy = "private"
)

// Settings holds per-user presentation and messaging preferences.
// HomePageColor and HomePageBackground are mutually exclusive.
type Settings struct {
	HomePageColor      string            `json:"homePageColor,omitempty"`
	HomePageBackground string            `json:"homePageBackground,omitempty"`
	DarkMode           bool              `json:"darkMode"`
	MessagePermission  MessagePermission `json:"messagePermission"`
}

// Warning is a moderation record. The Warnings list is append-only,
// newest first.
type Warning struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Reason      string     `json:"reason"`
	Description string     `json:"description,omitempty"`
	IssuedAt    time.Time  `json:"issuedAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	Severity    string     `json:"severity"`
	Active      bool       `json:"active"`
}

// User is an account record
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`

	Followers    []string `json:"followers"`
	Following    []string `json:"following"`
	Friends      []string `json:"friends"`
	BlockedUsers []string `json:"blockedUsers"`

	Settings *Settings `json:"settings,omitempty"`

	DiscordID            string `json:"discordId,omitempty"`
	DiscordUsername      string `json:"discordUsername,omitempty"`
	DiscordDiscriminator string `json:"discordDiscriminator,omitempty"`
	DiscordAvatar        string `json:"discordAvatar,omitempty"`

	DisplayName string `json:"displayName,omitempty"`
	// DisplayNameEdited is a one-time edit gate. Once set, DisplayName can
	// only change through Discord sync, and only while it was still false.
	DisplayNameEdited      bool       `json:"displayNameEdited"`
	ProfilePicture         string     `json:"profilePicture,omitempty"`
	ProfileBanner          string     `json:"profileBanner,omitempty"`
	LastProfilePictureEdit *time.Time `json:"lastProfilePictureEdit,omitempty"`
	Bio                    string     `json:"bio,omitempty"`
	Partners               []string   `json:"partners,omitempty"`
	FavoriteGames          []string   `json:"favoriteGames,omitempty"`
	Status                 Status     `json:"status,omitempty"`

	Warnings []Warning `json:"warnings,omitempty"`

	Level              float64   `json:"level"`
	Rank               Rank      `json:"rank"`
	LastActivityUpdate time.Time `json:"lastActivityUpdate"`

	// FollowUnlockTimes maps a followed user's id to the moment that
	// user's followers-only posts become visible (24h after the follow).
	FollowUnlockTimes map[string]time.Time `json:"followUnlockTimes,omitempty"`
}

// Post is a user-generated upload
type Post struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	FileURL      string    `json:"fileUrl,omitempty"`
	FileName     string    `json:"fileName,omitempty"`
	FileSize     int64     `json:"fileSize,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	Privacy      Privacy   `json:"privacy"`
	Downloadable bool      `json:"downloadable"`
	Locked       bool      `json:"locked"`
	Tags         []string  `json:"tags,omitempty"`
}

// RequestStatus is the lifecycle state of a friend request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// FriendRequest records a friendship offer. Accepted and rejected
// requests are retained as history.
type FriendRequest struct {
	ID         string        `json:"id"`
	FromUserID string        `json:"fromUserId"`
	ToUserID   string        `json:"toUserId"`
	CreatedAt  time.Time     `json:"createdAt"`
	Status     RequestStatus `json:"status"`
}
