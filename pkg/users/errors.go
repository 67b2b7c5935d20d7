package users

import "errors"

var (
	// ErrUserNotFound is returned when a user id has no record
	ErrUserNotFound = errors.New("user not found")

	// ErrPostNotFound is returned when a post id has no record
	ErrPostNotFound = errors.New("post not found")

	// ErrNoSession is returned when an operation requires a logged-in user
	ErrNoSession = errors.New("no active session")
)
