package event

import "errors"

// ErrDuplicateID indicates a repository already holds an event with the same ID.
var ErrDuplicateID = errors.New("event id already exists")

// reservedTitle is rejected on create and update.
const reservedTitle = "error"
