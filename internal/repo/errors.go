package repo

import "errors"

// ErrItemNotFound is returned when no document has the requested id.
var ErrItemNotFound = errors.New("item not found")

var ErrUserNotFound = errors.New("user not found")

// ErrDuplicatedValueUnique is returned when a unique column already holds the value.
var ErrDuplicatedValueUnique = errors.New("unique constraint violation")
