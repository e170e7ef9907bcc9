// Package domain defines errors shared between the auth feature's layers.
package domain

import "errors"

// ErrNotFound is returned by repositories when no document matches.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateKey is returned when an insert violates the unique
// username/email indexes.
var ErrDuplicateKey = errors.New("duplicate key")
