// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to test for them; the concrete errors
// returned by lookups carry the offending title or index.
var (
	ErrNotFound          = errors.New("movie not found")
	ErrIndexOutOfRange   = errors.New("catalog index out of range")
	ErrEmptyCatalog      = errors.New("catalog is empty")
	ErrDimensionMismatch = errors.New("similarity matrix does not match catalog size")
	ErrInvalidScore      = errors.New("similarity score is not a finite number")
)

// NotFoundError reports a title absent from the catalog.
type NotFoundError struct {
	Title string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("movie %q not found", e.Title)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IndexOutOfRangeError reports an index outside [0, Size).
type IndexOutOfRangeError struct {
	Index int
	Size  int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("catalog index %d out of range [0, %d)", e.Index, e.Size)
}

func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
