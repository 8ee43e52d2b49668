// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation wraps go-playground/validator v10 with a shared
// instance and readable messages. It validates both HTTP query structs and
// the loaded configuration.
//
//	type searchQuery struct {
//	    Q     string `validate:"notblank,max=200"`
//	    Limit int    `validate:"min=1,max=50"`
//	}
//	if err := validation.ValidateStruct(&q); err != nil { ... }
package validation
