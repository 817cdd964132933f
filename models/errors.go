// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

var (
	// ErrInvalidConfiguration is returned for inputs no computation can
	// recover from, such as fewer seats than states.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrPlanMismatch marks a district plan whose seats do not add up to the
	// jurisdiction's district seat total.
	ErrPlanMismatch = errors.New("district plan does not match seat total")
)
