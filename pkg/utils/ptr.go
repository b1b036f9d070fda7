// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

// Package utils holds small shared helpers.
package utils

import "time"

// TimePtr converts a time.Time to a pointer to a time.Time.
func TimePtr(t time.Time) *time.Time {
	return &t
}
