// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

// Package service implements the taskcal business logic on top of the
// domain repositories and the message builder.
package service

// Service is implemented by each service so the health endpoint can check
// that all dependencies are wired.
type Service interface {
	ServiceReady() bool
}

// ServiceConfig is the configuration for the services.
type ServiceConfig struct {
	// SkipRevisionValidation skips the optimistic concurrency check on
	// update and delete - only meant for local development.
	SkipRevisionValidation bool
}
