// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

// Package main is the taskcal service API that stores tasks, events, and
// labels, answers calendar queries, and handles NATS messages for the
// taskcal system.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"taskcal/internal/handlers"
	"taskcal/internal/infrastructure/messaging"
	"taskcal/internal/logging"
	"taskcal/internal/service"
)

func main() {
	env := parseEnv()
	flags := parseFlags(env.Port)

	logging.InitStructureLogConfig()

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	gracefulCloseWG := sync.WaitGroup{}

	// Setup NATS connection
	natsConn, err := setupNATS(ctx, env, &gracefulCloseWG, done)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error setting up NATS")
		return
	}

	// Get the key-value stores for the service.
	repos, err := getKeyValueStores(ctx, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error getting key-value stores")
		return
	}

	// Initialize services
	serviceConfig := service.ServiceConfig{
		SkipRevisionValidation: env.SkipRevisionValidation,
	}
	messageBuilder := messaging.NewMessageBuilder(natsConn)
	occurrenceService := service.NewOccurrenceService(repos.Item, env.Calendar)
	itemService := service.NewItemService(
		repos.Item,
		messageBuilder,
		serviceConfig,
	)
	labelService := service.NewLabelService(
		repos.Label,
		repos.Item,
		messageBuilder,
		serviceConfig,
	)

	// Initialize handlers
	itemHandler := handlers.NewItemHandler(itemService, occurrenceService)
	labelHandler := handlers.NewLabelHandler(labelService)

	httpServer := setupHTTPServer(flags, natsConn, itemHandler, labelHandler, &gracefulCloseWG)

	// Create NATS subscriptions for the service.
	err = createNatsSubscriptions(ctx, itemHandler, labelHandler, natsConn)
	if err != nil {
		slog.With(logging.ErrKey, err).Error("error creating NATS subscriptions")
		return
	}

	// This next line blocks until SIGINT or SIGTERM is received.
	<-done

	gracefulShutdown(httpServer, natsConn, &gracefulCloseWG, cancel)
}
