// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"taskcal/internal/domain"
	"taskcal/internal/domain/models"
	"taskcal/internal/handlers"
	"taskcal/internal/infrastructure/messaging"
	"taskcal/internal/infrastructure/store"
	"taskcal/internal/logging"
)

const (
	// natsConnectTimeout is how long to wait for the initial NATS connection.
	natsConnectTimeout = 10 * time.Second

	// natsShutdownTimeout bounds the NATS drain during graceful shutdown.
	natsShutdownTimeout = 25 * time.Second

	// httpShutdownTimeout bounds the HTTP server drain during graceful shutdown.
	httpShutdownTimeout = 25 * time.Second
)

// setupNATS connects to the NATS server. The connection's closed handler
// participates in graceful shutdown via the wait group and done channel.
func setupNATS(ctx context.Context, env environment, gracefulCloseWG *sync.WaitGroup, done chan os.Signal) (*nats.Conn, error) {
	slog.DebugContext(ctx, "connecting to NATS", "nats_url", env.NatsURL)

	gracefulCloseWG.Add(1)
	natsConn, err := nats.Connect(
		env.NatsURL,
		nats.Name("taskcal-api"),
		nats.Timeout(natsConnectTimeout),
		nats.DrainTimeout(natsShutdownTimeout),
		nats.ConnectHandler(func(_ *nats.Conn) {
			slog.InfoContext(ctx, "connected to NATS server", "nats_url", env.NatsURL)
		}),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.ErrorContext(ctx, "async NATS error", logging.ErrKey, err, "subject", s.Subject, "queue", s.Queue)
				return
			}
			slog.ErrorContext(ctx, "async NATS error outside subscription", logging.ErrKey, err)
		}),
		nats.ClosedHandler(func(conn *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed", logging.ErrKey, conn.LastError())
			gracefulCloseWG.Done()
			// If the connection dropped outside of shutdown, exit the process.
			select {
			case done <- os.Interrupt:
			default:
			}
		}),
	)
	if err != nil {
		gracefulCloseWG.Done()
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", env.NatsURL, err)
	}

	return natsConn, nil
}

// repositories are the key-value backed stores used by the services.
type repositories struct {
	Item  *store.NatsItemRepository
	Label *store.NatsLabelRepository
}

// getKeyValueStores creates or binds the JetStream key-value buckets for the
// service and wraps them in repositories.
func getKeyValueStores(ctx context.Context, natsConn *nats.Conn) (*repositories, error) {
	js, err := jetstream.New(natsConn)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	itemsKV, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: store.KVStoreNameItems,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to bind key-value bucket %s: %w", store.KVStoreNameItems, err)
	}

	labelsKV, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket: store.KVStoreNameLabels,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to bind key-value bucket %s: %w", store.KVStoreNameLabels, err)
	}

	return &repositories{
		Item:  store.NewNatsItemRepository(itemsKV),
		Label: store.NewNatsLabelRepository(labelsKV),
	}, nil
}

// createNatsSubscriptions subscribes the handlers to the service's queue
// subjects. Each message is handled on its own goroutine.
func createNatsSubscriptions(ctx context.Context, itemHandler *handlers.ItemHandler, labelHandler *handlers.LabelHandler, natsConn *nats.Conn) error {
	subscriptions := map[string]domain.MessageHandler{
		models.ItemGetTitleSubject:         itemHandler,
		models.ItemGetRRuleSubject:         itemHandler,
		models.ItemsOnDaySubject:           itemHandler,
		models.AssistantCreateTaskSubject:  itemHandler,
		models.AssistantCreateEventSubject: itemHandler,
		models.LabelGetNameSubject:         labelHandler,
	}

	for subject, handler := range subscriptions {
		handleMessage := handler.HandleMessage
		_, err := natsConn.QueueSubscribe(subject, models.TaskcalAPIQueue, func(msg *nats.Msg) {
			go handleMessage(ctx, messaging.NewNatsMessage(msg))
		})
		if err != nil {
			return fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
		}
		slog.DebugContext(ctx, "subscribed to NATS subject", "subject", subject, "queue", models.TaskcalAPIQueue)
	}

	return nil
}

// gracefulShutdown drains the HTTP server and the NATS connection, then waits
// for the closed handlers to complete.
func gracefulShutdown(httpServer *http.Server, natsConn *nats.Conn, gracefulCloseWG *sync.WaitGroup, cancel context.CancelFunc) {
	slog.Info("shutting down taskcal service")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.With(logging.ErrKey, err).Error("error shutting down http server")
	}
	gracefulCloseWG.Done()

	if natsConn != nil && !natsConn.IsClosed() {
		if err := natsConn.Drain(); err != nil {
			slog.With(logging.ErrKey, err).Error("error draining NATS connection")
		}
	}

	// Wait for the NATS closed handler and other shutdown tasks.
	waitDone := make(chan struct{})
	go func() {
		gracefulCloseWG.Wait()
		close(waitDone)
	}()
	select {
	case <-waitDone:
		slog.Info("taskcal service shut down cleanly")
	case <-time.After(natsShutdownTimeout):
		slog.Error("timed out waiting for graceful shutdown")
	}
}
