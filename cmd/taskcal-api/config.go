// Copyright The taskcal Authors.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"taskcal/internal/logging"
	"taskcal/internal/recurrence"
	"taskcal/pkg/utils"
)

// flags are the command line flags for the taskcal service.
type flags struct {
	Debug bool
	Port  string
	Bind  string
}

// environment are the environment variables for the taskcal service.
type environment struct {
	Port                   string
	NatsURL                string
	Calendar               recurrence.Calendar
	SkipRevisionValidation bool
}

// parseFlags parses command line flags for the taskcal service
func parseFlags(defaultPort string) flags {
	var debug = flag.Bool("d", false, "enable debug logging")
	var port = flag.String("p", defaultPort, "listen port")
	var bind = flag.String("bind", "*", "interface to bind on")

	flag.Usage = func() {
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	// Based on the debug flag, set the log level environment variable used by [logging.InitStructureLogConfig]
	if *debug {
		err := os.Setenv("LOG_LEVEL", "debug")
		if err != nil {
			slog.With(logging.ErrKey, err).Error("error setting log level")
			os.Exit(1)
		}
	}

	return flags{
		Debug: *debug,
		Port:  *port,
		Bind:  *bind,
	}
}

// parseEnv parses environment variables for the taskcal service
func parseEnv() environment {
	port := utils.CoalesceString(os.Getenv("PORT"), "8080")
	natsURL := utils.CoalesceString(os.Getenv("NATS_URL"), "nats://localhost:4222")

	skipRevisionValidation := os.Getenv("SKIP_REVISION_VALIDATION") == "true"

	return environment{
		Port:                   port,
		NatsURL:                natsURL,
		Calendar:               parseCalendarEnv(),
		SkipRevisionValidation: skipRevisionValidation,
	}
}

// parseCalendarEnv builds the service calendar from CALENDAR_FIRST_DAY and
// CALENDAR_TIMEZONE. Misconfiguration falls back to the Sunday-first local
// calendar rather than refusing to start.
func parseCalendarEnv() recurrence.Calendar {
	firstDay := recurrence.WeekdaySunday
	switch os.Getenv("CALENDAR_FIRST_DAY") {
	case "", "sunday":
	case "monday":
		firstDay = recurrence.WeekdayMonday
	default:
		slog.With("value", os.Getenv("CALENDAR_FIRST_DAY")).
			Warn("invalid CALENDAR_FIRST_DAY, using sunday")
	}

	loc := time.Local
	if tz := os.Getenv("CALENDAR_TIMEZONE"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			slog.With(logging.ErrKey, err, "timezone", tz).
				Warn("invalid CALENDAR_TIMEZONE, using local time")
		} else {
			loc = parsed
		}
	}

	return recurrence.NewCalendar(firstDay, loc)
}
