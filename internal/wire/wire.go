// Package wire provides dependency injection for the fieldops application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/example/fieldops/internal/adapters/notify"
	"github.com/example/fieldops/internal/adapters/sqlite"
	"github.com/example/fieldops/internal/app"
	"github.com/example/fieldops/internal/config"
	"github.com/example/fieldops/internal/db"
	"github.com/example/fieldops/internal/ports/primary"
)

var (
	jobService          primary.JobService
	userService         primary.UserService
	propertyService     primary.PropertyService
	notificationService primary.NotificationService
	availabilityService primary.AvailabilityService
	invoiceService      primary.InvoiceService
	messageService      primary.MessageService
	once                sync.Once
)

// JobService returns the singleton JobService instance.
func JobService() primary.JobService {
	once.Do(initServices)
	return jobService
}

// UserService returns the singleton UserService instance.
func UserService() primary.UserService {
	once.Do(initServices)
	return userService
}

// PropertyService returns the singleton PropertyService instance.
func PropertyService() primary.PropertyService {
	once.Do(initServices)
	return propertyService
}

// NotificationService returns the singleton NotificationService instance.
func NotificationService() primary.NotificationService {
	once.Do(initServices)
	return notificationService
}

// AvailabilityService returns the singleton AvailabilityService instance.
func AvailabilityService() primary.AvailabilityService {
	once.Do(initServices)
	return availabilityService
}

// InvoiceService returns the singleton InvoiceService instance.
func InvoiceService() primary.InvoiceService {
	once.Do(initServices)
	return invoiceService
}

// MessageService returns the singleton MessageService instance.
func MessageService() primary.MessageService {
	once.Do(initServices)
	return messageService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	logger := newLogger()

	// Get database connection
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	jobRepo := sqlite.NewJobRepository(database)
	logRepo := sqlite.NewAssignmentLogRepository(database)
	userRepo := sqlite.NewUserRepository(database)
	propertyRepo := sqlite.NewPropertyRepository(database)
	notificationRepo := sqlite.NewNotificationRepository(database)
	availabilityRepo := sqlite.NewAvailabilityRepository(database)
	invoiceRepo := sqlite.NewInvoiceRepository(database)
	messageRepo := sqlite.NewMessageRepository(database)

	notifier := notify.NewDispatcher(notificationRepo, logger)

	// Create services (primary ports implementation)
	jobService = app.NewJobService(jobRepo, logRepo, userRepo, propertyRepo, availabilityRepo, notifier, logger)
	userService = app.NewUserService(userRepo, logger)
	propertyService = app.NewPropertyService(propertyRepo, logger)
	notificationService = app.NewNotificationService(notificationRepo, logger)
	availabilityService = app.NewAvailabilityService(availabilityRepo, userRepo, logger)
	invoiceService = app.NewInvoiceService(invoiceRepo, userRepo, logger)
	messageService = app.NewMessageService(messageRepo, jobRepo, logger)
}

// newLogger builds the process logger. Level defaults to warn so command
// output stays clean; log_level from .fieldops/config.json raises or lowers
// it, and FIELDOPS_LOG overrides both.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	name := os.Getenv("FIELDOPS_LOG")
	if name == "" {
		if cfg, err := config.LoadConfig("."); err == nil {
			name = cfg.LogLevel
		}
	}
	if name != "" {
		if parsed, err := zerolog.ParseLevel(name); err == nil {
			level = parsed
		}
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
