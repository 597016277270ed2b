package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/placement-engine/internal/config"
	"github.com/segyhp/placement-engine/internal/logger"
	"github.com/segyhp/placement-engine/internal/notify"
	"github.com/segyhp/placement-engine/internal/repository"
	"github.com/segyhp/placement-engine/internal/service"

	"github.com/bsm/redislock"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const reminderLockKey = "lock:scheduler:upcoming-reminders"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logg := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	logg.Info("Starting placement scheduler...")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		logg.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.GetConnMaxLifetime())

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	sender, closeSender, err := notify.NewSenderFromConfig(context.Background(), cfg.Notifier, repository.NewNotificationRepository(db), logg)
	if err != nil {
		logg.Fatalf("Failed to initialize notifier: %v", err)
	}
	defer closeSender()

	reminders := service.NewReminderService(
		repository.NewContractRepository(db),
		repository.NewRedisCache(redisClient),
		notify.NewDispatcher(sender, logg),
		cfg.Scheduler.WindowDays,
		logg,
	)
	locker := redislock.New(redisClient)

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.GetLocation()))

	// Schedule tasks
	if err := setupCronJobs(c, cfg, reminders, locker, logg); err != nil {
		logg.Fatalf("Failed to schedule jobs: %v", err)
	}

	// Start the scheduler
	c.Start()
	logg.Info("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	logg.Info("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, reminders *service.ReminderService, locker *redislock.Client, logg *logrus.Logger) error {
	location := cfg.GetLocation()
	lockTTL := cfg.GetLockTTL()

	// Daily job to remind investors of upcoming installments
	_, err := c.AddFunc(cfg.Scheduler.ReminderCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), lockTTL)
		defer cancel()

		sendUpcomingReminders(ctx, reminders, locker, lockTTL, time.Now().In(location), logg)
	})
	if err != nil {
		return err
	}

	logg.WithField("cron", cfg.Scheduler.ReminderCron).Info("Cron jobs scheduled successfully")
	return nil
}

// sendUpcomingReminders runs the reminder job on at most one scheduler instance.
func sendUpcomingReminders(ctx context.Context, reminders *service.ReminderService, locker *redislock.Client, ttl time.Duration, now time.Time, logg *logrus.Logger) {
	lock, err := locker.Obtain(ctx, reminderLockKey, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		logg.Info("Reminder job already running on another instance")
		return
	} else if err != nil {
		logger.LogError(logg, "scheduler", "sendUpcomingReminders", nil, err)
		return
	}
	defer func() {
		_ = lock.Release(context.Background())
	}()

	logg.Info("Running upcoming installment reminder job...")
	sent, err := reminders.SendUpcomingReminders(ctx, now)
	if err != nil {
		logger.LogError(logg, "scheduler", "sendUpcomingReminders", nil, err)
		return
	}
	logg.WithField("sent", sent).Info("Reminder job finished")
}
