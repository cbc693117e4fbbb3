package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kingjj-tech/Trackporter/internal/logger"
	"github.com/kingjj-tech/Trackporter/internal/models"
	"github.com/kingjj-tech/Trackporter/internal/services"
	"github.com/kingjj-tech/Trackporter/internal/tasks"
)

const (
	pollInterval = time.Minute
	lockTTL      = 15 * time.Minute

	dailyReminderRule  = "FREQ=DAILY;BYHOUR=9;BYMINUTE=0;BYSECOND=0"
	monthlySummaryRule = "FREQ=MONTHLY;BYMONTHDAY=1;BYHOUR=10;BYMINUTE=0;BYSECOND=0"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment")
	}

	logger.Setup()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		logrus.Fatal("DATABASE_URL not set")
	}
	db, err := services.InitDB(databaseURL)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		logrus.Fatalf("Failed to run database migrations: %v", err)
	}

	// The Redis lock keeps overlapping runs of the same job from racing
	// when a run outlives the poll interval or multiple workers run.
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			logrus.WithError(err).Warn("Redis initialization failed, running without the run lock")
			cache = nil
		}
	}

	tasks.DefineTasks()
	if err := seedReconciliationTasks(db); err != nil {
		logrus.Fatalf("Failed to seed reconciliation tasks: %v", err)
	}

	logrus.Info("Worker started. Waiting for next tick...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logrus.Info("Shutting down worker...")
		cancel()
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	// Run once on start, then on every tick.
	processScheduledTasks(ctx, db, cache)

	for {
		select {
		case <-ticker.C:
			processScheduledTasks(ctx, db, cache)
		case <-ctx.Done():
			return
		}
	}
}

// seedReconciliationTasks makes sure the two recurring reconciliation jobs
// exist: the daily overdue reminder and the month-end summary.
func seedReconciliationTasks(db *gorm.DB) error {
	now := time.Now()
	seeds := []struct {
		taskID string
		rule   string
		due    time.Time
	}{
		{tasks.PaymentReminderTask.TaskID(), dailyReminderRule, nextDaily(now, 9)},
		{tasks.MonthlySummaryTask.TaskID(), monthlySummaryRule, nextMonthly(now, 1, 10)},
	}

	for _, seed := range seeds {
		var existing models.ScheduledTask
		err := db.Where("task_name = ? AND status = ?", seed.taskID, models.ScheduledTaskStatusActive).
			First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		rule := seed.rule
		task, err := tasks.BuildScheduledTask(seed.taskID, map[string]interface{}{}, seed.due, &rule, models.ScheduledTaskTypeRecurring, 1)
		if err != nil {
			return err
		}
		if err := db.Create(task).Error; err != nil {
			return err
		}
		logrus.Infof("Seeded recurring task %s, first due %s", seed.taskID, seed.due)
	}
	return nil
}

func nextDaily(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func nextMonthly(now time.Time, day, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), day, hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 1, 0)
	}
	return next
}

func processScheduledTasks(ctx context.Context, db *gorm.DB, cache *services.RedisCache) {
	var pendingTasks []models.ScheduledTask
	now := time.Now()
	err := db.Where("status = ? AND due <= ?", models.ScheduledTaskStatusActive, now).
		Find(&pendingTasks).Error
	if err != nil {
		logrus.WithError(err).Error("Error fetching pending tasks")
		return
	}

	if len(pendingTasks) == 0 {
		return
	}

	logrus.Infof("Found %d pending tasks", len(pendingTasks))

	for _, task := range pendingTasks {
		if ctx.Err() != nil {
			return
		}

		if !acquireRunLock(ctx, cache, task.TaskName) {
			logrus.Infof("Task %s already running elsewhere, skipping", task.TaskName)
			continue
		}
		executeTask(ctx, db, task, 1)
		releaseRunLock(ctx, cache, task.TaskName)
	}
}

func acquireRunLock(ctx context.Context, cache *services.RedisCache, taskName string) bool {
	if cache == nil {
		return true
	}
	locked, err := cache.SetNX(ctx, services.TaskLockKey(taskName), time.Now().Unix(), lockTTL)
	if err != nil {
		logrus.WithError(err).Warn("run lock check failed, proceeding without it")
		return true
	}
	return locked
}

func releaseRunLock(ctx context.Context, cache *services.RedisCache, taskName string) {
	if cache == nil {
		return
	}
	if err := cache.Delete(ctx, services.TaskLockKey(taskName)); err != nil {
		logrus.WithError(err).Warn("failed to release run lock")
	}
}

func executeTask(ctx context.Context, db *gorm.DB, task models.ScheduledTask, curAttempt int) {
	logrus.Infof("Processing task: %s (ID: %d, attempt %d)", task.TaskName, task.ID, curAttempt)

	handler, found := tasks.GetHandler(task.TaskName)
	if !found {
		logrus.Errorf("Task handler not found for: %s. Marking as failure.", task.TaskName)

		now := time.Now()
		db.Model(&task).Updates(map[string]interface{}{
			"status":   models.ScheduledTaskStatusFailure,
			"last_run": &now,
		})

		history := models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			TaskName:        task.TaskName,
			RunAt:           now,
			Status:          "handler_not_found",
			AttemptNumber:   curAttempt,
			Arguments:       task.Arguments,
			Result:          map[string]interface{}{"error": "Handler not found"},
		}
		db.Create(&history)
		return
	}

	startTime := time.Now()
	result, err := handler(ctx, db, task)
	runtimeMs := int(time.Since(startTime).Milliseconds())

	status := "success"
	var resultData map[string]interface{}
	if err != nil {
		status = "failure"
		resultData = map[string]interface{}{"error": err.Error()}
		logrus.WithError(err).Errorf("Task %s failed", task.TaskName)
	} else {
		resultData = result
		logrus.Infof("Task %s completed successfully", task.TaskName)
	}

	history := models.ScheduledTaskHistory{
		ScheduledTaskID: task.ID,
		TaskName:        task.TaskName,
		RunAt:           startTime,
		Runtime:         runtimeMs,
		Status:          status,
		AttemptNumber:   curAttempt,
		Arguments:       task.Arguments,
		Result:          resultData,
	}
	db.Create(&history)

	taskUpdates := map[string]interface{}{
		"last_run": &startTime,
	}

	if status != "success" {
		if curAttempt < task.MaxAttempt {
			executeTask(ctx, db, task, curAttempt+1)
			return
		}
		// Recurring tasks stay active so the next trigger still fires;
		// a failed one-time task is terminal.
		if task.TaskType == models.ScheduledTaskTypeRecurring {
			taskUpdates["due"] = task.NextDue()
		} else {
			taskUpdates["status"] = models.ScheduledTaskStatusFailure
		}
	} else {
		switch task.TaskType {
		case models.ScheduledTaskTypeOneTime:
			taskUpdates["status"] = models.ScheduledTaskStatusDone
		case models.ScheduledTaskTypeRecurring:
			nextDue := task.NextDue()
			// Only advance to a future occurrence, otherwise the task
			// would be re-executed on every tick.
			if nextDue.After(task.Due) {
				taskUpdates["status"] = models.ScheduledTaskStatusActive
				taskUpdates["due"] = nextDue
			} else {
				taskUpdates["status"] = models.ScheduledTaskStatusDone
			}
		}
	}

	db.Model(&task).Updates(taskUpdates)
}
