package cron

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"pantrypal.app/pantry-api-gateway/app/domain/category"
	"pantrypal.app/pantry-api-gateway/app/domain/notification"
	"pantrypal.app/pantry-api-gateway/app/utils/logger"
	"pantrypal.app/pantry-api-gateway/config"
	"pantrypal.app/pantry-api-gateway/config/environment_variables"
)

const (
	DefaultExpiryNotifierSchedule = "0 9 * * *"
	DefaultCategorySyncSchedule   = "0 3 * * 0"
)

type CronService struct {
	notifier   *notification.NotifierService
	categories *category.CategoryService
}

func NewCronService(notifier *notification.NotifierService, categories *category.CategoryService) *CronService {
	return &CronService{
		notifier:   notifier,
		categories: categories,
	}
}

// Start registers the jobs. Schedules are read once, a changed schedule needs
// a restart.
func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) {
	envs := environment_variables.EnvironmentVariables
	log := logger.GetLogger()

	ctab.AddJob("* * * * *", func() {
		environment_variables.EnvironmentVariables.LoadFromEnv()
		config.EnvReloadedAt = time.Now()
	})

	notifierSchedule := scheduleOrDefault(envs.EXPIRY_NOTIFIER_SCHEDULE, DefaultExpiryNotifierSchedule)
	if err := ctab.AddJob(notifierSchedule, func() { cs.RunExpiryNotifier(ctx) }); err != nil {
		log.WithField("error_code", "d3c0a1c2-3f8e-4a57-8b9f-1c0fd6e8a9b2").
			Errorf("invalid EXPIRY_NOTIFIER_SCHEDULE %q: %v", notifierSchedule, err)
	}

	syncSchedule := scheduleOrDefault(envs.CATEGORY_SYNC_SCHEDULE, DefaultCategorySyncSchedule)
	if err := ctab.AddJob(syncSchedule, func() { cs.RunCategorySync(ctx) }); err != nil {
		log.WithField("error_code", "5e2b7f0d-9a41-4f9c-a6de-2b8c4f71e063").
			Errorf("invalid CATEGORY_SYNC_SCHEDULE %q: %v", syncSchedule, err)
	}
}

func (cs *CronService) RunExpiryNotifier(ctx context.Context) {
	summary, err := cs.notifier.Notify(ctx, time.Now())
	if err != nil {
		logger.GetLogger().Errorf("expiry notifier run failed: %v", err)
		return
	}
	logger.GetLogger().Infof("expiry notifier: %d users, %d pushed, %d emailed, %d skipped, %d failed",
		summary.Users, summary.Sent, summary.Emailed, summary.Skipped, summary.Failed)
}

func (cs *CronService) RunCategorySync(ctx context.Context) {
	if !environment_variables.EnvironmentVariables.FatSecretConfigured() {
		return
	}
	result, err := cs.categories.SyncFromFatSecret(ctx)
	if err != nil {
		logger.GetLogger().Errorf("category sync failed: %v", err)
		return
	}
	logger.GetLogger().Infof("category sync: %d categories, %d subcategories", result.Categories, result.Subcategories)
}

func scheduleOrDefault(schedule string, fallback string) string {
	if schedule == "" {
		return fallback
	}
	return schedule
}
