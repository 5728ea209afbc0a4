package main

import (
	"context"

	"finicky/internal/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ResetJob wipes the game state on a schedule, e.g. at the end of an event day.
type ResetJob struct {
	serviceReset *services.ServiceReset
	logger       *zap.Logger
	schedule     string
}

func NewResetJob(serviceReset *services.ServiceReset, logger *zap.Logger, schedule string) *ResetJob {
	return &ResetJob{
		serviceReset: serviceReset,
		logger:       logger,
		schedule:     schedule,
	}
}

func (j *ResetJob) Start(cronRunner *cron.Cron) error {
	_, err := cronRunner.AddFunc(j.schedule, j.runScheduledTask)
	if err != nil {
		return err
	}

	j.logger.Info("reset cronjob scheduled", zap.String("cron", j.schedule))
	return nil
}

func (j *ResetJob) runScheduledTask() {
	j.logger.Info("start resetting game state ...")
	deleted, err := j.serviceReset.Reset(context.Background())
	if err != nil {
		j.logger.Error("reset failed", zap.Int("scorecards", deleted), zap.Error(err))
		return
	}
	j.logger.Info("game state reset by cronjob", zap.Int("scorecards", deleted))
}
