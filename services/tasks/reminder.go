package tasks

import (
	"context"
	"encoding/json"
	"time"

	"slotwise/config"
	"slotwise/models"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "booking:reminder"

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// ReminderScheduler enqueues booking reminders for later delivery.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

// AsynqScheduler schedules reminders on the Redis-backed asynq queue.
type AsynqScheduler struct {
	client *asynq.Client
}

func NewAsynqScheduler() *AsynqScheduler {
	return &AsynqScheduler{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderQueueDB,
		}),
	}
}

func (s *AsynqScheduler) ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task, opts...)
	return err
}

func (s *AsynqScheduler) Close() error {
	return s.client.Close()
}
