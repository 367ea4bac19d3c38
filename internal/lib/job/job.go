// Package job runs background work on asynq, a Redis-backed task queue.
//
// The API process is both producer (EnqueueVillainCreated) and consumer
// (the worker server started by Start).
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/villains-api/internal/config"
	"github.com/deppfellow/villains-api/internal/model"
)

// enqueuer is the producing half of *asynq.Client.
type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// JobService owns the asynq client and worker server.
type JobService struct {
	client enqueuer
	server *asynq.Server
	logger *zerolog.Logger

	mailer      villainMailer
	notifyEmail string
}

const clientTimeout = 500 * time.Millisecond

// clientRedisOpt is the producer's connection. Every dial, read and write
// it makes is capped at clientTimeout.
func clientRedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:         cfg.Redis.Address,
		DialTimeout:  clientTimeout,
		ReadTimeout:  clientTimeout,
		WriteTimeout: clientTimeout,
	}
}

// NewJobService points both client and server at cfg.Redis.Address.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		Logger:   &asynqLogger{logger: logger},
		LogLevel: asynq.WarnLevel,
	})

	return &JobService{
		client: asynq.NewClient(clientRedisOpt(cfg)),
		server: server,
		logger: logger,
	}
}

// EnqueueVillainCreated schedules the villain-created notification.
func (j *JobService) EnqueueVillainCreated(ctx context.Context, v model.Villain) error {
	task, err := NewVillainCreatedTask(v)
	if err != nil {
		return fmt.Errorf("build %s task: %w", TaskVillainCreated, err)
	}

	info, err := j.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s task: %w", TaskVillainCreated, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("slug", v.Slug).
		Msg("enqueued villain created task")

	return nil
}

// Mux routes task types to handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskVillainCreated, j.handleVillainCreatedTask)
	return mux
}

// Start launches the worker goroutines and returns.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

// Stop waits for in-flight tasks and closes the client connection.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}

// asynqLogger routes asynq's internal logging through zerolog.
type asynqLogger struct {
	logger *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) {
	l.write(l.logger.Debug(), args)
}

func (l *asynqLogger) Info(args ...any) {
	l.write(l.logger.Info(), args)
}

func (l *asynqLogger) Warn(args ...any) {
	l.write(l.logger.Warn(), args)
}

func (l *asynqLogger) Error(args ...any) {
	l.write(l.logger.Error(), args)
}

func (l *asynqLogger) Fatal(args ...any) {
	l.write(l.logger.Fatal(), args)
}

func (l *asynqLogger) write(event *zerolog.Event, args []any) {
	event.Str("component", "asynq").Msg(fmt.Sprint(args...))
}
