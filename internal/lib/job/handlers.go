package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/villains-api/internal/config"
	"github.com/deppfellow/villains-api/internal/lib/email"
	"github.com/deppfellow/villains-api/internal/model"
)

type villainMailer interface {
	SendVillainCreatedEmail(to string, v model.Villain) error
}

// InitHandlers builds the dependencies task handlers need. Without a
// Resend key or a recipient the handler only logs.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	client := email.NewClient(cfg, logger)
	if client.Enabled() {
		j.mailer = client
	}
	j.notifyEmail = cfg.Integration.NotifyEmail
}

func (j *JobService) handleVillainCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p VillainCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying a malformed payload cannot succeed.
		return fmt.Errorf("unmarshal %s payload: %v: %w", TaskVillainCreated, err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskVillainCreated).
		Str("slug", p.Slug).
		Logger()

	if j.mailer == nil || j.notifyEmail == "" {
		log.Info().
			Str("name", p.Name).
			Str("movie", p.Movie).
			Msg("villain created, email notification disabled")
		return nil
	}

	if err := j.mailer.SendVillainCreatedEmail(j.notifyEmail, p.Villain()); err != nil {
		log.Error().Err(err).Str("to", j.notifyEmail).Msg("failed to send villain created email")
		return err
	}

	log.Info().Str("to", j.notifyEmail).Msg("sent villain created email")
	return nil
}
