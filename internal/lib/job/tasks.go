package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/villains-api/internal/model"
)

const (
	// TaskVillainCreated fires once per successful insert.
	TaskVillainCreated = "villain:created"
)

// VillainCreatedPayload is the JSON body stored in Redis for
// TaskVillainCreated.
type VillainCreatedPayload struct {
	Name  string `json:"name"`
	Movie string `json:"movie"`
	Slug  string `json:"slug"`
}

func (p VillainCreatedPayload) Villain() model.Villain {
	return model.Villain{Name: p.Name, Movie: p.Movie, Slug: p.Slug}
}

// NewVillainCreatedTask builds the task on the low queue with a bounded
// retry count; notifications are not worth starving other work for.
func NewVillainCreatedTask(v model.Villain) (*asynq.Task, error) {
	payload, err := json.Marshal(VillainCreatedPayload{
		Name:  v.Name,
		Movie: v.Movie,
		Slug:  v.Slug,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskVillainCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
