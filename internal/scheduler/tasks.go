package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskSubscribeRelay = "newsletter.subscribe_relay"

// SubscribeRelayPayload carries a signup that failed to reach the mailing
// provider synchronously and is retried in the background.
type SubscribeRelayPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewSubscribeRelayTask(payload SubscribeRelayPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSubscribeRelay, data), nil
}

func ParseSubscribeRelayPayload(task *asynq.Task) (SubscribeRelayPayload, error) {
	var payload SubscribeRelayPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SubscribeRelayPayload{}, err
	}
	return payload, nil
}
