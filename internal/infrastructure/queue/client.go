package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"yatube/internal/config"
	"yatube/internal/shared"
)

// RedisOpt is the asynq connection shared by the API (client) and the worker (server)
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Host,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}

// Enqueuer is satisfied by *asynq.Client
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// NewProcessPostImageTask builds the thumbnail job for a post
func NewProcessPostImageTask(postID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(shared.ProcessPostImagePayload{PostID: postID})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(shared.TypeProcessPostImage, payload), nil
}

// EnqueueProcessPostImage queues the thumbnail job on the images queue
func EnqueueProcessPostImage(ctx context.Context, client Enqueuer, postID int64) error {
	task, err := NewProcessPostImageTask(postID)
	if err != nil {
		return err
	}
	if _, err := client.EnqueueContext(ctx, task, asynq.Queue(shared.QueueImages), asynq.MaxRetry(2)); err != nil {
		return fmt.Errorf("enqueue %s: %w", shared.TypeProcessPostImage, err)
	}
	return nil
}
