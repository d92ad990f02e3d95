package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"yatube/internal/domains/post/model"
	postService "yatube/internal/domains/post/service"
	"yatube/internal/shared"
)

// ProcessImageHandler renders the thumbnail of a post image
type ProcessImageHandler struct {
	postService postService.ServiceInterface
}

func NewProcessImageHandler(postService postService.ServiceInterface) *ProcessImageHandler {
	return &ProcessImageHandler{
		postService: postService,
	}
}

// ProcessTask xử lý background job tạo thumbnail
func (h *ProcessImageHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessPostImagePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProcessPostImage payload")
		return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
	}

	log.Info().
		Int64("post_id", payload.PostID).
		Msg("Processing post image")

	err := h.postService.ProcessImage(ctx, payload.PostID)
	if errors.Is(err, model.ErrPostNotFound) {
		// post deleted before the job ran; nothing to retry
		log.Warn().Int64("post_id", payload.PostID).Msg("Post gone, skipping thumbnail")
		return nil
	}
	if err != nil {
		log.Error().
			Err(err).
			Int64("post_id", payload.PostID).
			Msg("Failed to process image")
		return fmt.Errorf("process image: %w", err)
	}

	log.Info().
		Int64("post_id", payload.PostID).
		Msg("Post thumbnail stored")

	return nil
}
