package shared

const (
	// Task types
	TypeProcessPostImage = "post:process_image"

	// Queues
	QueueImages = "images"
)

// ProcessPostImagePayload is the body of a post:process_image task
type ProcessPostImagePayload struct {
	PostID int64 `json:"post_id"`
}
