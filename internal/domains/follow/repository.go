package follow

import "context"

// Repository định nghĩa contract cho follows table
type Repository interface {
	// Follow inserts the pair if absent. created is false when it already existed.
	Follow(ctx context.Context, userID, authorID int64) (created bool, err error)

	// Unfollow deletes the pair; removing an absent pair is not an error
	Unfollow(ctx context.Context, userID, authorID int64) (removed bool, err error)

	IsFollowing(ctx context.Context, userID, authorID int64) (bool, error)
}
