package group

// Group is a community posts can be tagged with; addressed by its slug
type Group struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Slug        string `db:"slug" json:"slug"`
	Description string `db:"description" json:"description"`
}

// CreateGroupRequest - seed command and tests. Slug is generated from Title when empty.
type CreateGroupRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
