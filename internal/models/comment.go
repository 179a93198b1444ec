package models

// Comment represents a comment on a post from the image-board API.
type Comment struct {
	// ID is the upstream comment identifier.
	ID FlexInt64 `json:"id"`

	// PostID is the post this comment belongs to.
	PostID FlexInt64 `json:"post_id"`

	// Creator is the display name of the comment author.
	Creator FlexString `json:"creator"`

	// Body is the comment text.
	Body FlexString `json:"body"`

	// CreatedAt is the upstream creation timestamp, passed through verbatim.
	CreatedAt FlexString `json:"created_at"`
}
