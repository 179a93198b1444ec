package models

// Tag represents a tag record from the image-board API. Supports exact and
// wildcard (%pattern%) search through the tag endpoint.
type Tag struct {
	// ID is the upstream tag identifier.
	ID FlexInt64 `json:"id"`

	// Name is the tag text attached to posts.
	Name FlexString `json:"name"`

	// Count is the number of posts carrying this tag.
	Count FlexInt64 `json:"count"`

	// Type is the upstream tag category code.
	Type FlexInt64 `json:"type"`

	// Ambiguous marks tags the upstream considers ambiguous.
	Ambiguous FlexString `json:"ambiguous"`
}
