package types

// Status is a type for the lifecycle status of a stored resource.
// Deleted resources are excluded from queries but kept in the snapshot.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
