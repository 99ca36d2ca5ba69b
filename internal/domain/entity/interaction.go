package entity

import "time"

// Channel is the surface through which a demo action was triggered.
type Channel string

const (
	// ChannelAPI marks interactions from the HTTP query endpoint.
	ChannelAPI Channel = "API"
	// ChannelCLI marks interactions from the command endpoint.
	ChannelCLI Channel = "CLI"
)

// Interaction is an append-only audit record of a demo action.
type Interaction struct {
	ID        int64
	UserID    int64
	Channel   Channel
	Content   string
	CreatedAt time.Time
}
