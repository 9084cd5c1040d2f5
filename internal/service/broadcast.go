package service

// Event types pushed to viewers.
const (
	EventGameUpdated = "game_updated"
	EventGameReset   = "game_reset"
	EventPlayAdded   = "play_added"
	EventPlayDeleted = "play_deleted"
)

// Broadcaster sends real-time events to connected viewers.
// Implemented by the WebSocket hub. A gameID of 0 addresses whichever game
// is active.
type Broadcaster interface {
	BroadcastGameEvent(gameID int64, eventType string, data any)
}

// NoopBroadcaster is a no-op implementation for testing or when WS is disabled.
type NoopBroadcaster struct{}

func (NoopBroadcaster) BroadcastGameEvent(int64, string, any) {}
