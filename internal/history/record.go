package history

// Record is one persisted chat exchange. Records are append-only: nothing
// in the service ever updates or deletes them.
type Record struct {
	ID          int64  `json:"id"`
	Timestamp   string `json:"timestamp"`
	UserMessage string `json:"user_message"`
	BotReply    string `json:"bot_reply"`
}
