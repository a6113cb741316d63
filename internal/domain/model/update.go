package model

// Update is one inbound item from the messaging transport. UpdateID drives
// cursor advancement even when the rest of the update is unusable.
type Update struct {
	UpdateID int64
	ChatID   string // empty when the transport gave no chat, update is skipped
	Text     string
}

// Dispatchable reports whether the update carries enough payload to be
// handed to the command dispatcher.
func (u Update) Dispatchable() bool {
	return u.ChatID != "" && u.Text != ""
}
