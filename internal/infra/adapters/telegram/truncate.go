package telegram

// maxMessageLen stays under Telegram's 4096-char message cap with room for
// the ellipsis marker.
const maxMessageLen = 4000

// Truncate cuts text to the transport maximum, appending an ellipsis when
// anything was dropped. Rune-safe.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= maxMessageLen {
		return text
	}
	return string(runes[:maxMessageLen]) + "…"
}
