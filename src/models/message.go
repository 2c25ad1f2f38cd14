package models

import "time"

// AdminSentinel is the reserved user_message value that marks an event as
// admin-authored. The admin's text travels in the bot_response slot. The
// sentinel is a legacy storage encoding; nothing above the models layer
// should compare against it directly.
const AdminSentinel = "[Admin]"

// NoMessagesPlaceholder is reported as last_message for customers with no
// user-originated messages.
const NoMessagesPlaceholder = "(no messages)"

// Sender identifies the speaking role of a display line
type Sender string

const (
	// SenderUser is a message typed by the customer
	SenderUser Sender = "user"
	// SenderBot is an automated reply
	SenderBot Sender = "bot"
	// SenderAdmin is a manually injected admin message
	SenderAdmin Sender = "admin"
)

// MessageEvent is one stored entry of a customer's conversation log.
// The log is append-only and ordered by timestamp; ordering among equal
// timestamps is stable by insertion. A single event may carry both a user
// message and a bot response (one exchange, two display lines).
type MessageEvent struct {
	CustomerKey string    `json:"customer_key"`
	Timestamp   time.Time `json:"timestamp"`
	UserMessage string    `json:"user_message"`
	BotResponse string    `json:"bot_response"`
}

// IsAdminAuthored reports whether the event was injected by an admin
func (e *MessageEvent) IsAdminAuthored() bool {
	return e.UserMessage == AdminSentinel
}

// DisplayLine is one renderable row of a transcript
type DisplayLine struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Expand translates the flat storage encoding into role-tagged display
// lines. An event yields zero, one, or two lines:
//   - a non-sentinel user_message yields a user line
//   - a bot_response yields an admin line when user_message is the
//     sentinel, otherwise a bot line
func (e *MessageEvent) Expand() []DisplayLine {
	var lines []DisplayLine
	if e.UserMessage != "" && !e.IsAdminAuthored() {
		lines = append(lines, DisplayLine{Sender: SenderUser, Text: e.UserMessage, Timestamp: e.Timestamp})
	}
	if e.BotResponse != "" {
		sender := SenderBot
		if e.IsAdminAuthored() {
			sender = SenderAdmin
		}
		lines = append(lines, DisplayLine{Sender: sender, Text: e.BotResponse, Timestamp: e.Timestamp})
	}
	return lines
}
