package messages

import "mimic/internal/sim/contacts"

// Recipient is the contact card a message is addressed to. Endpoints
// reuse the contacts simulator's endpoint shape since that is where
// resolved recipients come from.
type Recipient struct {
	ContactID        string                     `json:"contact_id,omitempty"`
	ContactName      string                     `json:"contact_name"`
	ContactEndpoints []contacts.ContactEndpoint `json:"contact_endpoints"`
	ContactPhotoURL  string                     `json:"contact_photo_url,omitempty"`
}

// MediaAttachment is image metadata attached to an outgoing message.
type MediaAttachment struct {
	MediaID   string `json:"media_id"`
	MediaType string `json:"media_type"`
	Source    string `json:"source"`
}

// Message is a stored sent message.
type Message struct {
	ID               string            `json:"id"`
	Recipient        Recipient         `json:"recipient"`
	MessageBody      *string           `json:"message_body"`
	MediaAttachments []MediaAttachment `json:"media_attachments"`
	Timestamp        string            `json:"timestamp"`
	Status           string            `json:"status"`
}

// Observation is the uniform response envelope every messages tool
// returns.
type Observation struct {
	Status                       string  `json:"status"`
	SentMessageID                *string `json:"sent_message_id"`
	EmittedActionCount           int     `json:"emitted_action_count"`
	ActionCardContentPassthrough *string `json:"action_card_content_passthrough"`
}

// State is the messages database: sent messages plus the id counters.
type State struct {
	Messages map[string]*Message `json:"messages"`
	Counters map[string]int      `json:"counters"`
}

func seedState() *State {
	return &State{
		Messages: map[string]*Message{},
		Counters: map[string]int{},
	}
}

var validMediaSources = map[string]bool{
	"IMAGE_RETRIEVAL":  true,
	"IMAGE_GENERATION": true,
	"IMAGE_UPLOAD":     true,
	"GOOGLE_PHOTO":     true,
}
