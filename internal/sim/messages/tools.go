package messages

import (
	"context"

	"mimic/internal/api"
	"mimic/internal/sim/args"
	"mimic/internal/sim/contacts"
)

var recipientSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"contact_id":   map[string]interface{}{"type": "string", "description": "Unique identifier for the contact"},
		"contact_name": map[string]interface{}{"type": "string", "description": "The name of the contact (required)"},
		"contact_endpoints": map[string]interface{}{
			"type":        "array",
			"description": "List of endpoints for the contact",
			"items": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"endpoint_type":  map[string]interface{}{"type": "string", "description": "Must be \"PHONE_NUMBER\""},
					"endpoint_value": map[string]interface{}{"type": "string", "description": "The phone number in strict E.164 format (e.g., '+14155552671')."},
					"endpoint_label": map[string]interface{}{"type": "string", "description": "Label for the endpoint (e.g., 'mobile', 'work')"},
				},
				"required": []string{"endpoint_type", "endpoint_value"},
			},
		},
		"contact_photo_url": map[string]interface{}{"type": "string", "description": "URL to the contact's photo"},
	},
	"required": []string{"contact_name", "contact_endpoints"},
}

var recipientListSchema = map[string]interface{}{
	"type":        "array",
	"description": "List of recipient objects",
	"items":       recipientSchema,
}

var mediaAttachmentsSchema = map[string]interface{}{
	"type":        "array",
	"description": "Metadata associated with media payload. Currently only supports images.",
	"items": map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"media_id":   map[string]interface{}{"type": "string", "description": "Unique identifier of the media"},
			"media_type": map[string]interface{}{"type": "string", "description": "Type of media, defaults to \"IMAGE\""},
			"source":     map[string]interface{}{"type": "string", "description": "Source of media (IMAGE_RETRIEVAL, IMAGE_GENERATION, IMAGE_UPLOAD, or GOOGLE_PHOTO)"},
		},
		"required": []string{"media_id", "media_type", "source"},
	},
}

// GetTools describes the messages tool surface.
func (s *Simulator) GetTools() []api.ToolMetadata {
	return []api.ToolMetadata{
		{
			Name:        "send_chat_message",
			Description: "Send a message to a recipient with a single phone number via SMS/MMS. At least one of message_body or media_attachments must be provided.",
			Args: []api.ArgMetadata{
				{Name: "recipient", Type: "object", Required: true, Description: "The recipient object. Must have exactly one PHONE_NUMBER endpoint.", Schema: recipientSchema},
				{Name: "message_body", Type: "string", Description: "The text message content to send. Optional if media_attachments are provided."},
				{Name: "media_attachments", Type: "array", Description: "Image attachments to send with the message.", Schema: mediaAttachmentsSchema},
			},
		},
		{
			Name:        "prepare_chat_message",
			Description: "Prepare message cards for one or more candidate recipients without sending.",
			Args: []api.ArgMetadata{
				{Name: "message_body", Type: "string", Required: true, Description: "The text message content. Must be non-empty."},
				{Name: "recipients", Type: "array", Required: true, Description: "Candidate recipients.", Schema: recipientListSchema},
			},
		},
		{
			Name:        "show_message_recipient_choices",
			Description: "Display potential recipients in a card for user selection when the recipient is ambiguous.",
			Args: []api.ArgMetadata{
				{Name: "recipients", Type: "array", Required: true, Description: "Possible recipients to choose from.", Schema: recipientListSchema},
				{Name: "message_body", Type: "string", Description: "The message content, if already specified."},
			},
		},
		{
			Name:        "ask_for_message_body",
			Description: "Display the resolved recipient and ask the user to provide the message body.",
			Args: []api.ArgMetadata{
				{Name: "recipient", Type: "object", Required: true, Description: "The recipient shown in the card.", Schema: recipientSchema},
			},
		},
		{
			Name:        "show_message_recipient_not_found_or_specified",
			Description: "Inform the user that the message recipient was not found or not specified.",
			Args: []api.ArgMetadata{
				{Name: "contact_name", Type: "string", Description: "The recipient name that was searched for, if any."},
				{Name: "message_body", Type: "string", Description: "The message content, if already specified."},
			},
		},
	}
}

func decodeRecipient(a map[string]interface{}, key string) (*Recipient, error) {
	raw, ok, err := args.Object(a, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, api.NewFieldValidationError(key, "is required")
	}
	var r Recipient
	if err := args.Decode(key, raw, &r); err != nil {
		return nil, err
	}
	// Distinguish an absent contact_endpoints key, which validation
	// rejects, from an explicitly empty list.
	if _, present := raw["contact_endpoints"]; present && r.ContactEndpoints == nil {
		r.ContactEndpoints = []contacts.ContactEndpoint{}
	}
	return &r, nil
}

func decodeRecipients(a map[string]interface{}, key string) ([]Recipient, error) {
	rawList, ok, err := args.ObjectSlice(a, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, api.NewFieldValidationError(key, "is required")
	}
	out := make([]Recipient, 0, len(rawList))
	for i, raw := range rawList {
		var r Recipient
		if err := args.Decode(key, raw, &r); err != nil {
			return nil, err
		}
		if _, present := raw["contact_endpoints"]; !present {
			return nil, api.NewFieldValidationError(key, "recipient %d is missing contact_endpoints", i)
		}
		if r.ContactEndpoints == nil {
			r.ContactEndpoints = []contacts.ContactEndpoint{}
		}
		out = append(out, r)
	}
	return out, nil
}

// ExecuteTool dispatches a tool call to its handler.
func (s *Simulator) ExecuteTool(ctx context.Context, name string, a map[string]interface{}) (*api.CallToolResult, error) {
	obs, err := s.dispatch(name, a)
	if err != nil {
		return nil, err
	}
	return api.NewResult(obs), nil
}

func (s *Simulator) dispatch(name string, a map[string]interface{}) (*Observation, error) {
	switch name {
	case "send_chat_message":
		recipient, err := decodeRecipient(a, "recipient")
		if err != nil {
			return nil, err
		}
		var bodyPtr *string
		body, ok, err := args.String(a, "message_body")
		if err != nil {
			return nil, err
		}
		if ok {
			bodyPtr = &body
		}
		var attachments []MediaAttachment
		rawAttachments, ok, err := args.ObjectSlice(a, "media_attachments")
		if err != nil {
			return nil, err
		}
		if ok {
			if err := args.Decode("media_attachments", rawAttachments, &attachments); err != nil {
				return nil, err
			}
		}
		return s.sendChatMessage(recipient, bodyPtr, attachments)

	case "prepare_chat_message":
		body, err := args.RequiredString(a, "message_body")
		if err != nil {
			return nil, err
		}
		recipients, err := decodeRecipients(a, "recipients")
		if err != nil {
			return nil, err
		}
		return s.prepareChatMessage(body, recipients)

	case "show_message_recipient_choices":
		recipients, err := decodeRecipients(a, "recipients")
		if err != nil {
			return nil, err
		}
		if _, _, err := args.String(a, "message_body"); err != nil {
			return nil, err
		}
		return s.showRecipientChoices(recipients)

	case "ask_for_message_body":
		recipient, err := decodeRecipient(a, "recipient")
		if err != nil {
			return nil, err
		}
		return s.askForMessageBody(recipient)

	case "show_message_recipient_not_found_or_specified":
		if _, _, err := args.String(a, "contact_name"); err != nil {
			return nil, err
		}
		if _, _, err := args.String(a, "message_body"); err != nil {
			return nil, err
		}
		return s.showRecipientNotFound()

	default:
		return nil, api.NewInvalidInputError("unknown messages tool: %s", name)
	}
}
