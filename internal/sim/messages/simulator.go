// Package messages simulates an SMS/MMS assistant surface: sending,
// preparing, and the clarification cards shown when a recipient is
// ambiguous or missing. Every tool returns the same observation
// envelope.
package messages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mimic/internal/api"
	"mimic/internal/sim/contacts"
	"mimic/internal/sim/validate"
	"mimic/internal/store"
)

// Simulator implements the messages tool surface. When constructed with
// a contacts simulator it resolves recipient contact ids against the
// live contacts store before sending.
type Simulator struct {
	store    *store.Store[State]
	contacts *contacts.Simulator
}

// New creates the messages simulator. contactsSim may be nil, in which
// case recipient contact ids are accepted unchecked.
func New(contactsSim *contacts.Simulator) *Simulator {
	return &Simulator{
		store:    store.New(seedState),
		contacts: contactsSim,
	}
}

func (s *Simulator) Name() string { return "messages" }

func (s *Simulator) SaveState(path string) error { return s.store.SaveState(path) }
func (s *Simulator) LoadState(path string) error { return s.store.LoadState(path) }
func (s *Simulator) ResetState()                 { s.store.Reset() }

func (s *Simulator) WatchState(ctx context.Context, path string) error {
	return s.store.Watch(ctx, path)
}

func observation(status string, sentMessageID *string, actions int) *Observation {
	return &Observation{
		Status:                       status,
		SentMessageID:                sentMessageID,
		EmittedActionCount:           actions,
		ActionCardContentPassthrough: nil,
	}
}

// validateRecipient checks the structural requirements shared by all
// recipient-taking tools: a non-empty contact_name and a present
// contact_endpoints list.
func validateRecipient(r *Recipient) error {
	if strings.TrimSpace(r.ContactName) == "" {
		return api.NewFieldValidationError("recipient", "contact_name is required")
	}
	if r.ContactEndpoints == nil {
		return api.NewFieldValidationError("recipient", "contact_endpoints is required")
	}
	return nil
}

// validateSendableRecipient additionally requires exactly one strict
// E.164 PHONE_NUMBER endpoint, the precondition for actually sending.
func validateSendableRecipient(r *Recipient) error {
	if err := validateRecipient(r); err != nil {
		return err
	}
	if len(r.ContactEndpoints) != 1 {
		return api.NewInvalidInputError(
			"recipient must have exactly one endpoint for sending messages, but has %d endpoints",
			len(r.ContactEndpoints))
	}
	ep := r.ContactEndpoints[0]
	if ep.EndpointType != "PHONE_NUMBER" {
		return api.NewFieldValidationError("recipient", "endpoint_type must be PHONE_NUMBER, got %q", ep.EndpointType)
	}
	if !validate.StrictE164(ep.EndpointValue) {
		return api.NewFieldValidationError("recipient",
			"endpoint_value %q is not a valid E.164 phone number", ep.EndpointValue)
	}
	return nil
}

func validateAttachments(attachments []MediaAttachment) error {
	for i, att := range attachments {
		if att.MediaID == "" {
			return api.NewFieldValidationError("media_attachments", "attachment %d is missing media_id", i)
		}
		if att.MediaType == "" {
			return api.NewFieldValidationError("media_attachments", "attachment %d is missing media_type", i)
		}
		if !validMediaSources[att.Source] {
			return api.NewFieldValidationError("media_attachments",
				"attachment %d has invalid source %q", i, att.Source)
		}
	}
	return nil
}

// resolveContact checks a recipient's contact_id against the contacts
// store when one is attached. Unknown ids are rejected rather than
// silently sent into the void.
func (s *Simulator) resolveContact(r *Recipient) error {
	if s.contacts == nil || r.ContactID == "" {
		return nil
	}
	found := false
	err := s.contacts.Store().View(func(st *contacts.State) error {
		for _, collection := range []map[string]*contacts.Contact{st.MyContacts, st.OtherContacts, st.Directory} {
			if _, ok := collection[r.ContactID]; ok {
				found = true
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return api.NewNotFoundErrorf("recipient contact %q not found in contacts", r.ContactID)
	}
	return nil
}

// sendChatMessage sends an SMS/MMS to a single recipient with exactly
// one phone endpoint. At least one of body and attachments must be
// present.
func (s *Simulator) sendChatMessage(recipient *Recipient, messageBody *string, attachments []MediaAttachment) (*Observation, error) {
	if err := validateSendableRecipient(recipient); err != nil {
		return nil, err
	}
	hasBody := messageBody != nil && strings.TrimSpace(*messageBody) != ""
	if !hasBody && len(attachments) == 0 {
		return nil, api.NewInvalidInputError("at least one of message_body or media_attachments must be provided")
	}
	if err := validateAttachments(attachments); err != nil {
		return nil, err
	}
	if err := s.resolveContact(recipient); err != nil {
		return nil, err
	}

	var messageID string
	err := s.store.Update(func(st *State) error {
		messageID = fmt.Sprintf("msg_%d", store.NextCounter(st.Counters, "message"))
		if attachments == nil {
			attachments = []MediaAttachment{}
		}
		st.Messages[messageID] = &Message{
			ID:               messageID,
			Recipient:        *recipient,
			MessageBody:      messageBody,
			MediaAttachments: attachments,
			Timestamp:        time.Now().UTC().Format(time.RFC3339),
			Status:           "sent",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	obs := observation("success", &messageID, 1)
	return obs, nil
}

// prepareChatMessage validates a body and candidate recipients without
// sending anything.
func (s *Simulator) prepareChatMessage(messageBody string, recipients []Recipient) (*Observation, error) {
	if strings.TrimSpace(messageBody) == "" {
		return nil, api.NewFieldValidationError("message_body", "cannot be empty")
	}
	if len(recipients) == 0 {
		return nil, api.NewFieldValidationError("recipients", "list cannot be empty")
	}
	for i := range recipients {
		if err := validateRecipient(&recipients[i]); err != nil {
			return nil, api.NewFieldValidationError("recipients", "recipient %d: %v", i, err)
		}
	}
	return observation("prepared", nil, 0), nil
}

// showRecipientChoices displays candidate recipients for the user to
// pick from.
func (s *Simulator) showRecipientChoices(recipients []Recipient) (*Observation, error) {
	if len(recipients) == 0 {
		return nil, api.NewFieldValidationError("recipients", "list cannot be empty")
	}
	for i := range recipients {
		if err := validateRecipient(&recipients[i]); err != nil {
			return nil, api.NewFieldValidationError("recipients", "recipient %d: %v", i, err)
		}
	}
	return observation("choices_displayed", nil, 0), nil
}

// askForMessageBody shows the resolved recipient and asks the user to
// supply the body.
func (s *Simulator) askForMessageBody(recipient *Recipient) (*Observation, error) {
	if err := validateRecipient(recipient); err != nil {
		return nil, err
	}
	return observation("asking_for_message_body", nil, 0), nil
}

// showRecipientNotFound reports that no recipient could be resolved.
func (s *Simulator) showRecipientNotFound() (*Observation, error) {
	return observation("recipient_not_found", nil, 0), nil
}
