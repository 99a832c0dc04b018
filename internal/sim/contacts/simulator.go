package contacts

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"mimic/internal/api"
	"mimic/internal/sim/validate"
	"mimic/internal/store"
)

// Simulator implements a Google Contacts style address book over three
// in-memory collections.
type Simulator struct {
	store *store.Store[State]
}

func New() *Simulator {
	return &Simulator{store: store.New(seedState)}
}

func (s *Simulator) Name() string { return "contacts" }

func (s *Simulator) SaveState(path string) error { return s.store.SaveState(path) }
func (s *Simulator) LoadState(path string) error { return s.store.LoadState(path) }
func (s *Simulator) ResetState()                 { s.store.Reset() }

func (s *Simulator) WatchState(ctx context.Context, path string) error {
	return s.store.Watch(ctx, path)
}

// Store exposes the underlying state container. The messages simulator
// resolves recipients against it; everything else should go through the
// tool surface.
func (s *Simulator) Store() *store.Store[State] { return s.store }

// sortedContacts returns the collection's contacts ordered by resource
// name so listings are deterministic.
func sortedContacts(collection map[string]*Contact) []*Contact {
	out := make([]*Contact, 0, len(collection))
	for _, c := range collection {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ResourceName < out[j].ResourceName })
	return out
}

// matchesQuery reports whether the contact matches a case-insensitive
// substring query over names, emails, phone numbers, notes, and
// organizations.
func matchesQuery(c *Contact, query string) bool {
	q := strings.ToLower(query)
	contains := func(s string) bool { return strings.Contains(strings.ToLower(s), q) }

	for _, n := range c.Names {
		if contains(n.GivenName) || contains(n.FamilyName) || contains(strings.TrimSpace(n.GivenName+" "+n.FamilyName)) {
			return true
		}
	}
	for _, e := range c.EmailAddresses {
		if contains(e.Value) {
			return true
		}
	}
	for _, p := range c.PhoneNumbers {
		if contains(p.Value) {
			return true
		}
	}
	if c.Notes != "" && contains(c.Notes) {
		return true
	}
	for _, o := range c.Organizations {
		if contains(o.Name) || contains(o.Title) {
			return true
		}
	}
	return false
}

// searchCollection filters a collection by query. An empty query lists
// everything, capped at max.
func searchCollection(collection map[string]*Contact, query string, max int) []*Contact {
	out := []*Contact{}
	for _, c := range sortedContacts(collection) {
		if len(out) >= max {
			break
		}
		if query == "" || matchesQuery(c, query) {
			out = append(out, c)
		}
	}
	return out
}

func findByID(st *State, resourceName string) *Contact {
	for _, collection := range []map[string]*Contact{st.MyContacts, st.OtherContacts, st.Directory} {
		if c, ok := collection[resourceName]; ok {
			return c
		}
	}
	return nil
}

func findByEmail(st *State, email string) *Contact {
	lower := strings.ToLower(email)
	for _, collection := range []map[string]*Contact{st.MyContacts, st.OtherContacts, st.Directory} {
		for _, c := range sortedContacts(collection) {
			for _, e := range c.EmailAddresses {
				if strings.ToLower(e.Value) == lower {
					return c
				}
			}
		}
	}
	return nil
}

func newResourceName() string {
	return "people/c" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

func newEtag() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// listContacts lists myContacts, optionally filtered by name.
func (s *Simulator) listContacts(nameFilter string, maxResults int) (interface{}, error) {
	var found []*Contact
	err := s.store.View(func(st *State) error {
		found = searchCollection(st.MyContacts, nameFilter, maxResults)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"contacts": found}, nil
}

// getContact fetches one contact by resource name or email address.
func (s *Simulator) getContact(identifier string) (interface{}, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, api.NewFieldValidationError("identifier", "must be a non-empty string")
	}

	var found *Contact
	err := s.store.View(func(st *State) error {
		if strings.Contains(identifier, "@") {
			if err := validate.Email("identifier", identifier); err != nil {
				return err
			}
			found = findByEmail(st, identifier)
		} else {
			found = findByID(st, identifier)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, api.NewNotFoundErrorf("no contact found for identifier: %s", identifier)
	}
	return found, nil
}

// createContact adds a new contact to myContacts. given_name is required
// and at least one of email/phone must be provided; the created record
// carries the derived whatsapp and phone sub-documents.
func (s *Simulator) createContact(givenName, familyName, email, phone string) (interface{}, error) {
	givenName, err := validate.SanitizeName("given_name", givenName)
	if err != nil {
		return nil, err
	}

	if email == "" && phone == "" {
		return nil, api.NewFieldValidationError("email", "at least one contact method (email or phone) must be provided")
	}
	if email != "" {
		if err := validate.Email("email", email); err != nil {
			return nil, err
		}
	}

	var normalizedPhone string
	if phone != "" {
		normalized, ok := validate.NormalizePhone(phone)
		if !ok {
			return nil, api.NewFieldValidationError("phone", "the phone number %q is not valid", phone)
		}
		normalizedPhone = normalized
	}

	var created *Contact
	err = s.store.Update(func(st *State) error {
		if email != "" && findByEmail(st, email) != nil {
			return api.NewDuplicateErrorf("a contact with the email %q already exists", email)
		}

		resourceName := newResourceName()
		c := &Contact{
			ResourceName:  resourceName,
			Etag:          newEtag(),
			Names:         []Name{{GivenName: givenName}},
			Organizations: []Organization{},
		}
		if familyName != "" {
			sanitized, err := validate.SanitizeName("family_name", familyName)
			if err != nil {
				return err
			}
			c.Names[0].FamilyName = sanitized
		}
		if email != "" {
			c.EmailAddresses = []EmailAddress{{Value: email, Type: "home", Primary: true}}
		}
		if normalizedPhone != "" {
			c.PhoneNumbers = []PhoneNumber{{Value: normalizedPhone, Type: "mobile", Primary: true}}
		}

		fullName := c.DisplayName()

		wa := &WhatsApp{
			NameInAddressBook: fullName,
			ProfileName:       fullName,
			IsWhatsAppUser:    normalizedPhone != "",
		}
		if normalizedPhone != "" {
			wa.JID = strings.TrimPrefix(normalizedPhone, "+") + "@s.whatsapp.net"
			wa.PhoneNumber = strPtr(normalizedPhone)
		} else if email != "" {
			domain := email[strings.Index(email, "@")+1:]
			wa.JID = "contact_" + newEtag()[:8] + "@" + domain
		} else {
			namePart := strings.ReplaceAll(strings.ToLower(givenName), " ", "")
			wa.JID = namePart + "_" + newEtag()[:8] + "@s.whatsapp.net"
		}
		c.WhatsApp = wa

		pi := &PhoneInfo{
			ContactID:        resourceName,
			ContactName:      fullName,
			RecipientType:    "CONTACT",
			ContactEndpoints: []ContactEndpoint{},
		}
		if normalizedPhone != "" {
			pi.ContactEndpoints = []ContactEndpoint{
				{EndpointType: "PHONE_NUMBER", EndpointValue: normalizedPhone, EndpointLabel: "mobile"},
			}
		}
		c.Phone = pi

		st.MyContacts[resourceName] = c
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"status":  "success",
		"message": "Contact '" + givenName + "' created successfully.",
		"contact": created,
	}, nil
}

// updateContact patches a myContacts entry; any actual change rotates the
// etag.
func (s *Simulator) updateContact(resourceName string, givenName, familyName, email, phone *string) (interface{}, error) {
	if resourceName == "" {
		return nil, api.NewFieldValidationError("resource_name", "must be a non-empty string")
	}
	if givenName == nil && familyName == nil && email == nil && phone == nil {
		return nil, api.NewFieldValidationError("resource_name",
			"at least one field (given_name, family_name, email, phone) must be provided for the update")
	}
	if email != nil {
		if err := validate.Email("email", *email); err != nil {
			return nil, err
		}
	}

	var normalizedPhone string
	if phone != nil {
		normalized, ok := validate.NormalizePhone(*phone)
		if !ok {
			return nil, api.NewFieldValidationError("phone", "the phone number %q is not valid", *phone)
		}
		normalizedPhone = normalized
	}

	var updated *Contact
	err := s.store.Update(func(st *State) error {
		contact := findByID(st, resourceName)
		if contact == nil {
			return api.NewNotFoundErrorf("contact with resource name %q not found", resourceName)
		}

		changed := false

		if givenName != nil || familyName != nil {
			if len(contact.Names) == 0 {
				contact.Names = []Name{{}}
			}
			if givenName != nil && contact.Names[0].GivenName != *givenName {
				contact.Names[0].GivenName = *givenName
				changed = true
			}
			if familyName != nil && contact.Names[0].FamilyName != *familyName {
				contact.Names[0].FamilyName = *familyName
				changed = true
			}
		}

		if email != nil {
			if len(contact.EmailAddresses) == 0 {
				contact.EmailAddresses = []EmailAddress{{Value: *email, Type: "other", Primary: true}}
				changed = true
			} else {
				target := &contact.EmailAddresses[0]
				for i := range contact.EmailAddresses {
					if contact.EmailAddresses[i].Primary {
						target = &contact.EmailAddresses[i]
						break
					}
				}
				if target.Value != *email {
					target.Value = *email
					changed = true
				}
			}
		}

		if phone != nil {
			if len(contact.PhoneNumbers) == 0 {
				contact.PhoneNumbers = []PhoneNumber{{Value: normalizedPhone, Type: "mobile", Primary: true}}
				changed = true
			} else {
				target := &contact.PhoneNumbers[0]
				for i := range contact.PhoneNumbers {
					if contact.PhoneNumbers[i].Primary {
						target = &contact.PhoneNumbers[i]
						break
					}
				}
				if target.Value != normalizedPhone {
					target.Value = normalizedPhone
					changed = true
				}
			}
		}

		if changed {
			contact.Etag = newEtag()
		}
		updated = contact
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// deleteContact removes a contact. Only myContacts entries can be
// deleted; directory and otherContacts records are read-only.
func (s *Simulator) deleteContact(resourceName string) (interface{}, error) {
	if strings.TrimSpace(resourceName) == "" {
		return nil, api.NewFieldValidationError("resource_name", "must be a non-empty string")
	}

	err := s.store.Update(func(st *State) error {
		if _, ok := st.MyContacts[resourceName]; !ok {
			return api.NewNotFoundErrorf("contact with resource name %q not found", resourceName)
		}
		delete(st.MyContacts, resourceName)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"status":  "success",
		"message": "Contact '" + resourceName + "' was deleted successfully.",
	}, nil
}

// searchContacts searches all three collections, de-duplicating by
// resource name.
func (s *Simulator) searchContacts(query string, maxResults int) (interface{}, error) {
	results := []*Contact{}
	seen := map[string]bool{}
	err := s.store.View(func(st *State) error {
		for _, collection := range []map[string]*Contact{st.MyContacts, st.OtherContacts, st.Directory} {
			for _, c := range searchCollection(collection, query, maxResults) {
				if len(results) >= maxResults {
					return nil
				}
				if !seen[c.ResourceName] {
					seen[c.ResourceName] = true
					results = append(results, c)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"results": results}, nil
}

// listWorkspaceUsers lists directory entries flagged as workspace users.
func (s *Simulator) listWorkspaceUsers(query string, maxResults int) (interface{}, error) {
	users := []*Contact{}
	err := s.store.View(func(st *State) error {
		for _, c := range searchCollection(st.Directory, query, maxResults) {
			if c.IsWorkspaceUser != nil && *c.IsWorkspaceUser {
				users = append(users, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"users": users}, nil
}

// searchDirectory searches the full directory collection.
func (s *Simulator) searchDirectory(query string, maxResults int) (interface{}, error) {
	if strings.TrimSpace(query) == "" {
		return nil, api.NewFieldValidationError("query", "must be a non-empty string")
	}
	results := []*Contact{}
	err := s.store.View(func(st *State) error {
		results = searchCollection(st.Directory, query, maxResults)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// getOtherContacts lists the otherContacts collection.
func (s *Simulator) getOtherContacts(maxResults int) (interface{}, error) {
	results := []*Contact{}
	err := s.store.View(func(st *State) error {
		results = searchCollection(st.OtherContacts, "", maxResults)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
