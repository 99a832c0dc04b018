package contacts

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mimic/internal/api"
)

func call(t *testing.T, s *Simulator, tool string, a map[string]interface{}) interface{} {
	t.Helper()
	result, err := s.ExecuteTool(context.Background(), tool, a)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	return result.Content[0]
}

func callErr(t *testing.T, s *Simulator, tool string, a map[string]interface{}) error {
	t.Helper()
	_, err := s.ExecuteTool(context.Background(), tool, a)
	require.Error(t, err)
	return err
}

func TestListContacts(t *testing.T) {
	s := New()

	out := call(t, s, "list_contacts", map[string]interface{}{}).(map[string]interface{})
	found := out["contacts"].([]*Contact)
	assert.Len(t, found, 3)

	out = call(t, s, "list_contacts", map[string]interface{}{"name_filter": "maya"}).(map[string]interface{})
	found = out["contacts"].([]*Contact)
	require.Len(t, found, 1)
	assert.Equal(t, "Maya Chen", found[0].DisplayName())
}

func TestListContacts_InvalidMaxResults(t *testing.T) {
	s := New()
	err := callErr(t, s, "list_contacts", map[string]interface{}{"max_results": float64(-1)})
	assert.True(t, api.IsValidation(err))
}

func TestGetContact(t *testing.T) {
	s := New()

	c := call(t, s, "get_contact", map[string]interface{}{"identifier": "people/c1001"}).(*Contact)
	assert.Equal(t, "Maya Chen", c.DisplayName())

	c = call(t, s, "get_contact", map[string]interface{}{"identifier": "diego.alvarez@example.com"}).(*Contact)
	assert.Equal(t, "people/c1002", c.ResourceName)

	err := callErr(t, s, "get_contact", map[string]interface{}{"identifier": "people/c9999"})
	assert.True(t, api.IsNotFound(err))

	err = callErr(t, s, "get_contact", map[string]interface{}{"identifier": "bad@@email"})
	assert.True(t, api.IsValidation(err))
}

func TestCreateContact(t *testing.T) {
	s := New()

	out := call(t, s, "create_contact", map[string]interface{}{
		"given_name":  "Nora",
		"family_name": "Osei",
		"email":       "nora.osei@example.com",
		"phone":       "(415) 555-0303",
	}).(map[string]interface{})

	assert.Equal(t, "success", out["status"])
	created := out["contact"].(*Contact)
	assert.NotEmpty(t, created.ResourceName)
	assert.NotEmpty(t, created.Etag)
	require.Len(t, created.PhoneNumbers, 1)
	assert.Equal(t, "4155550303", created.PhoneNumbers[0].Value)

	require.NotNil(t, created.WhatsApp)
	assert.True(t, created.WhatsApp.IsWhatsAppUser)
	assert.Equal(t, "4155550303@s.whatsapp.net", created.WhatsApp.JID)
	assert.Equal(t, "Nora Osei", created.WhatsApp.NameInAddressBook)

	require.NotNil(t, created.Phone)
	assert.Equal(t, "CONTACT", created.Phone.RecipientType)
	require.Len(t, created.Phone.ContactEndpoints, 1)
	assert.Equal(t, "PHONE_NUMBER", created.Phone.ContactEndpoints[0].EndpointType)

	// Visible through get_contact afterwards.
	got := call(t, s, "get_contact", map[string]interface{}{"identifier": created.ResourceName}).(*Contact)
	assert.Equal(t, created.ResourceName, got.ResourceName)
}

func TestCreateContact_EmailOnlyHasNoWhatsAppNumber(t *testing.T) {
	s := New()
	out := call(t, s, "create_contact", map[string]interface{}{
		"given_name": "Iris",
		"email":      "iris@example.org",
	}).(map[string]interface{})
	created := out["contact"].(*Contact)
	require.NotNil(t, created.WhatsApp)
	assert.False(t, created.WhatsApp.IsWhatsAppUser)
	assert.Nil(t, created.WhatsApp.PhoneNumber)
	assert.Contains(t, created.WhatsApp.JID, "@example.org")
	assert.Empty(t, created.Phone.ContactEndpoints)
}

func TestCreateContact_Validation(t *testing.T) {
	s := New()

	// Neither email nor phone.
	err := callErr(t, s, "create_contact", map[string]interface{}{"given_name": "Solo"})
	assert.True(t, api.IsValidation(err))

	// Duplicate email.
	err = callErr(t, s, "create_contact", map[string]interface{}{
		"given_name": "Copy",
		"email":      "maya.chen@example.com",
	})
	assert.True(t, api.IsDuplicate(err))

	// Bad phone.
	err = callErr(t, s, "create_contact", map[string]interface{}{
		"given_name": "Shorty",
		"phone":      "12345",
	})
	assert.True(t, api.IsValidation(err))
}

func TestUpdateContact(t *testing.T) {
	s := New()

	before := call(t, s, "get_contact", map[string]interface{}{"identifier": "people/c1001"}).(*Contact)
	beforeEtag := before.Etag

	updated := call(t, s, "update_contact", map[string]interface{}{
		"resource_name": "people/c1001",
		"family_name":   "Chen-Rivera",
		"phone":         "+1 415 555 0199",
	}).(*Contact)

	assert.Equal(t, "Chen-Rivera", updated.Names[0].FamilyName)
	assert.Equal(t, "+14155550199", updated.PhoneNumbers[0].Value)
	assert.NotEqual(t, beforeEtag, updated.Etag)
}

func TestUpdateContact_NoChangeKeepsEtag(t *testing.T) {
	s := New()
	updated := call(t, s, "update_contact", map[string]interface{}{
		"resource_name": "people/c1001",
		"given_name":    "Maya",
	}).(*Contact)
	assert.Equal(t, "etag-c1001-v1", updated.Etag)
}

func TestUpdateContact_Errors(t *testing.T) {
	s := New()

	err := callErr(t, s, "update_contact", map[string]interface{}{"resource_name": "people/c1001"})
	assert.True(t, api.IsValidation(err))

	err = callErr(t, s, "update_contact", map[string]interface{}{
		"resource_name": "people/c9999",
		"given_name":    "Ghost",
	})
	assert.True(t, api.IsNotFound(err))
}

func TestDeleteContact(t *testing.T) {
	s := New()

	out := call(t, s, "delete_contact", map[string]interface{}{"resource_name": "people/c1002"}).(map[string]interface{})
	assert.Equal(t, "success", out["status"])

	err := callErr(t, s, "get_contact", map[string]interface{}{"identifier": "people/c1002"})
	assert.True(t, api.IsNotFound(err))

	// Directory entries are not deletable.
	err = callErr(t, s, "delete_contact", map[string]interface{}{"resource_name": "people/d3001"})
	assert.True(t, api.IsNotFound(err))
}

func TestSearchContacts(t *testing.T) {
	s := New()

	out := call(t, s, "search_contacts", map[string]interface{}{"query": "example.net"}).(map[string]interface{})
	results := out["results"].([]*Contact)
	assert.Len(t, results, 2)

	// Organization fields are searchable.
	out = call(t, s, "search_contacts", map[string]interface{}{"query": "Northwind"}).(map[string]interface{})
	results = out["results"].([]*Contact)
	require.Len(t, results, 1)
	assert.Equal(t, "people/c1003", results[0].ResourceName)

	// Notes are searchable.
	out = call(t, s, "search_contacts", map[string]interface{}{"query": "GopherCon"}).(map[string]interface{})
	results = out["results"].([]*Contact)
	require.Len(t, results, 1)

	// max_results caps the output.
	out = call(t, s, "search_contacts", map[string]interface{}{"query": "example", "max_results": float64(2)}).(map[string]interface{})
	results = out["results"].([]*Contact)
	assert.Len(t, results, 2)
}

func TestListWorkspaceUsers(t *testing.T) {
	s := New()
	out := call(t, s, "list_workspace_users", map[string]interface{}{}).(map[string]interface{})
	users := out["users"].([]*Contact)
	require.Len(t, users, 2)
	for _, u := range users {
		require.NotNil(t, u.IsWorkspaceUser)
		assert.True(t, *u.IsWorkspaceUser)
	}
}

func TestSearchDirectory(t *testing.T) {
	s := New()

	results := call(t, s, "search_directory", map[string]interface{}{"query": "rosa"}).([]*Contact)
	require.Len(t, results, 1)
	assert.Equal(t, "people/d3002", results[0].ResourceName)

	err := callErr(t, s, "search_directory", map[string]interface{}{"query": "   "})
	assert.True(t, api.IsValidation(err))
}

func TestGetOtherContacts(t *testing.T) {
	s := New()
	results := call(t, s, "get_other_contacts", map[string]interface{}{}).([]*Contact)
	assert.Len(t, results, 2)
}

func TestStatePersistenceRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")

	s := New()
	call(t, s, "create_contact", map[string]interface{}{
		"given_name": "Persisted",
		"email":      "persisted@example.com",
	})
	require.NoError(t, s.SaveState(path))

	fresh := New()
	require.NoError(t, fresh.LoadState(path))
	c := call(t, fresh, "get_contact", map[string]interface{}{"identifier": "persisted@example.com"}).(*Contact)
	assert.Equal(t, "Persisted", c.Names[0].GivenName)

	fresh.ResetState()
	err := callErr(t, fresh, "get_contact", map[string]interface{}{"identifier": "persisted@example.com"})
	assert.True(t, api.IsNotFound(err))
}

func TestStatePersistence_DeletedContactStaysGone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.json")

	s := New()
	call(t, s, "delete_contact", map[string]interface{}{"resource_name": "people/c1002"})
	require.NoError(t, s.SaveState(path))

	// Loading over a fresh simulator, whose seed still contains c1002, must
	// not bring the deleted contact back.
	fresh := New()
	require.NoError(t, fresh.LoadState(path))
	err := callErr(t, fresh, "get_contact", map[string]interface{}{"identifier": "people/c1002"})
	assert.True(t, api.IsNotFound(err))

	out := call(t, fresh, "list_contacts", map[string]interface{}{}).(map[string]interface{})
	assert.Len(t, out["contacts"].([]*Contact), 2)
}

func TestUnknownTool(t *testing.T) {
	s := New()
	err := callErr(t, s, "bogus_tool", map[string]interface{}{})
	assert.True(t, api.IsInvalidInput(err))
}
