package contacts

import (
	"context"

	"mimic/internal/api"
	"mimic/internal/sim/args"
)

// GetTools describes the contacts tool surface.
func (s *Simulator) GetTools() []api.ToolMetadata {
	return []api.ToolMetadata{
		{
			Name:        "list_contacts",
			Description: "List all contacts or filter them by name.",
			Args: []api.ArgMetadata{
				{Name: "name_filter", Type: "string", Description: "String to filter contacts by name. If omitted, all contacts are returned."},
				{Name: "max_results", Type: "integer", Description: "Maximum number of contacts to return (default: 100)."},
			},
		},
		{
			Name:        "get_contact",
			Description: "Retrieve detailed information about a specific contact by resource name or email address.",
			Args: []api.ArgMetadata{
				{Name: "identifier", Type: "string", Required: true, Description: "Resource name (people/*) or email address of the contact."},
			},
		},
		{
			Name:        "create_contact",
			Description: "Create a new contact. given_name is required and at least one of email or phone must be provided.",
			Args: []api.ArgMetadata{
				{Name: "given_name", Type: "string", Required: true, Description: "First name of the contact."},
				{Name: "family_name", Type: "string", Description: "Last name of the contact."},
				{Name: "email", Type: "string", Description: "Email address of the contact."},
				{Name: "phone", Type: "string", Description: "Phone number of the contact. Must be 7-15 digits and may include a country code with '+' prefix."},
			},
		},
		{
			Name:        "update_contact",
			Description: "Update an existing contact. At least one optional field must be provided.",
			Args: []api.ArgMetadata{
				{Name: "resource_name", Type: "string", Required: true, Description: "Contact resource name (people/*)."},
				{Name: "given_name", Type: "string", Description: "Updated first name."},
				{Name: "family_name", Type: "string", Description: "Updated last name."},
				{Name: "email", Type: "string", Description: "Updated email address."},
				{Name: "phone", Type: "string", Description: "Updated phone number."},
			},
		},
		{
			Name:        "delete_contact",
			Description: "Delete a contact by resource name. Directory and other contacts cannot be deleted.",
			Args: []api.ArgMetadata{
				{Name: "resource_name", Type: "string", Required: true, Description: "Contact resource name (people/*) to delete."},
			},
		},
		{
			Name:        "search_contacts",
			Description: "Search contacts by name, email, phone number, notes, or organization across all collections.",
			Args: []api.ArgMetadata{
				{Name: "query", Type: "string", Required: true, Description: "Search term to find in contacts."},
				{Name: "max_results", Type: "integer", Description: "Maximum number of results to return (default: 10)."},
			},
		},
		{
			Name:        "list_workspace_users",
			Description: "List workspace users in the organization's directory, optionally filtered by a search term.",
			Args: []api.ArgMetadata{
				{Name: "query", Type: "string", Description: "Search term matched against names, emails, and phone numbers."},
				{Name: "max_results", Type: "integer", Description: "Maximum number of results to return (default: 50)."},
			},
		},
		{
			Name:        "search_directory",
			Description: "Search the organization's directory by name, email, or phone number.",
			Args: []api.ArgMetadata{
				{Name: "query", Type: "string", Required: true, Description: "Search term to find directory members."},
				{Name: "max_results", Type: "integer", Description: "Maximum number of results to return (default: 20)."},
			},
		},
		{
			Name:        "get_other_contacts",
			Description: "Retrieve contacts from the 'Other contacts' section: people interacted with but not explicitly added.",
			Args: []api.ArgMetadata{
				{Name: "max_results", Type: "integer", Description: "Maximum number of results to return (default: 50)."},
			},
		},
	}
}

// ExecuteTool dispatches a tool call to its handler.
func (s *Simulator) ExecuteTool(ctx context.Context, name string, a map[string]interface{}) (*api.CallToolResult, error) {
	result, err := s.dispatch(name, a)
	if err != nil {
		return nil, err
	}
	return api.NewResult(result), nil
}

func (s *Simulator) dispatch(name string, a map[string]interface{}) (interface{}, error) {
	switch name {
	case "list_contacts":
		nameFilter, err := args.StringOr(a, "name_filter", "")
		if err != nil {
			return nil, err
		}
		maxResults, err := args.PositiveIntOr(a, "max_results", 100)
		if err != nil {
			return nil, err
		}
		return s.listContacts(nameFilter, maxResults)

	case "get_contact":
		identifier, err := args.RequiredString(a, "identifier")
		if err != nil {
			return nil, err
		}
		return s.getContact(identifier)

	case "create_contact":
		givenName, err := args.RequiredString(a, "given_name")
		if err != nil {
			return nil, err
		}
		familyName, err := args.StringOr(a, "family_name", "")
		if err != nil {
			return nil, err
		}
		email, err := args.StringOr(a, "email", "")
		if err != nil {
			return nil, err
		}
		phone, err := args.StringOr(a, "phone", "")
		if err != nil {
			return nil, err
		}
		return s.createContact(givenName, familyName, email, phone)

	case "update_contact":
		resourceName, err := args.RequiredString(a, "resource_name")
		if err != nil {
			return nil, err
		}
		var fields [4]*string
		for i, key := range []string{"given_name", "family_name", "email", "phone"} {
			v, ok, err := args.String(a, key)
			if err != nil {
				return nil, err
			}
			if ok {
				fields[i] = &v
			}
		}
		return s.updateContact(resourceName, fields[0], fields[1], fields[2], fields[3])

	case "delete_contact":
		resourceName, err := args.RequiredString(a, "resource_name")
		if err != nil {
			return nil, err
		}
		return s.deleteContact(resourceName)

	case "search_contacts":
		query, err := args.RequiredString(a, "query")
		if err != nil {
			return nil, err
		}
		maxResults, err := args.PositiveIntOr(a, "max_results", 10)
		if err != nil {
			return nil, err
		}
		return s.searchContacts(query, maxResults)

	case "list_workspace_users":
		query, err := args.StringOr(a, "query", "")
		if err != nil {
			return nil, err
		}
		maxResults, err := args.PositiveIntOr(a, "max_results", 50)
		if err != nil {
			return nil, err
		}
		return s.listWorkspaceUsers(query, maxResults)

	case "search_directory":
		query, err := args.RequiredString(a, "query")
		if err != nil {
			return nil, err
		}
		maxResults, err := args.PositiveIntOr(a, "max_results", 20)
		if err != nil {
			return nil, err
		}
		return s.searchDirectory(query, maxResults)

	case "get_other_contacts":
		maxResults, err := args.PositiveIntOr(a, "max_results", 50)
		if err != nil {
			return nil, err
		}
		return s.getOtherContacts(maxResults)

	default:
		return nil, api.NewInvalidInputError("unknown contacts tool: %s", name)
	}
}
