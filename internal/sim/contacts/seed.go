package contacts

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

// seedState builds the default contacts database: a few personal
// contacts, a couple of unlisted correspondents, and a small workspace
// directory.
func seedState() *State {
	return &State{
		MyContacts: map[string]*Contact{
			"people/c1001": {
				ResourceName: "people/c1001",
				Etag:         "etag-c1001-v1",
				Names:        []Name{{GivenName: "Maya", FamilyName: "Chen"}},
				EmailAddresses: []EmailAddress{
					{Value: "maya.chen@example.com", Type: "home", Primary: true},
				},
				PhoneNumbers: []PhoneNumber{
					{Value: "+14155550101", Type: "mobile", Primary: true},
				},
				Organizations: []Organization{
					{Name: "Lumen Labs", Title: "Product Designer"},
				},
				Notes: "college roommate",
				WhatsApp: &WhatsApp{
					JID:               "14155550101@s.whatsapp.net",
					NameInAddressBook: "Maya Chen",
					ProfileName:       "Maya Chen",
					PhoneNumber:       strPtr("+14155550101"),
					IsWhatsAppUser:    true,
				},
				Phone: &PhoneInfo{
					ContactID:     "people/c1001",
					ContactName:   "Maya Chen",
					RecipientType: "CONTACT",
					ContactEndpoints: []ContactEndpoint{
						{EndpointType: "PHONE_NUMBER", EndpointValue: "+14155550101", EndpointLabel: "mobile"},
					},
				},
			},
			"people/c1002": {
				ResourceName: "people/c1002",
				Etag:         "etag-c1002-v1",
				Names:        []Name{{GivenName: "Diego", FamilyName: "Alvarez"}},
				EmailAddresses: []EmailAddress{
					{Value: "diego.alvarez@example.com", Type: "home", Primary: true},
				},
				PhoneNumbers: []PhoneNumber{
					{Value: "+14155550102", Type: "mobile", Primary: true},
				},
				Organizations: []Organization{},
				Phone: &PhoneInfo{
					ContactID:     "people/c1002",
					ContactName:   "Diego Alvarez",
					RecipientType: "CONTACT",
					ContactEndpoints: []ContactEndpoint{
						{EndpointType: "PHONE_NUMBER", EndpointValue: "+14155550102", EndpointLabel: "mobile"},
					},
				},
			},
			"people/c1003": {
				ResourceName: "people/c1003",
				Etag:         "etag-c1003-v1",
				Names:        []Name{{GivenName: "Priya", FamilyName: "Natarajan"}},
				EmailAddresses: []EmailAddress{
					{Value: "priya.n@example.com", Type: "work", Primary: true},
				},
				Organizations: []Organization{
					{Name: "Northwind", Title: "Staff Engineer"},
				},
				Notes: "met at GopherCon",
			},
		},
		OtherContacts: map[string]*Contact{
			"otherContacts/c2001": {
				ResourceName: "otherContacts/c2001",
				Etag:         "etag-c2001-v1",
				Names:        []Name{{GivenName: "Sam", FamilyName: "Porter"}},
				EmailAddresses: []EmailAddress{
					{Value: "sam.porter@example.net", Type: "other", Primary: true},
				},
			},
			"otherContacts/c2002": {
				ResourceName: "otherContacts/c2002",
				Etag:         "etag-c2002-v1",
				Names:        []Name{{GivenName: "Leah", FamilyName: "Kim"}},
				EmailAddresses: []EmailAddress{
					{Value: "leah.kim@example.net", Type: "other", Primary: true},
				},
				PhoneNumbers: []PhoneNumber{
					{Value: "+14155550201", Type: "mobile", Primary: true},
				},
			},
		},
		Directory: map[string]*Contact{
			"people/d3001": {
				ResourceName:    "people/d3001",
				Etag:            "etag-d3001-v1",
				IsWorkspaceUser: boolPtr(true),
				Names:           []Name{{GivenName: "Aki", FamilyName: "Tanaka"}},
				EmailAddresses: []EmailAddress{
					{Value: "aki.tanaka@corp.example.com", Primary: true},
				},
				Organizations: []Organization{
					{Name: "Corp Example", Title: "Engineering Manager", Department: "Platform", Primary: true},
				},
			},
			"people/d3002": {
				ResourceName:    "people/d3002",
				Etag:            "etag-d3002-v1",
				IsWorkspaceUser: boolPtr(true),
				Names:           []Name{{GivenName: "Rosa", FamilyName: "Marin"}},
				EmailAddresses: []EmailAddress{
					{Value: "rosa.marin@corp.example.com", Primary: true},
				},
				Organizations: []Organization{
					{Name: "Corp Example", Title: "Data Scientist", Department: "Analytics", Primary: true},
				},
			},
			"people/d3003": {
				ResourceName:    "people/d3003",
				Etag:            "etag-d3003-v1",
				IsWorkspaceUser: boolPtr(false),
				Names:           []Name{{GivenName: "External", FamilyName: "Vendor"}},
				EmailAddresses: []EmailAddress{
					{Value: "vendor@partner.example.org", Primary: true},
				},
			},
		},
	}
}
