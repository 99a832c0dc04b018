package contacts

// The JSON shapes follow the Google People API surface: contacts carry
// names, emailAddresses, phoneNumbers and organizations as lists of
// sub-objects, and every contact has a server-assigned resourceName plus
// a rotating etag.

type Name struct {
	GivenName  string `json:"givenName,omitempty"`
	FamilyName string `json:"familyName,omitempty"`
}

type EmailAddress struct {
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Primary bool   `json:"primary,omitempty"`
}

type PhoneNumber struct {
	Value   string `json:"value"`
	Type    string `json:"type,omitempty"`
	Primary bool   `json:"primary,omitempty"`
}

type Organization struct {
	Name       string `json:"name,omitempty"`
	Title      string `json:"title,omitempty"`
	Department string `json:"department,omitempty"`
	Primary    bool   `json:"primary,omitempty"`
}

// WhatsApp is the messaging-centric projection attached to contacts
// created through this API.
type WhatsApp struct {
	JID               string  `json:"jid"`
	NameInAddressBook string  `json:"name_in_address_book"`
	ProfileName       string  `json:"profile_name"`
	PhoneNumber       *string `json:"phone_number"`
	IsWhatsAppUser    bool    `json:"is_whatsapp_user"`
}

type ContactEndpoint struct {
	EndpointType  string `json:"endpoint_type"`
	EndpointValue string `json:"endpoint_value"`
	EndpointLabel string `json:"endpoint_label,omitempty"`
}

// PhoneInfo is the dialer-centric projection of a contact: the recipient
// record a messaging client would resolve before sending.
type PhoneInfo struct {
	ContactID        string            `json:"contact_id"`
	ContactName      string            `json:"contact_name"`
	RecipientType    string            `json:"recipient_type"`
	ContactEndpoints []ContactEndpoint `json:"contact_endpoints"`
}

type Contact struct {
	ResourceName    string         `json:"resourceName"`
	Etag            string         `json:"etag"`
	Names           []Name         `json:"names,omitempty"`
	EmailAddresses  []EmailAddress `json:"emailAddresses,omitempty"`
	PhoneNumbers    []PhoneNumber  `json:"phoneNumbers,omitempty"`
	Organizations   []Organization `json:"organizations,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	IsWorkspaceUser *bool          `json:"isWorkspaceUser,omitempty"`
	WhatsApp        *WhatsApp      `json:"whatsapp,omitempty"`
	Phone           *PhoneInfo     `json:"phone,omitempty"`
}

// DisplayName joins the first name entry into "Given Family".
func (c *Contact) DisplayName() string {
	if len(c.Names) == 0 {
		return ""
	}
	n := c.Names[0]
	if n.GivenName != "" && n.FamilyName != "" {
		return n.GivenName + " " + n.FamilyName
	}
	if n.GivenName != "" {
		return n.GivenName
	}
	return n.FamilyName
}

// State is the whole contacts database: three collections keyed by
// resource name, mirroring the People API's myContacts / otherContacts /
// directory split.
type State struct {
	MyContacts    map[string]*Contact `json:"myContacts"`
	OtherContacts map[string]*Contact `json:"otherContacts"`
	Directory     map[string]*Contact `json:"directory"`
}
