package models

// ConnectedSource is an entry on the platforms screen. The list is static;
// toggling a source only flips its flag.
type ConnectedSource struct {
	ID         string
	Name       string
	Connected  bool
	LastSynced string
}

// DefaultSources returns the platforms screen entries
func DefaultSources() []ConnectedSource {
	return []ConnectedSource{
		{ID: "gmail", Name: "Gmail Inbox", Connected: true, LastSynced: "2 mins ago"},
		{ID: "whatsapp", Name: "WhatsApp Web"},
		{ID: "discord", Name: "Discord", Connected: true, LastSynced: "1 hour ago"},
		{ID: "outlook", Name: "Outlook"},
		{ID: "slack", Name: "Slack Workspace"},
		{ID: "teams", Name: "Microsoft Teams", Connected: true, LastSynced: "Just now"},
	}
}
