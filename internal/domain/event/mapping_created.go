package event

// Compile-time interface check
var _ Event = MappingCreated{}

// MappingCreated is raised when a new alias mapping is persisted.
type MappingCreated struct {
	Header
	Alias    string `json:"alias"`
	FullURL  string `json:"full_url"`
	ShortURL string `json:"short_url"`
}

// NewMappingCreated creates a new MappingCreated event.
func NewMappingCreated(alias, fullURL, shortURL string) MappingCreated {
	return MappingCreated{
		Header:   NewHeader(alias),
		Alias:    alias,
		FullURL:  fullURL,
		ShortURL: shortURL,
	}
}

// EventName returns the event name.
func (e MappingCreated) EventName() string {
	return MappingCreatedName
}
