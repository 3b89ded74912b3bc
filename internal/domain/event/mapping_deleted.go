package event

var _ Event = MappingDeleted{}

// MappingDeleted is raised when a mapping is hard-deleted.
type MappingDeleted struct {
	Header
	Alias string `json:"alias"`
}

// NewMappingDeleted creates a new MappingDeleted event.
func NewMappingDeleted(alias string) MappingDeleted {
	return MappingDeleted{
		Header: NewHeader(alias),
		Alias:  alias,
	}
}

// EventName returns the event name.
func (e MappingDeleted) EventName() string {
	return MappingDeletedName
}
