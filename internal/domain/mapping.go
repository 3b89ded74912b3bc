package domain

import "time"

// Mapping associates an alias with the full URL it resolves to.
type Mapping struct {
	Alias     string    `json:"alias"`
	FullURL   string    `json:"full_url"`
	ShortURL  string    `json:"short_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewMapping creates a mapping stamped with the current UTC time.
func NewMapping(alias, fullURL, shortURL string) *Mapping {
	return &Mapping{
		Alias:     alias,
		FullURL:   fullURL,
		ShortURL:  shortURL,
		CreatedAt: time.Now().UTC(),
	}
}

// ShortURLFor joins baseURL and alias with a single slash.
func ShortURLFor(baseURL, alias string) string {
	return baseURL + "/" + alias
}
