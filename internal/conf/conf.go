package conf

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"shortlink/internal/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Bootstrap is the root of the service configuration.
type Bootstrap struct {
	Server    *Server    `json:"server"`
	Data      *Data      `json:"data"`
	Shortener *Shortener `json:"shortener"`
	Log       *Log       `json:"log"`
}

// Server holds transport settings.
type Server struct {
	HTTP *Server_Transport `json:"http"`
	GRPC *Server_Transport `json:"grpc"`
}

// Server_Transport configures one listener.
type Server_Transport struct {
	Network string   `json:"network"`
	Addr    string   `json:"addr"`
	Timeout Duration `json:"timeout"`
}

// Data holds storage settings.
type Data struct {
	Database *Data_Database `json:"database"`
	Redis    *Data_Redis    `json:"redis"`
}

// Data_Database selects the SQL driver and its DSN.
type Data_Database struct {
	Driver string `json:"driver"`
	Source string `json:"source"`
}

// Data_Redis configures the optional mapping cache. An empty Addr disables it.
type Data_Redis struct {
	Addr         string   `json:"addr"`
	Password     string   `json:"password"`
	DB           int      `json:"db"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
	CacheTTL     Duration `json:"cache_ttl"`
}

// Shortener holds the alias and short URL settings.
type Shortener struct {
	BaseURL               string `json:"base_url"`
	AliasLength           int    `json:"alias_length"`
	MaxGenerationAttempts int    `json:"max_generation_attempts"`
}

// Log holds logging settings.
type Log struct {
	Level string `json:"level"`
}

const (
	DefaultBaseURL               = "http://localhost:8080"
	DefaultAliasLength           = 7
	DefaultMaxGenerationAttempts = 5
	DefaultDriver                = "sqlite3"
	DefaultSource                = "file:shortlink?mode=memory&cache=shared&_fk=1"
	DefaultCacheTTL              = 10 * time.Minute
)

// SupportedDrivers lists the database/sql driver names the data layer registers.
var SupportedDrivers = []any{"postgres", "sqlite3", "sqlite"}

// SetDefaults fills every unset field with its default value.
func (b *Bootstrap) SetDefaults() {
	if b.Server == nil {
		b.Server = &Server{}
	}
	if b.Server.HTTP == nil {
		b.Server.HTTP = &Server_Transport{}
	}
	b.Server.HTTP.setDefaults(":8080")
	if b.Server.GRPC == nil {
		b.Server.GRPC = &Server_Transport{}
	}
	b.Server.GRPC.setDefaults(":9000")

	if b.Data == nil {
		b.Data = &Data{}
	}
	if b.Data.Database == nil {
		b.Data.Database = &Data_Database{}
	}
	if b.Data.Database.Driver == "" {
		b.Data.Database.Driver = DefaultDriver
	}
	if b.Data.Database.Source == "" {
		b.Data.Database.Source = DefaultSource
	}
	if b.Data.Redis == nil {
		b.Data.Redis = &Data_Redis{}
	}
	if b.Data.Redis.CacheTTL == 0 {
		b.Data.Redis.CacheTTL = Duration(DefaultCacheTTL)
	}

	if b.Shortener == nil {
		b.Shortener = &Shortener{}
	}
	b.Shortener.SetDefaults()

	if b.Log == nil {
		b.Log = &Log{}
	}
	if b.Log.Level == "" {
		b.Log.Level = "info"
	}
}

func (t *Server_Transport) setDefaults(addr string) {
	if t.Network == "" {
		t.Network = "tcp"
	}
	if t.Addr == "" {
		t.Addr = addr
	}
	if t.Timeout == 0 {
		t.Timeout = Duration(time.Second)
	}
}

// SetDefaults fills unset shortener settings and trims a trailing slash from BaseURL.
func (s *Shortener) SetDefaults() {
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")
	if s.AliasLength == 0 {
		s.AliasLength = DefaultAliasLength
	}
	if s.MaxGenerationAttempts == 0 {
		s.MaxGenerationAttempts = DefaultMaxGenerationAttempts
	}
}

// Validate checks the configuration after defaults are applied.
func (b *Bootstrap) Validate() error {
	return validation.ValidateStruct(b,
		validation.Field(&b.Data, validation.Required),
		validation.Field(&b.Shortener, validation.Required),
		validation.Field(&b.Log, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (d *Data) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.Database, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (d *Data_Database) Validate() error {
	return validation.ValidateStruct(d,
		validation.Field(&d.Driver, validation.Required, validation.In(SupportedDrivers...)),
		validation.Field(&d.Source, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (s *Shortener) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.BaseURL, validation.Required, is.URL),
		validation.Field(&s.AliasLength, validation.Required, validation.Min(domain.MinAliasLength), validation.Max(domain.MaxAliasLength)),
		validation.Field(&s.MaxGenerationAttempts, validation.Required, validation.Min(1)),
	)
}

// Validate implements validation.Validatable.
func (l *Log) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Level, validation.In("debug", "info", "warn", "error", "fatal")),
	)
}

// Duration is a time.Duration that decodes from "1.5s" style strings or integer nanoseconds.
type Duration time.Duration

// AsDuration returns the value as a time.Duration.
func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		if value == "" {
			*d = 0
			return nil
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}
