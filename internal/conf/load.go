package conf

import (
	"errors"
	"io/fs"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/env"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/joho/godotenv"

	_ "github.com/go-kratos/kratos/v2/encoding/yaml"
)

// EnvPrefix is stripped from environment variables before they are exposed to config placeholders.
const EnvPrefix = "SHORTLINK_"

// Load reads the configuration at path, overlays SHORTLINK_* environment variables,
// applies defaults and validates the result. A .env file in the working directory is
// loaded first when present.
func Load(path string) (*Bootstrap, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	c := config.New(
		config.WithSource(
			file.NewSource(path),
			env.NewSource(EnvPrefix),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		return nil, err
	}

	var bc Bootstrap
	if err := c.Scan(&bc); err != nil {
		return nil, err
	}
	bc.SetDefaults()
	if err := bc.Validate(); err != nil {
		return nil, err
	}
	return &bc, nil
}
