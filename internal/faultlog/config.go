package faultlog

import "codeberg.org/mutker/sqlfault/internal/errors"

const (
	defaultDirPerm = 0o755
	defaultDBPath  = "/var/lib/sqlfault/faultlog.db"
)

type Config struct {
	DBPath string
}

func DefaultConfig() Config {
	return Config{
		DBPath: defaultDBPath,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()
	if c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}
	return nil
}
