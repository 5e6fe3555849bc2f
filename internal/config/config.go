package config

import "fmt"

// Defaults for the tool's resource limits.
const (
	DefaultMaxFileSizeMB  = 10
	DefaultMaxLineCount   = 100000
	DefaultLockTimeoutSec = 10
)

// Config holds all configurable limits for hashline.
type Config struct {
	MaxFileSizeMB  int
	MaxLineCount   int
	LockTimeoutSec int
}

// Default returns a Config populated with the default limits.
func Default() *Config {
	return &Config{
		MaxFileSizeMB:  DefaultMaxFileSizeMB,
		MaxLineCount:   DefaultMaxLineCount,
		LockTimeoutSec: DefaultLockTimeoutSec,
	}
}

// Validate checks that the configured limits are within sane bounds.
func (c *Config) Validate() error {
	if c.MaxFileSizeMB < 1 || c.MaxFileSizeMB > 100 {
		return fmt.Errorf("max file size must be between 1 and 100 MB")
	}
	if c.MaxLineCount < 1 || c.MaxLineCount > 1000000 {
		return fmt.Errorf("max line count must be between 1 and 1000000")
	}
	if c.LockTimeoutSec < 1 || c.LockTimeoutSec > 300 {
		return fmt.Errorf("lock timeout must be between 1 and 300 seconds")
	}
	return nil
}

// MaxFileSizeBytes returns the file size limit in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}
