package busyx

import "errors"

// Config holds the ERP SOAP endpoint credentials
type Config struct {
	// URL is the SOAP endpoint, also used as the XML namespace
	URL string
	// APILog is the account login passed on every call
	APILog string
	// APIKey is the account key passed on every call
	APIKey string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// Errors for ERP configuration
var (
	ErrConfigMissingURL = errors.New("busyx: soap url is required")
	ErrConfigMissingLog = errors.New("busyx: api log is required")
	ErrConfigMissingKey = errors.New("busyx: api key is required")
)

// NewConfig creates an ERP configuration with defaults
func NewConfig(url, apiLog, apiKey string) *Config {
	return &Config{
		URL:            url,
		APILog:         apiLog,
		APIKey:         apiKey,
		TimeoutSeconds: 30,
	}
}

// Validate validates the ERP configuration
func (c *Config) Validate() error {
	if c.URL == "" {
		return ErrConfigMissingURL
	}
	if c.APILog == "" {
		return ErrConfigMissingLog
	}
	if c.APIKey == "" {
		return ErrConfigMissingKey
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
