package shopify

import "errors"

// Config holds the storefront Admin GraphQL connection settings
type Config struct {
	// GraphQLURL is the full Admin GraphQL endpoint of the shop
	GraphQLURL string
	// AccessToken is the Admin API access token
	AccessToken string
	// PageSize is the number of records requested per page
	PageSize int
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// Errors for storefront configuration
var (
	ErrConfigMissingURL   = errors.New("shopify: graphql url is required")
	ErrConfigMissingToken = errors.New("shopify: access token is required")
)

// NewConfig creates a storefront configuration with defaults
func NewConfig(graphqlURL, accessToken string) *Config {
	return &Config{
		GraphQLURL:     graphqlURL,
		AccessToken:    accessToken,
		PageSize:       250,
		TimeoutSeconds: 30,
	}
}

// Validate validates the storefront configuration
func (c *Config) Validate() error {
	if c.GraphQLURL == "" {
		return ErrConfigMissingURL
	}
	if c.AccessToken == "" {
		return ErrConfigMissingToken
	}
	if c.PageSize <= 0 || c.PageSize > 250 {
		c.PageSize = 250
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
