package transport

import "time"

// DefaultBaseURL is the production Linked API endpoint.
const DefaultBaseURL = "https://api.linkedapi.io"

// Config holds the HTTP transport configuration with declarative tags.
type Config struct {
	BaseURL             string        `yaml:"base_url" json:"baseUrl" default:"https://api.linkedapi.io" validate:"required,url_format"`
	APIToken            string        `yaml:"api_token" json:"apiToken" validate:"required"`
	IdentificationToken string        `yaml:"identification_token" json:"identificationToken" validate:"required"`
	Client              string        `yaml:"client" json:"client" default:"go"`
	Timeout             time.Duration `yaml:"timeout" json:"timeout" default:"30s" validate:"gte=1s"`
	// RequestsPerSecond limits outgoing requests. Zero disables limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requestsPerSecond" default:"0" validate:"gte=0"`
	Burst             int     `yaml:"burst" json:"burst" default:"1" validate:"gte=1"`
	Debug             bool    `yaml:"debug" json:"debug" default:"false"`
}
