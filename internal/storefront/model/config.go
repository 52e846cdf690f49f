package model

import "time"

// ================ Config ================
type APIConfig struct {
	Endpoint string        `envconfig:"QKART_ENDPOINT" default:"http://localhost:8082/api/v1"`
	Timeout  time.Duration `envconfig:"QKART_HTTP_TIMEOUT" default:"10s"`
}

type SearchConfig struct {
	Debounce time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"500ms"`
}

type SessionConfig struct {
	Backend string        `envconfig:"SESSION_BACKEND" default:"file"`
	File    string        `envconfig:"SESSION_FILE"`
	Profile string        `envconfig:"SESSION_PROFILE" default:"default"`
	TTL     time.Duration `envconfig:"SESSION_TTL" default:"720h"`
}

type MockServerConfig struct {
	Addr     string `envconfig:"MOCK_ADDR" default:":8082"`
	BasePath string `envconfig:"MOCK_BASE_PATH" default:"/api/v1"`
}
