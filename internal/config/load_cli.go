package config

import "time"

// ClientConfig são os defaults do calc; as flags sobrescrevem.
type ClientConfig struct {
	APIURL   string
	WSURL    string
	Timeout  time.Duration
	LogLevel string
}

func LoadClientConfig() *ClientConfig {
	return &ClientConfig{
		APIURL:   getenv("CALC_API_URL", "http://localhost:8080"),
		WSURL:    getenv("CALC_WS_URL", "ws://localhost:8090/ws"),
		Timeout:  parseDuration("CALC_TIMEOUT", 15*time.Second),
		LogLevel: getenv("CALC_LOG_LEVEL", "warn"),
	}
}
