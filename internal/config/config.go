package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	GatewayBaseURL string
	GatewayTimeout time.Duration
	ChannelURL     string
	AuthToken      string

	// Optional group to activate at startup; defaults to the first group
	// returned by the gateway.
	GroupID string

	ConnectDelay      time.Duration
	ReconnectAttempts int
	BackoffCap        time.Duration
	TypingDebounce    time.Duration
	TypingExpiry      time.Duration
	WelcomeTTL        time.Duration

	TrustedProxies []string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		GatewayBaseURL:    getEnv("GATEWAY_BASE_URL", "http://localhost:3000"),
		GatewayTimeout:    getDuration("GATEWAY_TIMEOUT", 10*time.Second),
		ChannelURL:        getEnv("CHANNEL_URL", "ws://localhost:3000/ws"),
		AuthToken:         os.Getenv("AUTH_TOKEN"),
		GroupID:           os.Getenv("GROUP_ID"),
		ConnectDelay:      getDuration("CONNECT_DELAY", time.Second),
		ReconnectAttempts: getInt("RECONNECT_ATTEMPTS", 5),
		BackoffCap:        getDuration("BACKOFF_CAP", 5*time.Second),
		TypingDebounce:    getDuration("TYPING_DEBOUNCE", time.Second),
		TypingExpiry:      getDuration("TYPING_EXPIRY", 5*time.Second),
		WelcomeTTL:        getDuration("WELCOME_TTL", 15*time.Second),
		TrustedProxies:    parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
