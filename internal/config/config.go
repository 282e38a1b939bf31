package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                string
	MongoURI            string
	MongoDatabase       string
	MonasteryCollection string
	GuideCollection     string
	ProfileCollection   string
	Timeout             time.Duration
	ServerLog           *log.Logger
	AllowedOrigins      []string

	// Anonymous identity tokens.
	JWTSecret   []byte
	JWTIssuer   string
	JWTAudience string
	JWTTTL      time.Duration
	AdminIssuer string

	// Weather proxy.
	WeatherAPIKey      string
	WeatherBaseURL     string
	WeatherDefaultCity string

	// Chat relay. An empty ChatBackendURL selects the demo fallback.
	ChatBackendURL  string
	ChatTimeout     time.Duration
	ChatWelcome     string
	ChatSessionTTL  time.Duration
	ChatMaxSessions int
}

const defaultChatWelcome = "Namaste! I am your AI travel assistant. Ask me about the monasteries, local tips, or weather.\nExample: \"Tell me about Rumtek Monastery\""

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	timeout := 10 * time.Second
	if v := strings.TrimSpace(os.Getenv("MONGO_CONNECT_TIMEOUT")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			timeout = parsed
		}
	}

	chatTimeout := 30 * time.Second
	if v := strings.TrimSpace(os.Getenv("CHAT_BACKEND_TIMEOUT")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			chatTimeout = parsed
		}
	}

	chatSessionTTL := 30 * time.Minute
	if v := strings.TrimSpace(os.Getenv("CHAT_SESSION_TTL")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			chatSessionTTL = parsed
		}
	}

	chatMaxSessions := 1000
	if v := strings.TrimSpace(os.Getenv("CHAT_MAX_SESSIONS")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			chatMaxSessions = parsed
		}
	}

	jwtTTL := 30 * 24 * time.Hour
	if v := strings.TrimSpace(os.Getenv("AUTH_JWT_TTL")); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			jwtTTL = parsed
		}
	}

	jwtSecret := strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))
	if jwtSecret == "" {
		log.Fatal("AUTH_JWT_SECRET must be configured")
	}

	weatherKey := strings.TrimSpace(os.Getenv("WEATHER_API_KEY"))
	if weatherKey == "" {
		log.Fatal("WEATHER_API_KEY must be configured")
	}

	cfg := Config{
		Addr:                envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:            envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:       envOrDefault("MONGO_DB", "sikkim-trails"),
		MonasteryCollection: envOrDefault("MONASTERY_COLLECTION", "monasteries"),
		GuideCollection:     envOrDefault("GUIDE_COLLECTION", "Guides"),
		ProfileCollection:   envOrDefault("PROFILE_COLLECTION", "users"),
		Timeout:             timeout,
		ServerLog:           log.New(os.Stdout, "[sikkim-trails-api] ", log.LstdFlags|log.Lshortfile),
		AllowedOrigins:      parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		JWTSecret:           []byte(jwtSecret),
		JWTIssuer:           envOrDefault("AUTH_JWT_ISSUER", "sikkim-trails-auth"),
		JWTAudience:         envOrDefault("AUTH_JWT_AUDIENCE", "sikkim-trails"),
		JWTTTL:              jwtTTL,
		AdminIssuer:         envOrDefault("AUTH_ADMIN_JWT_ISSUER", "sikkim-trails-admin"),
		WeatherAPIKey:       weatherKey,
		WeatherBaseURL:      strings.TrimSpace(os.Getenv("WEATHER_BASE_URL")),
		WeatherDefaultCity:  envOrDefault("WEATHER_DEFAULT_CITY", "Gangtok"),
		ChatBackendURL:      strings.TrimSpace(os.Getenv("CHAT_BACKEND_URL")),
		ChatTimeout:         chatTimeout,
		ChatWelcome:         envOrDefault("CHAT_WELCOME_MESSAGE", defaultChatWelcome),
		ChatSessionTTL:      chatSessionTTL,
		ChatMaxSessions:     chatMaxSessions,
	}

	if cfg.ChatBackendURL == "" {
		cfg.ServerLog.Printf("CHAT_BACKEND_URL not set; chat runs with the demo fallback reply")
	}

	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
