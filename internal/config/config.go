package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env                string        `json:"env"`
	ServerPort         int           `json:"server_port"`
	BaseDomain         string        `json:"base_domain"`
	JWTSecretKey       string        `json:"jwt_secret_key"`
	JWTExpirationHours int           `json:"jwt_expiration_hours"`
	DefaultRateLimit   int           `json:"default_rate_limit"`
	GlobalRateLimit    int           `json:"global_rate_limit"`
	TenantCacheTTL     time.Duration `json:"tenant_cache_ttl"`
}

// SchedulerConfig drives the maintenance job runner.
type SchedulerConfig struct {
	AudioCleanupInterval time.Duration
	LinkExpiryInterval   time.Duration
	CostUpdateInterval   time.Duration
	StuckAfter           time.Duration
}

func Load() (*Config, error) {
	serverPort, _ := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if serverPort == 0 {
		serverPort = 10000
	}

	jwtExpirationHours, _ := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS"))
	if jwtExpirationHours == 0 {
		jwtExpirationHours = 24
	}

	defaultRateLimit, _ := strconv.Atoi(os.Getenv("DEFAULT_RATE_LIMIT"))
	if defaultRateLimit == 0 {
		defaultRateLimit = 1000 // 1000 requests per minute per tenant
	}

	globalRateLimit, _ := strconv.Atoi(os.Getenv("GLOBAL_RATE_LIMIT"))
	if globalRateLimit == 0 {
		globalRateLimit = 10000 // 10000 requests per minute globally per IP
	}

	return &Config{
		Env:                getEnvWithDefault("APP_ENV", "development"),
		ServerPort:         serverPort,
		BaseDomain:         getEnvWithDefault("BASE_DOMAIN", "transquote.app"),
		JWTSecretKey:       os.Getenv("JWT_SECRET_KEY"),
		JWTExpirationHours: jwtExpirationHours,
		DefaultRateLimit:   defaultRateLimit,
		GlobalRateLimit:    globalRateLimit,
		TenantCacheTTL:     getEnvDurationWithDefault("TENANT_CACHE_TTL", 30*time.Second),
	}, nil
}

func LoadSchedulerConfig() *SchedulerConfig {
	return &SchedulerConfig{
		AudioCleanupInterval: getEnvDurationWithDefault("AUDIO_CLEANUP_INTERVAL", 1*time.Hour),
		LinkExpiryInterval:   getEnvDurationWithDefault("LINK_EXPIRY_INTERVAL", 15*time.Minute),
		CostUpdateInterval:   getEnvDurationWithDefault("COST_UPDATE_INTERVAL", 6*time.Hour),
		StuckAfter:           getEnvDurationWithDefault("JOB_STUCK_AFTER", 2*time.Hour),
	}
}
