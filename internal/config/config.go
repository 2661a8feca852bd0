package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret string
	JWTExpiry time.Duration

	AdminPassword     string
	AdminPasswordHash string
	AdminNickname     string
	AdminEmail        string
	AdminWebsite      string
	AdminAvatar       string
	AdminAliases      []string

	SiteURL         string
	SiteTitle       string
	SiteDescription string
	SiteAuthor      string
	ContentDir      string

	SinkPublicURL string
	SinkAPIKey    string

	TelegramHost string
	Channel      string
	HTTPProxy    string

	Locale     string
	LocalePath string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOPrefix    string
	MinIOUseSSL    bool

	CORSOrigins string

	ResendAPIKey string
	FromEmail    string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: getDurationEnv("JWT_EXPIRY", 30*24*time.Hour),

		AdminPassword:     getEnv("SECRET_ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminNickname:     getEnv("ADMIN_NICKNAME", "EveSunMaple"),
		AdminEmail:        getEnv("ADMIN_EMAIL", "evesunmaple@outlook.com"),
		AdminWebsite:      getEnv("ADMIN_WEBSITE", "https://www.saroprock.com"),
		AdminAvatar:       getEnv("ADMIN_AVATAR", "https://www.saroprock.com/avatar.webp"),
		AdminAliases:      getListEnv("ADMIN_ALIASES", []string{"evesunmaple", "sunmaple", "admin", "博主", "evesunmaple@outlook.com"}),

		SiteURL:         getEnv("SITE_URL", "https://www.saroprock.com"),
		SiteTitle:       getEnv("SITE_TITLE", "サン猫の時間漂流"),
		SiteDescription: getEnv("SITE_DESCRIPTION", "一个孤独的地方，散落着一个人的人生碎片"),
		SiteAuthor:      getEnv("SITE_AUTHOR", "サン猫の時間漂流"),
		ContentDir:      getEnv("CONTENT_DIR", "content/blog"),

		SinkPublicURL: strings.TrimRight(getEnv("SINK_PUBLIC_URL", ""), "/"),
		SinkAPIKey:    getEnv("SINK_API_KEY", ""),

		TelegramHost: getEnv("TELEGRAM_HOST", "t.me"),
		Channel:      getEnv("CHANNEL", ""),
		HTTPProxy:    getEnv("HTTP_PROXY", ""),

		Locale:     getEnv("LOCALE", "zh-CN"),
		LocalePath: getEnv("LOCALE_PATH", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:    getEnv("MINIO_BUCKET", "blog-content"),
		MinIOPrefix:    getEnv("MINIO_PREFIX", "blog/"),
		MinIOUseSSL:    getBoolEnv("MINIO_USE_SSL", false),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:4321"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
