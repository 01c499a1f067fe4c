package config

import (
	"os"
	"strings"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	XenditSecretKey     string
	XenditCallbackToken string
	PublicSiteURL       string

	StorageURL    string
	StorageKey    string
	StorageBucket string

	CORSAllowedOrigins string
}

func LoadEnv() Env {
	return Env{
		AppAddr: getenv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: getenv("DB_USER", "root"),
		DBPass: strings.TrimSpace(os.Getenv("DB_PASS")),
		DBHost: getenv("DB_HOST", "127.0.0.1:3306"),
		DBName: getenv("DB_NAME", "kos_app"),

		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		XenditSecretKey:     strings.TrimSpace(os.Getenv("XENDIT_SECRET_KEY")),
		XenditCallbackToken: strings.TrimSpace(os.Getenv("XENDIT_CALLBACK_TOKEN")),
		PublicSiteURL:       getenv("PUBLIC_SITE_URL", "https://kos-management.netlify.app"),

		StorageURL:    strings.TrimSpace(os.Getenv("STORAGE_URL")),
		StorageKey:    strings.TrimSpace(os.Getenv("STORAGE_KEY")),
		StorageBucket: getenv("STORAGE_BUCKET", "image_room"),

		CORSAllowedOrigins: strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
