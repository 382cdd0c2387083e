package config

import "os"

type Config struct {
	Port            string
	Env             string
	PostgresConnStr string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string
	LookupBaseURL   string
	CoverArtBaseURL string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		PostgresConnStr: getEnv("POSTGRES_CONN_STR", ""),
		VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
		VAPIDSubscriber: getEnv("VAPID_SUBSCRIBER", "mailto:admin@spincrate.app"),
		LookupBaseURL:   getEnv("LOOKUP_BASE_URL", "https://api.upcitemdb.com/prod/trial"),
		CoverArtBaseURL: getEnv("COVER_ART_BASE_URL", "https://coverartarchive.org"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
