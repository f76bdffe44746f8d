package config

import (
	"github.com/lilypetalstudios/Spark/internal/envconfig"
)

type Config struct {
	Port         string `validate:"required"`
	GCPProjectID string `validate:"required"`
	DataStore    string `validate:"required,oneof=firestore memory"`
	Auth         AuthConfig
	Firestore    FirestoreConfig
	Storage      StorageConfig
	Leaderboard  LeaderboardConfig
}

type AuthConfig struct {
	Mode     string `validate:"required"`
	JWKSURL  string
	Audience string
	Issuer   string
}

type FirestoreConfig struct {
	EmulatorHost string
}

type StorageConfig struct {
	AvatarBucket string
}

type LeaderboardConfig struct {
	Limit int `validate:"min=1"`
}

func Load() (Config, error) {
	cfg := Config{
		Port:         envconfig.Get("PORT", "8080"),
		GCPProjectID: envconfig.Get("GCP_PROJECT_ID", "spark-dev"),
		DataStore:    envconfig.Get("DATASTORE", "firestore"),
		Auth: AuthConfig{
			Mode:     envconfig.Get("AUTH_MODE", "jwks"),
			JWKSURL:  envconfig.Get("AUTH_JWKS_URL", ""),
			Audience: envconfig.Get("AUTH_AUDIENCE", ""),
			Issuer:   envconfig.Get("AUTH_ISSUER", ""),
		},
		Firestore: FirestoreConfig{
			EmulatorHost: envconfig.Get("FIRESTORE_EMULATOR_HOST", ""),
		},
		Storage: StorageConfig{
			AvatarBucket: envconfig.Get("AVATAR_BUCKET", "spark-profile-images"),
		},
		Leaderboard: LeaderboardConfig{
			Limit: envconfig.GetInt("LEADERBOARD_LIMIT", 10),
		},
	}
	return cfg, envconfig.Validate(cfg)
}
