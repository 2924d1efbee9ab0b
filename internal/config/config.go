package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Global
		Auth
		Notifications
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Auth struct {
		BcryptCost int
	}
	Notifications struct {
		CleanupEnabled  bool
		CleanupSchedule string        // Cron format: "0 3 * * *" = daily at 03:00
		Retention       time.Duration // Read notifications older than this are purged
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_bcrypt_cost", 12)

	// Notification cleanup defaults
	v.SetDefault("notification_cleanup_enabled", true)
	v.SetDefault("notification_cleanup_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("notification_retention", "720h")             // 30 days

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Auth: Auth{
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Notifications: Notifications{
			CleanupEnabled:  v.GetBool("NOTIFICATION_CLEANUP_ENABLED"),
			CleanupSchedule: v.GetString("NOTIFICATION_CLEANUP_SCHEDULE"),
			Retention:       v.GetDuration("NOTIFICATION_RETENTION"),
		},
	}
}
