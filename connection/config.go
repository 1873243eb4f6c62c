package connection

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"famplan/model"
)

// LoadAppConfig reads the environment surface. The .env file is only
// loaded when running locally (the RENDER env var is empty on dev
// machines).
func LoadAppConfig() (*model.AppConfig, error) {
	if os.Getenv("RENDER") == "" {
		if err := godotenv.Load(); err != nil {
			fmt.Println("Warning: .env file not loaded, fallback to OS env vars")
		}
	}

	config := &model.AppConfig{
		CredentialsPath: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		TriggerSecret:   os.Getenv("TRIGGER_SECRET_KEY"),
		DailyCron:       getenv("DAILY_REMINDER_CRON", "0 9 * * *"),
		WeeklyCron:      getenv("WEEKLY_SUMMARY_CRON", "0 18 * * 0"),
		Timezone:        getenv("CRON_TIMEZONE", "Local"),
		BaseURL:         getenv("APP_BASE_URL", "https://app.famplan.dev"),
	}

	if config.CredentialsPath == "" {
		return nil, fmt.Errorf("environment variable GOOGLE_APPLICATION_CREDENTIALS is not set")
	}
	if config.TriggerSecret == "" {
		return nil, fmt.Errorf("environment variable TRIGGER_SECRET_KEY is not set")
	}
	return config, nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
