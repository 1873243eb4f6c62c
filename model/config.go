package model

type AppConfig struct {
	CredentialsPath string
	TriggerSecret   string
	DailyCron       string
	WeeklyCron      string
	Timezone        string
	BaseURL         string
}
