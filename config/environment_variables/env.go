package environment_variables

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"pantrypal.app/pantry-api-gateway/app/utils/logger"
	"pantrypal.app/pantry-api-gateway/config"
)

type EnvironmentVariable struct {
	DB_POSTGRESQL_WRITE_DSN string
	DB_POSTGRESQL_READ1_DSN string
	// Redis configuration
	REDIS_URL      string
	REDIS_PASSWORD string
	REDIS_DB       int
	// Firebase ID token verification
	FIREBASE_PROJECT_ID            string
	IDENTITY_CACHE_MAX_TTL_SECONDS int
	DEVICE_TOKEN_SECRET            string
	// FatSecret platform API
	FATSECRET_CLIENT_ID     string
	FATSECRET_CLIENT_SECRET string
	FATSECRET_TOKEN_URL     string
	FATSECRET_SCOPE         []string
	FATSECRET_BASE_URL      string
	// Apple push notification service
	APNS_KEY_PATH string
	APNS_KEY_ID   string
	APNS_TEAM_ID  string
	APNS_TOPIC    string
	APNS_SANDBOX  bool
	// Scheduled jobs
	EXPIRY_NOTIFIER_SCHEDULE string
	CATEGORY_SYNC_SCHEDULE   string
	RATE_LIMIT_PER_MINUTE    int
	ALLOWED_CORS_HOSTS       []string
	SMTP_HOST                string
	SMTP_PORT                int
	SMTP_USERNAME            string
	SMTP_PASSWORD            string
	SMTP_SENDER_EMAIL        string
}

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			logger.GetLogger().Warnf("Missing SYSENV: %s", envKey)
			continue
		}
		switch v.Field(i).Kind() {
		case reflect.String:
			v.Field(i).SetString(envValue)
		case reflect.Int:
			intV, err := strconv.Atoi(envValue)
			if err != nil {
				logger.GetLogger().Errorf("Invalid int value for %s: %s", envKey, envValue)
			} else {
				v.Field(i).SetInt(int64(intV))
			}
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(envValue)
			if err != nil {
				logger.GetLogger().Errorf("Invalid boolean value for %s: %s", envKey, envValue)
			} else {
				v.Field(i).SetBool(boolVal)
			}
		case reflect.Slice:
			if v.Field(i).Type().Elem().Kind() == reflect.Uint8 {
				v.Field(i).SetBytes([]byte(envValue))
			} else if v.Field(i).Type().Elem().Kind() == reflect.String {
				entries := strings.Split(envValue, ",")
				for idx := range entries {
					entries[idx] = strings.TrimSpace(entries[idx])
				}
				v.Field(i).Set(reflect.ValueOf(entries))
			} else {
				logger.GetLogger().Errorf("Unsupported slice type for %s", field.Name)
			}
		default:
			logger.GetLogger().Errorf("Unsupported field type: %s", field.Name)
		}
	}
	config.EnvReloadedAt = time.Now()
}

func (ev *EnvironmentVariable) FatSecretConfigured() bool {
	return ev.FATSECRET_CLIENT_ID != "" && ev.FATSECRET_CLIENT_SECRET != ""
}

func (ev *EnvironmentVariable) SMTPConfigured() bool {
	return ev.SMTP_HOST != "" && ev.SMTP_SENDER_EMAIL != ""
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
