package config

import (
	"os"
	"strconv"
	"strings"

	"storefront/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Port string

	DB     database.Config
	Redis  Redis
	Kafka  Kafka
	Stripe Stripe
	JWT    JWT
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type Kafka struct {
	Brokers    []string
	EmailTopic string
}

type Stripe struct {
	SecretKey     string
	WebhookSecret string
}

type JWT struct {
	Secret    string
	Issuer    string
	Audience  string
	AccessTTL int // минуты
}

// SMTP нужен только воркеру нотификаций (cmd/notifier)
type SMTP struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	SSL         bool
	TemplateDir string
}

type NotifierConfig struct {
	SMTP  SMTP
	Kafka Kafka

	KafkaGroupID string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		DB: database.Config{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  getEnv("DB_SSLMODE", log),
		},
		Redis: Redis{
			Enabled:  os.Getenv("REDIS_ENABLED") == "true",
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       atoiDefault(os.Getenv("REDIS_DB"), 0),
		},
		Kafka: Kafka{
			Brokers:    splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			EmailTopic: os.Getenv("KAFKA_TOPIC_EMAIL"),
		},
		Stripe: Stripe{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", log),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", log),
		},
		JWT: JWT{
			Secret:    getEnv("JWT_SECRET", log),
			Issuer:    getEnvDefault("JWT_ISSUER", "storefront"),
			Audience:  getEnvDefault("JWT_AUDIENCE", "storefront-web"),
			AccessTTL: atoiDefault(os.Getenv("JWT_ACCESS_TTL_MIN"), 60*24),
		},
	}
}

func LoadNotifier(log *zap.Logger) *NotifierConfig {
	return &NotifierConfig{
		SMTP: SMTP{
			Host:        getEnv("SMTP_HOST", log),
			Port:        getEnvInt("SMTP_PORT", log),
			User:        getEnv("SMTP_USER", log),
			Password:    getEnv("SMTP_PASSWORD", log),
			From:        getEnv("SMTP_FROM", log),
			SSL:         os.Getenv("SMTP_SSL") != "false",
			TemplateDir: getEnv("TMPL_DIR", log),
		},
		Kafka: Kafka{
			Brokers:    splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			EmailTopic: getEnv("KAFKA_TOPIC_EMAIL", log),
		},
		KafkaGroupID: getEnv("KAFKA_GROUP_ID", log),
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("Обязательная переменная окружения не установлена", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return def
}

func getEnvInt(key string, log *zap.Logger) int {
	valStr := getEnv(key, log)
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Error("Ошибка преобразования переменной окружения в int", zap.String("key", key), zap.Error(err))
		panic("invalid int value for environment variable: " + key)
	}
	return val
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
