package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type (
	APP struct {
		Name  string
		Host  string
		Port  string
		Env   string
		Peers []string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
	}
	Storage struct {
		Kind          string
		Path          string
		S3Endpoint    string
		S3AccessKey   string
		S3SecretKey   string
		S3Bucket      string
		LinkTTL       time.Duration
		FileRetention time.Duration
	}
	MQ struct {
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}
	Broker struct {
		PublishRetryCount int
		ChunkSize         int
		CloneTimeout      time.Duration
	}

	Config struct {
		App     APP
		DB      DB
		Storage Storage
		MQ      MQ
		Broker  Broker
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvList(key string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}

	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func Load() Config {
	app := APP{
		Name:  getEnv("SERVICE_NAME", "filestore"),
		Host:  getEnv("SERVICE_HOST", ""),
		Port:  getEnv("SERVICE_PORT", ""),
		Env:   getEnv("SERVICE_ENV", ""),
		Peers: getEnvList("SERVICE_PEERS"),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
	}
	storage := Storage{
		Kind:          getEnv("STORAGE_KIND", "local"),
		Path:          getEnv("STORAGE_PATH", "/storage"),
		S3Endpoint:    getEnv("STORAGE_S3_ENDPOINT", ""),
		S3AccessKey:   getEnv("STORAGE_S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnv("STORAGE_S3_SECRET_KEY", ""),
		S3Bucket:      getEnv("STORAGE_S3_BUCKET", ""),
		LinkTTL:       getEnvDuration("STORAGE_LINK_TTL", time.Hour),
		FileRetention: getEnvDuration("STORAGE_FILE_RETENTION", 24*time.Hour),
	}
	mq := MQ{
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", ""),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "topic"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", ""),
	}
	broker := Broker{
		PublishRetryCount: getEnvInt("BROKER_PUBLISH_RETRY_COUNT", 100),
		ChunkSize:         getEnvInt("BROKER_CHUNK_SIZE", 1000),
		CloneTimeout:      getEnvDuration("BROKER_CLONE_TIMEOUT", 2*time.Second),
	}

	return Config{
		App:     app,
		DB:      db,
		Storage: storage,
		MQ:      mq,
		Broker:  broker,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
