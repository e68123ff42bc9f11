package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultCleanupInterval = 24 * time.Hour

type Config struct {
	endpoint        string
	dsn             string
	amqpURL         string
	logLevel        string
	env             string
	authSecretKey   string
	cleanupInterval time.Duration
}

func generateRandomString(length int) string {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		panic(err)
	}
	return base64.StdEncoding.EncodeToString(b)
}

func NewConfig() Config {
	// .env необязателен, переменные окружения процесса имеют приоритет
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("WARNING: .env wasn't loaded due to %s\n", err)
	}

	var (
		endpoint string
		dsn      string
		amqpURL  string
	)

	flag.StringVar(&endpoint, "a", "localhost:8080", "address and port to run server")
	flag.StringVar(&dsn, "d", "", "data source name for database connection")
	flag.StringVar(&amqpURL, "m", "", "RabbitMQ URL for notification events, disabled when empty")
	flag.Parse()

	if address := os.Getenv("RUN_ADDRESS"); address != "" {
		endpoint = address
	}

	if d := os.Getenv("DATABASE_URI"); d != "" {
		dsn = d
	}

	if m := os.Getenv("AMQP_URL"); m != "" {
		amqpURL = m
	}

	logLevel := "info"
	if l := os.Getenv("LOG_LEVEL"); l != "" {
		logLevel = l
	}

	env := "production"
	if e := os.Getenv("ENV"); e != "" {
		env = e
	}

	authSecretKey := os.Getenv("AUTH_SECRET_KEY")
	if authSecretKey == "" {
		if env == "production" {
			authSecretKey = generateRandomString(32)
			log.Printf("WARNING: AUTH_SECRET_KEY has to be defined for production environment\n")
		} else {
			authSecretKey = "development-key"
		}
	}

	cleanupInterval := defaultCleanupInterval
	if i := os.Getenv("CLEANUP_INTERVAL"); i != "" {
		parsed, err := time.ParseDuration(i)
		if err != nil || parsed <= 0 {
			log.Printf("WARNING: CLEANUP_INTERVAL %q is invalid, using %s\n", i, defaultCleanupInterval)
		} else {
			cleanupInterval = parsed
		}
	}

	return Config{
		endpoint:        endpoint,
		dsn:             dsn,
		amqpURL:         amqpURL,
		logLevel:        logLevel,
		env:             env,
		authSecretKey:   authSecretKey,
		cleanupInterval: cleanupInterval,
	}
}
