package cfg

import (
	"errors"
	"testing"
	"time"

	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "shop")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "storefront")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("KAFKA_TOPIC", "storefront-events")
	t.Setenv("BUCKET_NAME", "media")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	conf, err := Load(logger.NewNop())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if conf.Http.Port != "3000" {
		t.Fatalf("unexpected http port: %s", conf.Http.Port)
	}
	if conf.Backend.URL != "http://backend:8080" {
		t.Fatalf("unexpected backend url: %s", conf.Backend.URL)
	}
	if len(conf.Kafka.Brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(conf.Kafka.Brokers))
	}
	if conf.Jobs.DownloadPollInterval != 3*time.Second {
		t.Fatalf("unexpected download poll interval: %s", conf.Jobs.DownloadPollInterval)
	}
	if conf.Jobs.DownloadMaxDuration != 30*time.Minute {
		t.Fatalf("unexpected download max duration: %s", conf.Jobs.DownloadMaxDuration)
	}
	if conf.Minio.PublicURL != "http://minio:9000/media" {
		t.Fatalf("unexpected public url: %s", conf.Minio.PublicURL)
	}
	if conf.Session.CookieName != "megashop_sid" {
		t.Fatalf("unexpected cookie name: %s", conf.Session.CookieName)
	}
}

func TestLoadTrimsBackendURL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("API_URL", "http://localhost:8080/")

	conf, err := Load(logger.NewNop())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if conf.Backend.URL != "http://localhost:8080" {
		t.Fatalf("trailing slash not trimmed: %s", conf.Backend.URL)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	cases := []string{"POSTGRES_USER", "KAFKA_BROKERS", "KAFKA_TOPIC", "BUCKET_NAME"}

	for _, key := range cases {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, "")

			if _, err := Load(logger.NewNop()); err == nil {
				t.Fatalf("expected error when %s is missing", key)
			}
		})
	}
}

func TestLoadInvalidValues(t *testing.T) {
	cases := map[string]string{
		"HTTP_READ_TIMEOUT": "soon",
		"SESSION_SECURE":    "maybe",
		"REDIS_DB_ID":       "first",
		"LOGIN_RATE":        "-1",
		"API_URL":           "not a url",
	}

	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(key, value)

			if _, err := Load(logger.NewNop()); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestLoadRejectsNonPositiveIntervals(t *testing.T) {
	keys := []string{
		"API_TIMEOUT",
		"API_HEALTH_INTERVAL",
		"SESSION_TTL",
		"CATALOG_TTL",
		"IMPORT_POLL_INTERVAL",
		"LINK_POLL_INTERVAL",
		"DOWNLOAD_POLL_INTERVAL",
		"DOWNLOAD_MAX_DURATION",
	}

	for _, key := range keys {
		for _, value := range []string{"0s", "-1s"} {
			t.Run(key+"="+value, func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv(key, value)

				_, err := Load(logger.NewNop())
				if !errors.Is(err, e.ErrIncorrectEnvVariable) {
					t.Fatalf("expected ErrIncorrectEnvVariable for %s=%s, got %v", key, value, err)
				}
			})
		}
	}
}
