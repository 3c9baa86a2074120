package cfg

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
	"github.com/profibuy/storefront/pkg/e"
	"github.com/profibuy/storefront/pkg/logger"
)

type Config struct {
	Http    *HTTPConfig
	Grpc    *GRPCConfig
	Backend *BackendCfg
	Session *SessionCfg
	Redis   *RedisCfg
	Db      *PGDBCfg
	Kafka   *KafkaCfg
	Minio   *MinIOCfg
	Auth    *AuthCfg
	Jobs    *JobsCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	SwaggerURL   string
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

// BackendCfg описывает внешний бэкенд, которому делегируется вся бизнес-логика.
type BackendCfg struct {
	URL            string
	Timeout        time.Duration
	HealthInterval time.Duration
}

type SessionCfg struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	CatalogTTL  time.Duration
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN строка подключения в формате key=value для pgx.
func (c *PGDBCfg) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Бакет для медиа из админки
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	PublicURL         string // Базовый URL, по которому браузер видит объекты бакета
	UploadFilesLimit  int    // Макс. число одновременных загрузок в S3
}

type AuthCfg struct {
	JWTSecret   string  // Пустой секрет — claims читаются без проверки подписи
	LoginRate   float64 // попыток логина в секунду на IP
	LoginBurst  int
	AdminRole   string
	TokenLeeway time.Duration
}

// JobsCfg — интервалы опроса долгих операций поставщиков.
type JobsCfg struct {
	ImportPollInterval   time.Duration
	LinkPollInterval     time.Duration
	DownloadPollInterval time.Duration
	DownloadMaxDuration  time.Duration
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf(".env file could not be loaded: %v", err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	backend, err := loadBackendCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	session, err := loadSessionCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	auth, err := loadAuthCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	jobs, err := loadJobsCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:    http,
		Grpc:    loadGRPCConfig(),
		Backend: backend,
		Session: session,
		Redis:   redis,
		Db:      db,
		Kafka:   kafka,
		Minio:   minio,
		Auth:    auth,
		Jobs:    jobs,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "3000"
		defaultReadTimeout  = 30 * time.Second
		defaultWriteTimeout = 5 * time.Minute
		defaultIdleTimeout  = 60 * time.Second
		defaultSwaggerURL   = "http://localhost:3000/swagger/doc.json"
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		SwaggerURL:   getEnvOrDefault("SWAGGER_URL", defaultSwaggerURL),
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadBackendCfg(log logger.Logger) (*BackendCfg, error) {
	const (
		defaultURL            = "http://backend:8080"
		defaultTimeout        = 30 * time.Second
		defaultHealthInterval = 15 * time.Second
	)

	rawURL := strings.TrimRight(getEnvOrDefault("API_URL", defaultURL), "/")
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		log.Errorf(err, "invalid API_URL")
		return nil, err
	}

	timeout, err := parsePositiveDurationEnv("API_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid API_TIMEOUT")
		return nil, err
	}

	healthInterval, err := parsePositiveDurationEnv("API_HEALTH_INTERVAL", defaultHealthInterval)
	if err != nil {
		log.Errorf(err, "invalid API_HEALTH_INTERVAL")
		return nil, err
	}

	return &BackendCfg{
		URL:            rawURL,
		Timeout:        timeout,
		HealthInterval: healthInterval,
	}, nil
}

func loadSessionCfg(log logger.Logger) (*SessionCfg, error) {
	const (
		defaultCookieName = "megashop_sid"
		defaultTTL        = 30 * 24 * time.Hour
		defaultSecure     = false
	)

	ttl, err := parsePositiveDurationEnv("SESSION_TTL", defaultTTL)
	if err != nil {
		log.Errorf(err, "invalid SESSION_TTL")
		return nil, err
	}

	secure, err := strconv.ParseBool(getEnvOrDefault("SESSION_SECURE", strconv.FormatBool(defaultSecure)))
	if err != nil {
		log.Errorf(err, "invalid SESSION_SECURE")
		return nil, err
	}

	return &SessionCfg{
		CookieName: getEnvOrDefault("SESSION_COOKIE", defaultCookieName),
		TTL:        ttl,
		Secure:     secure,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultCatalogTTL   = 5 * time.Minute
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	catalogTTL, err := parsePositiveDurationEnv("CATALOG_TTL", defaultCatalogTTL)
	if err != nil {
		log.Errorf(err, "invalid CATALOG_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		CatalogTTL:  catalogTTL,
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	brokers := strings.Split(brokerStr, ",")

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC environment variable is required")
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             topic,
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL       = false
		defaultEndpoint     = "minio:9000"
		defaultUploadsLimit = 4
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	bucket := getEnv("BUCKET_NAME")
	if bucket == "" {
		err := fmt.Errorf("BUCKET_NAME is required")
		log.Errorf(err, "missing BUCKET_NAME")
		return nil, err
	}

	limit, err := parseIntEnv("MINIO_UPLOAD_LIMIT", defaultUploadsLimit)
	if err != nil {
		log.Errorf(err, "invalid MINIO_UPLOAD_LIMIT")
		return nil, err
	}

	endpoint := getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint)
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	publicURL := getEnvOrDefault("MINIO_PUBLIC_URL", fmt.Sprintf("%s://%s/%s", scheme, endpoint, bucket))

	return &MinIOCfg{
		MinioEndpoint:     endpoint,
		BucketName:        bucket,
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		PublicURL:         strings.TrimRight(publicURL, "/"),
		UploadFilesLimit:  limit,
	}, nil
}

func loadAuthCfg(log logger.Logger) (*AuthCfg, error) {
	const (
		defaultLoginRate   = "0.2" // одна попытка в 5 секунд
		defaultLoginBurst  = 5
		defaultAdminRole   = "admin"
		defaultTokenLeeway = 30 * time.Second
	)

	rate, err := strconv.ParseFloat(getEnvOrDefault("LOGIN_RATE", defaultLoginRate), 64)
	if err != nil || rate <= 0 {
		if err == nil {
			err = e.ErrIncorrectEnvVariable
		}
		log.Errorf(err, "invalid LOGIN_RATE")
		return nil, err
	}

	burst, err := parseIntEnv("LOGIN_BURST", defaultLoginBurst)
	if err != nil {
		log.Errorf(err, "invalid LOGIN_BURST")
		return nil, err
	}

	leeway, err := parseDurationEnv("TOKEN_LEEWAY", defaultTokenLeeway)
	if err != nil {
		log.Errorf(err, "invalid TOKEN_LEEWAY")
		return nil, err
	}

	return &AuthCfg{
		JWTSecret:   getEnv("JWT_SECRET"),
		LoginRate:   rate,
		LoginBurst:  burst,
		AdminRole:   getEnvOrDefault("ADMIN_ROLE", defaultAdminRole),
		TokenLeeway: leeway,
	}, nil
}

func loadJobsCfg(log logger.Logger) (*JobsCfg, error) {
	const (
		defaultImportPoll   = time.Second
		defaultLinkPoll     = time.Second
		defaultDownloadPoll = 3 * time.Second
		defaultDownloadMax  = 30 * time.Minute
	)

	importPoll, err := parsePositiveDurationEnv("IMPORT_POLL_INTERVAL", defaultImportPoll)
	if err != nil {
		log.Errorf(err, "invalid IMPORT_POLL_INTERVAL")
		return nil, err
	}

	linkPoll, err := parsePositiveDurationEnv("LINK_POLL_INTERVAL", defaultLinkPoll)
	if err != nil {
		log.Errorf(err, "invalid LINK_POLL_INTERVAL")
		return nil, err
	}

	downloadPoll, err := parsePositiveDurationEnv("DOWNLOAD_POLL_INTERVAL", defaultDownloadPoll)
	if err != nil {
		log.Errorf(err, "invalid DOWNLOAD_POLL_INTERVAL")
		return nil, err
	}

	downloadMax, err := parsePositiveDurationEnv("DOWNLOAD_MAX_DURATION", defaultDownloadMax)
	if err != nil {
		log.Errorf(err, "invalid DOWNLOAD_MAX_DURATION")
		return nil, err
	}

	return &JobsCfg{
		ImportPollInterval:   importPoll,
		LinkPollInterval:     linkPoll,
		DownloadPollInterval: downloadPoll,
		DownloadMaxDuration:  downloadMax,
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

// parsePositiveDurationEnv — то же для интервалов тикеров и TTL: ноль и отрицательные значения недопустимы.
func parsePositiveDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	d, err := parseDurationEnv(key, defaultValue)
	if err != nil {
		return defaultValue, err
	}
	if d <= 0 {
		return defaultValue, e.Wrap(key, e.ErrIncorrectEnvVariable)
	}

	return d, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
