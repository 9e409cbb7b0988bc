package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	env_utils "workspaces-backend/internal/util/env"
	"workspaces-backend/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

const (
	ImageStorageLocal = "local"
	ImageStorageMinio = "minio"
	ImageStorageAzure = "azure"

	defaultJWTSecret = "change-me-in-production"
)

type EnvVariables struct {
	IsTesting bool
	EnvMode   env_utils.EnvMode `env:"ENV_MODE" env-default:"development"`

	// HTTP(S) configuration
	EnableHTTPS   bool   `env:"ENABLE_HTTPS"    env-default:"false"`
	HTTPSPort     string `env:"HTTPS_PORT"      env-default:"443"`
	HTTPPort      string `env:"HTTP_PORT"       env-default:"4010"`
	CertsDir      string `env:"CERTS_DIR"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" env-default:"http://localhost:4010"`

	JWTSecret string `env:"JWT_SECRET" env-default:"change-me-in-production"`

	// image hosting
	ImageStorageType string  `env:"IMAGE_STORAGE_TYPE" env-default:"local"`
	ImageFolder      string  `env:"IMAGE_FOLDER"`
	TempFolder       string  `env:"TEMP_FOLDER"`
	MaxImageSizeMB   int64   `env:"MAX_IMAGE_SIZE_MB"  env-default:"100"`
	ImageHostRPS     float64 `env:"IMAGE_HOST_RPS"     env-default:"0"`

	MinioEndpoint  string `env:"MINIO_ENDPOINT"`
	MinioAccessKey string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey string `env:"MINIO_SECRET_KEY"`
	MinioBucket    string `env:"MINIO_BUCKET"     env-default:"workspaces"`
	MinioUseSSL    bool   `env:"MINIO_USE_SSL"    env-default:"true"`

	AzureConnectionString string `env:"AZURE_CONNECTION_STRING"`
	AzureContainer        string `env:"AZURE_CONTAINER"         env-default:"workspaces"`

	AuditLogRetentionDays int  `env:"AUDIT_LOG_RETENTION_DAYS" env-default:"30"`
	SeedDemoData          bool `env:"SEED_DEMO_DATA"           env-default:"false"`
}

// MaxImageSizeBytes is the upload ceiling handed to the image hosts.
func (e EnvVariables) MaxImageSizeBytes() int64 {
	return e.MaxImageSizeMB * 1024 * 1024
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := findModuleRoot(cwd)

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			break
		}
	}

	if err := cleanenv.ReadEnv(&env); err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.HasSuffix(arg, ".test") || strings.HasPrefix(arg, "-test.") {
			env.IsTesting = true
			break
		}
	}

	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	if env.EnvMode == env_utils.EnvModeProduction && env.JWTSecret == defaultJWTSecret {
		log.Error("JWT_SECRET must be set in production")
		os.Exit(1)
	}

	dataRoot := filepath.Join(filepath.Dir(backendRoot), "workspaces-data")
	if env.IsTesting {
		dataRoot = filepath.Join(os.TempDir(), "workspaces-data-test")
	}

	if env.ImageFolder == "" {
		env.ImageFolder = filepath.Join(dataRoot, "images")
	}
	if env.TempFolder == "" {
		env.TempFolder = filepath.Join(dataRoot, "temp")
	}
	if env.CertsDir == "" {
		env.CertsDir = filepath.Join(dataRoot, "certs")
	}

	if env.MaxImageSizeMB <= 0 {
		log.Error("MAX_IMAGE_SIZE_MB must be positive", "value", env.MaxImageSizeMB)
		os.Exit(1)
	}

	switch env.ImageStorageType {
	case ImageStorageLocal:
	case ImageStorageMinio:
		if env.MinioEndpoint == "" || env.MinioAccessKey == "" || env.MinioSecretKey == "" {
			log.Error("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required for minio storage")
			os.Exit(1)
		}
	case ImageStorageAzure:
		if env.AzureConnectionString == "" {
			log.Error("AZURE_CONNECTION_STRING is required for azure storage")
			os.Exit(1)
		}
	default:
		log.Error("IMAGE_STORAGE_TYPE is invalid", "type", env.ImageStorageType)
		os.Exit(1)
	}

	env.PublicBaseURL = strings.TrimRight(env.PublicBaseURL, "/")

	log.Info("Environment variables loaded successfully!")
}

func findModuleRoot(start string) string {
	root := start
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root
		}

		parent := filepath.Dir(root)
		if parent == root {
			return start
		}

		root = parent
	}
}
