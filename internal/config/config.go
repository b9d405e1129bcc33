// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Store   StoreConfig
	LLM     LLMConfig
	Cache   CacheConfig
	Archive ArchiveConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// DataConfig locates the session data directory where uploaded
// sales/inventory files live between requests.
type DataConfig struct {
	DataDir   string
	EventsDir string
}

// StoreConfig selects the SQL backend for uploaded tables. The default is a
// local SQLite file; a Postgres DSN switches the driver.
type StoreConfig struct {
	Driver string
	DSN    string
}

type LLMConfig struct {
	BaseURL        string
	Model          string
	TimeoutSeconds int
	APIKeys        []string
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	ResponseTTLSeconds int
}

// ArchiveConfig enables mirroring uploaded files to S3-compatible storage.
type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8000")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 30)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 60)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
		viper.SetDefault("APP_DATA_DIR", "./data")
		viper.SetDefault("APP_EVENTS_DIR", "./data")
		viper.SetDefault("STORE_DRIVER", "sqlite")
		viper.SetDefault("STORE_DSN", "./biznexus_local.db")
		viper.SetDefault("LLM_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai")
		viper.SetDefault("LLM_MODEL", "gemini-2.5-flash")
		viper.SetDefault("LLM_TIMEOUT_SECONDS", 60)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_RESPONSE_TTL_SECONDS", 300)
		viper.SetDefault("ARCHIVE_ENABLED", false)
		viper.SetDefault("ARCHIVE_ENDPOINT", "")
		viper.SetDefault("ARCHIVE_ACCESS_KEY", "")
		viper.SetDefault("ARCHIVE_SECRET_KEY", "")
		viper.SetDefault("ARCHIVE_BUCKET", "")
		viper.SetDefault("ARCHIVE_USE_SSL", true)

		// Read from environment variables
		viper.AutomaticEnv()

		// Ensure the data directory exists
		ensureDir(viper.GetString("APP_DATA_DIR"))

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Data: DataConfig{
				DataDir:   viper.GetString("APP_DATA_DIR"),
				EventsDir: viper.GetString("APP_EVENTS_DIR"),
			},
			Store: StoreConfig{
				Driver: viper.GetString("STORE_DRIVER"),
				DSN:    viper.GetString("STORE_DSN"),
			},
			LLM: LLMConfig{
				BaseURL:        viper.GetString("LLM_BASE_URL"),
				Model:          viper.GetString("LLM_MODEL"),
				TimeoutSeconds: viper.GetInt("LLM_TIMEOUT_SECONDS"),
				APIKeys:        loadAPIKeys(),
			},
			Cache: CacheConfig{
				Enabled:            viper.GetBool("CACHE_ENABLED"),
				RedisURL:           viper.GetString("REDIS_URL"),
				RedisHost:          viper.GetString("REDIS_HOST"),
				RedisPort:          viper.GetString("REDIS_PORT"),
				RedisPassword:      viper.GetString("REDIS_PASSWORD"),
				RedisDB:            viper.GetInt("REDIS_DB"),
				ResponseTTLSeconds: viper.GetInt("CACHE_RESPONSE_TTL_SECONDS"),
			},
			Archive: ArchiveConfig{
				Enabled:   viper.GetBool("ARCHIVE_ENABLED"),
				Endpoint:  viper.GetString("ARCHIVE_ENDPOINT"),
				AccessKey: viper.GetString("ARCHIVE_ACCESS_KEY"),
				SecretKey: viper.GetString("ARCHIVE_SECRET_KEY"),
				Bucket:    viper.GetString("ARCHIVE_BUCKET"),
				UseSSL:    viper.GetBool("ARCHIVE_USE_SSL"),
			},
		}
	})

	return instance
}

// loadAPIKeys collects LLM_API_KEY plus numbered keys (LLM_API_KEY_2, ...)
// so a pool of keys can be rotated across requests.
func loadAPIKeys() []string {
	var keys []string
	if key := viper.GetString("LLM_API_KEY"); key != "" {
		keys = append(keys, key)
	}
	for i := 2; ; i++ {
		key := os.Getenv("LLM_API_KEY_" + strconv.Itoa(i))
		if key == "" {
			break
		}
		keys = append(keys, key)
	}
	return keys
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
