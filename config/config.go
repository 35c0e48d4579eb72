package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Storage drivers understood by STORAGEDRIVER.
const (
	StorageDriverJSON  = "json"
	StorageDriverMySQL = "mysql"
)

// Config holds the application's configuration values.
type Config struct {
	AppName       string `json:"appname"`
	AppEnv        string `json:"appenv"`
	AppPort       uint16 `json:"appport"`
	GinMode       string `json:"ginmode"`
	DataFile      string `json:"datafile"`
	StorageDriver string `json:"storagedriver"`
	TotalBeds     int    `json:"totalbeds"`
	DailyRate     int    `json:"dailyrate"`
	LogLevel      string `json:"loglevel"`
	LogFile       string `json:"logfile"`
	RateLimit     int    `json:"ratelimit"`
	DBHost        string `json:"dbhost"`
	DBPort        uint16 `json:"dbport"`
	DBName        string `json:"dbname"`
	DBUSER        string `json:"dbuser"`
	DBPass        string `json:"dbpass"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from an optional .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// A missing .env is fine: the tool is run from arbitrary directories.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Error loading .env file: %v", err)
		}
		config = FromEnv()
	})
	return config
}

// FromEnv builds a Config from the current environment, applying defaults for unset keys.
func FromEnv() *Config {
	return &Config{
		AppName:       envString("APPNAME", "Hospital Patient Manager"),
		AppEnv:        envString("APPENV", "development"),
		AppPort:       uint16(envUint("APPPORT", 8080, 16)),
		GinMode:       envString("GINMODE", "release"),
		DataFile:      envString("DATAFILE", "patients.json"),
		StorageDriver: envString("STORAGEDRIVER", StorageDriverJSON),
		TotalBeds:     envInt("TOTALBEDS", 50),
		DailyRate:     envInt("DAILYRATE", 150),
		LogLevel:      envString("LOGLEVEL", "warn"),
		LogFile:       envString("LOGFILE", "patient-manager.log"),
		RateLimit:     envInt("RATELIMIT", 60),
		DBHost:        envString("DBHOST", "localhost"),
		DBPort:        uint16(envUint("DBPORT", 3306, 16)),
		DBName:        os.Getenv("DBNAME"),
		DBUSER:        os.Getenv("DBUSER"),
		DBPass:        os.Getenv("DBPASS"),
	}
}

// ConnectMySQL establishes a connection to a MySQL database using the configuration values.
// With APPENV=test it opens a private in-memory SQLite database instead.
func ConnectMySQL() (*gorm.DB, error) {
	cfg := LoadConfig()
	if os.Getenv("APPENV") == "test" || cfg.AppEnv == "test" {
		dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}

	// Build the Data Source Name (DSN) using the configuration values.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect mysql %s:%d/%s: %w", cfg.DBHost, cfg.DBPort, cfg.DBName, err)
	}

	return db, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envUint(key string, fallback uint64, bits int) uint64 {
	if v, err := strconv.ParseUint(os.Getenv(key), 10, bits); err == nil {
		return v
	}
	return fallback
}
