package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Driver      string
	DatabaseURL string
	LogLevel    string
}

// Load reads an optional .env file (ENV_FILE overrides the path) and then
// the process environment. Variables already set win over the file.
func Load() (Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	driver := strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER")))
	if driver == "" {
		driver = DriverPostgres
	}
	switch driver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return Config{}, fmt.Errorf("DB_DRIVER must be one of: postgres, mysql, sqlite")
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "warn"
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		built, err := buildDSN(driver)
		if err != nil {
			return Config{}, err
		}
		databaseURL = built
	}

	return Config{
		Driver:      driver,
		DatabaseURL: databaseURL,
		LogLevel:    logLevel,
	}, nil
}

func buildDSN(driver string) (string, error) {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	if name == "" {
		return "", fmt.Errorf("DATABASE_URL or DB_NAME required")
	}
	if host == "" {
		host = "localhost"
	}

	switch driver {
	case DriverSQLite:
		return name, nil

	case DriverMySQL:
		if port == "" {
			port = "3306"
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true",
			user, password, net.JoinHostPort(host, port), name), nil

	default:
		if port == "" {
			port = "5432"
		}
		dsn := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(host, port),
			Path:   "/" + name,
		}
		if user != "" {
			dsn.User = url.UserPassword(user, password)
		}
		return dsn.String(), nil
	}
}
