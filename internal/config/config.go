package config

import (
	"encoding/base64"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

type Config struct {
	Port              string
	DatabaseUser      string
	DatabasePassword  string
	DatabaseHost      string
	DatabasePort      string
	DatabaseName      string
	DatabaseSSLMode   string
	SessionKey        []byte
	JwtSigningKey     []byte
	Env               string // either prod or dev, disables secure headers and few other bits
	AdminEmail        string
	JobsPerPage       int // configures how many jobs are shown per page result
	ApplicantsPerPage int
	CompaniesPerPage  int
	SentryDSN         string
}

func LoadConfig() (Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "9876"
	}
	databaseUser := os.Getenv("DATABASE_USER")
	if databaseUser == "" {
		return Config{}, errors.New("DATABASE_USER cannot be empty")
	}
	databasePassword := os.Getenv("DATABASE_PASSWORD")
	if databasePassword == "" {
		return Config{}, errors.New("DATABASE_PASSWORD cannot be empty")
	}
	databaseHost := os.Getenv("DATABASE_HOST")
	if databaseHost == "" {
		return Config{}, errors.New("DATABASE_HOST cannot be empty")
	}
	databasePort := os.Getenv("DATABASE_PORT")
	if databasePort == "" {
		return Config{}, errors.New("DATABASE_PORT cannot be empty")
	}
	databaseName := os.Getenv("DATABASE_NAME")
	if databaseName == "" {
		return Config{}, errors.New("DATABASE_NAME cannot be empty")
	}
	databaseSSLMode := os.Getenv("DATABASE_SSL_MODE")
	if databaseSSLMode == "" {
		databaseSSLMode = "require"
	}
	sessionKeyString := os.Getenv("SESSION_KEY")
	if sessionKeyString == "" {
		return Config{}, errors.New("SESSION_KEY cannot be empty")
	}
	sessionKeyBytes, err := base64.StdEncoding.DecodeString(sessionKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode session key to bytes")
	}
	jwtSigningKeyString := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKeyString == "" {
		return Config{}, errors.New("JWT_SIGNING_KEY cannot be empty")
	}
	jwtSigningKeyBytes, err := base64.StdEncoding.DecodeString(jwtSigningKeyString)
	if err != nil {
		return Config{}, errors.Wrapf(err, "unable to decode jwt signing key to bytes")
	}
	env := os.Getenv("ENV")
	if env == "" {
		return Config{}, errors.New("ENV cannot be empty")
	}
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		return Config{}, errors.New("ADMIN_EMAIL cannot be empty")
	}
	sentryDSN := os.Getenv("SENTRY_DSN")
	jobsPerPage := 10
	if jobsPerPageStr := os.Getenv("JOBS_PER_PAGE"); jobsPerPageStr != "" {
		jobsPerPage, err = strconv.Atoi(jobsPerPageStr)
		if err != nil {
			return Config{}, errors.Wrapf(err, "unable to convert JOBS_PER_PAGE to int")
		}
		if jobsPerPage < 1 {
			return Config{}, errors.New("JOBS_PER_PAGE must be positive")
		}
	}

	return Config{
		Port:              port,
		DatabaseUser:      databaseUser,
		DatabasePassword:  databasePassword,
		DatabaseHost:      databaseHost,
		DatabasePort:      databasePort,
		DatabaseName:      databaseName,
		DatabaseSSLMode:   databaseSSLMode,
		SessionKey:        sessionKeyBytes,
		JwtSigningKey:     jwtSigningKeyBytes,
		Env:               env,
		AdminEmail:        adminEmail,
		JobsPerPage:       jobsPerPage,
		ApplicantsPerPage: 20,
		CompaniesPerPage:  10,
		SentryDSN:         sentryDSN,
	}, nil
}
