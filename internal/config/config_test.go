package config

import (
	"os"
	"testing"
)

var requiredEnv = map[string]string{
	"DATABASE_USER":     "jobportal",
	"DATABASE_PASSWORD": "secret",
	"DATABASE_HOST":     "localhost",
	"DATABASE_PORT":     "5432",
	"DATABASE_NAME":     "jobportal",
	"SESSION_KEY":       "c2Vzc2lvbi1rZXk=",
	"JWT_SIGNING_KEY":   "and0LXNpZ25pbmcta2V5",
	"ENV":               "dev",
	"ADMIN_EMAIL":       "admin@example.com",
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	for k, v := range requiredEnv {
		k := k
		old, had := os.LookupEnv(k)
		if err := os.Setenv(k, v); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() {
			if had {
				os.Setenv(k, old)
			} else {
				os.Unsetenv(k)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("JOBS_PER_PAGE")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.JobsPerPage != 10 {
		t.Errorf("JobsPerPage = %d, want 10", cfg.JobsPerPage)
	}
	if cfg.Port != "9876" {
		t.Errorf("Port = %s, want 9876", cfg.Port)
	}
}

func TestLoadConfigRejectsNonPositivePageSize(t *testing.T) {
	setRequiredEnv(t)
	for _, v := range []string{"0", "-5"} {
		os.Setenv("JOBS_PER_PAGE", v)
		if _, err := LoadConfig(); err == nil {
			t.Errorf("JOBS_PER_PAGE=%s must be rejected", v)
		}
	}
	os.Unsetenv("JOBS_PER_PAGE")
}

func TestLoadConfigMissingRequiredKey(t *testing.T) {
	setRequiredEnv(t)
	os.Unsetenv("DATABASE_USER")
	if _, err := LoadConfig(); err == nil {
		t.Error("missing DATABASE_USER must fail")
	}
}
