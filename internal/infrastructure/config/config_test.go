package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"PORTAL_APP_NAME":                    os.Getenv("PORTAL_APP_NAME"),
		"PORTAL_APP_ENV":                     os.Getenv("PORTAL_APP_ENV"),
		"PORTAL_APP_PORT":                    os.Getenv("PORTAL_APP_PORT"),
		"PORTAL_DATABASE_HOST":               os.Getenv("PORTAL_DATABASE_HOST"),
		"PORTAL_DATABASE_PORT":               os.Getenv("PORTAL_DATABASE_PORT"),
		"PORTAL_DATABASE_MAX_OPEN_CONNS":     os.Getenv("PORTAL_DATABASE_MAX_OPEN_CONNS"),
		"PORTAL_DATABASE_MAX_IDLE_CONNS":     os.Getenv("PORTAL_DATABASE_MAX_IDLE_CONNS"),
		"PORTAL_ATTENDANCE_OFFICE_LATITUDE":  os.Getenv("PORTAL_ATTENDANCE_OFFICE_LATITUDE"),
		"PORTAL_ATTENDANCE_ALLOWED_RADIUS_M": os.Getenv("PORTAL_ATTENDANCE_ALLOWED_RADIUS_M"),
		"PORTAL_ATTENDANCE_TIMEZONE":         os.Getenv("PORTAL_ATTENDANCE_TIMEZONE"),
		"PORTAL_STORAGE_BACKEND":             os.Getenv("PORTAL_STORAGE_BACKEND"),
		"PORTAL_JWT_SECRET":                  os.Getenv("PORTAL_JWT_SECRET"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "holycity-portal", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "portal", cfg.Database.DBName)
		assert.InDelta(t, -6.914744, cfg.Attendance.OfficeLatitude, 1e-9)
		assert.InDelta(t, 107.609810, cfg.Attendance.OfficeLongitude, 1e-9)
		assert.Equal(t, 5.0, cfg.Attendance.AllowedRadiusM)
		assert.Equal(t, "Asia/Jakarta", cfg.Attendance.Timezone)
		assert.Equal(t, "local", cfg.Storage.Backend)
		assert.Equal(t, "data/attendance_photos", cfg.Storage.EvidenceDir)
	})

	t.Run("loads values from environment variables with PORTAL prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("PORTAL_APP_NAME", "test-portal")
		os.Setenv("PORTAL_APP_PORT", "9000")
		os.Setenv("PORTAL_DATABASE_HOST", "testdb.local")
		os.Setenv("PORTAL_DATABASE_PORT", "5433")
		os.Setenv("PORTAL_ATTENDANCE_ALLOWED_RADIUS_M", "25")
		os.Setenv("PORTAL_ATTENDANCE_TIMEZONE", "UTC")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-portal", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 25.0, cfg.Attendance.AllowedRadiusM)
		assert.Equal(t, "UTC", cfg.Attendance.Timezone)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("PORTAL_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("PORTAL_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown storage backend", func(t *testing.T) {
		clearEnv()
		os.Setenv("PORTAL_STORAGE_BACKEND", "ftp")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.backend")
	})

	t.Run("rejects invalid attendance timezone", func(t *testing.T) {
		clearEnv()
		os.Setenv("PORTAL_ATTENDANCE_TIMEZONE", "Mars/Olympus_Mons")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "attendance.timezone")
	})

	t.Run("rejects out-of-range office coordinate", func(t *testing.T) {
		clearEnv()
		os.Setenv("PORTAL_ATTENDANCE_OFFICE_LATITUDE", "123.45")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "office_latitude")
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		clearEnv()
		os.Setenv("PORTAL_APP_ENV", "production")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		User:     "portal",
		Password: "p@ss:word/1",
		DBName:   "portal",
		SSLMode:  "require",
	}

	dsn := cfg.DSN()

	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "db.internal:5432")
	assert.Contains(t, dsn, "sslmode=require")
	// Special characters in the password must be escaped
	assert.NotContains(t, dsn, "p@ss:word/1")
}

func TestAttendanceConfigLocation(t *testing.T) {
	cfg := AttendanceConfig{Timezone: "Asia/Jakarta"}
	loc := cfg.Location()
	assert.Equal(t, "Asia/Jakarta", loc.String())
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}
