package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecity-api/internal/database"
	"ecity-api/internal/domain"
)

// setupCLI points the commands at a SQLite file in a temp dir
func setupCLI(t *testing.T) (cfgFile, dbFile string) {
	t.Helper()
	dir := t.TempDir()
	dbFile = filepath.Join(dir, "ecity.db")
	cfgFile = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("database:\n  driver: sqlite\n  name: "+dbFile+"\n"), 0o600))
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_NAME", "")
	return cfgFile, dbFile
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		seedFile = ""
		promoteRole = string(domain.RoleAdmin)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestMigrateSeedPromote(t *testing.T) {
	cfgFile, dbFile := setupCLI(t)

	out, err := run(t, "migrate", "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Migrations completed")

	out, err = run(t, "seed-departments", "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Created 4 of 4 departments")

	out, err = run(t, "seed-departments", "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Created 0 of 4 departments")

	db, err := database.New(database.Config{Driver: "sqlite", DSN: dbFile})
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.User{Email: "officer@city.gov", Name: "Officer", Role: domain.RoleCitizen}).Error)
	require.NoError(t, database.Close(db))

	out, err = run(t, "promote", "officer@city.gov", "--config", cfgFile)
	require.NoError(t, err)
	assert.Contains(t, out, "is now admin")

	_, err = run(t, "promote", "nobody@city.gov", "--config", cfgFile)
	assert.Error(t, err)

	_, err = run(t, "promote", "officer@city.gov", "--role", "mayor", "--config", cfgFile)
	assert.EqualError(t, err, "role must be one of: citizen, admin")
}

func TestSeedFromFile(t *testing.T) {
	cfgFile, _ := setupCLI(t)
	seed := filepath.Join(t.TempDir(), "departments.yaml")
	require.NoError(t, os.WriteFile(seed, []byte("- name: Parks\n  head: Head Gardener\n- name: Transport\n"), 0o600))

	out, err := run(t, "seed-departments", "--config", cfgFile, "--file", seed)
	require.NoError(t, err)
	assert.Contains(t, out, "Created 2 of 2 departments")
}

func TestLoadDepartments_BadFile(t *testing.T) {
	_, err := loadDepartments(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
