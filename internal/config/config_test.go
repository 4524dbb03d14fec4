package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PULSE_SOURCE_WORKBOOK_PATH", "transactions.xlsx")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "Sheet1", cfg.Source.Worksheet)
	assert.Equal(t, "Date", cfg.Source.DateColumn)
	assert.Equal(t, "Customer", cfg.Source.CustomerColumn)
	assert.Equal(t, 60*time.Second, cfg.Source.RefreshInterval)
	assert.Equal(t, "build", cfg.Report.OutputDir)
	assert.Equal(t, "new_customers_report.html", cfg.Report.FileName)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := `
server:
  port: 9000
source:
  workbook_path: transactions.xlsx
  date_column: When
  customer_column: Who
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("PULSE_SOURCE_DATE_COLUMN", "TxDate")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "TxDate", cfg.Source.DateColumn)
	assert.Equal(t, "Who", cfg.Source.CustomerColumn)
}

func TestLoadExcludedCustomersList(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PULSE_SOURCE_WORKBOOK_PATH", "transactions.xlsx")
	t.Setenv("PULSE_SOURCE_EXCLUDED_CUSTOMERS", "Internal QA,Test Account")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Internal QA", "Test Account"}, cfg.Source.ExcludedCustomers)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "no source configured",
			env:  map[string]string{},
		},
		{
			name: "sheets source without credentials",
			env: map[string]string{
				"PULSE_SOURCE_SPREADSHEET_ID": "abc123",
			},
		},
		{
			name: "refresh interval too short",
			env: map[string]string{
				"PULSE_SOURCE_WORKBOOK_PATH":    "transactions.xlsx",
				"PULSE_SOURCE_REFRESH_INTERVAL": "5s",
			},
		},
		{
			name: "invalid log level",
			env: map[string]string{
				"PULSE_SOURCE_WORKBOOK_PATH": "transactions.xlsx",
				"PULSE_LOGGING_LEVEL":        "loud",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t, t.TempDir())
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestCredentialsPrefersEnv(t *testing.T) {
	dir := t.TempDir()
	credsFile := filepath.Join(dir, "sa.json")
	require.NoError(t, os.WriteFile(credsFile, []byte(`{"type":"service_account"}`), 0o600))

	src := SourceConfig{CredentialsFile: credsFile}

	t.Setenv("GOOGLE_SERVICE_ACCOUNT", `{"type":"env_account"}`)
	data, err := src.Credentials()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"env_account"}`, string(data))

	t.Setenv("GOOGLE_SERVICE_ACCOUNT", "")
	data, err = src.Credentials()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"service_account"}`, string(data))
}
