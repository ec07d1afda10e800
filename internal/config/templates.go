package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Fig Tracker Configuration

[cycle]
# Grid policy: "month" lists every trading day of the cycle month,
# "count" lists a fixed number of trading days from the start date
policy = "month"
# Cycle year and month
year = 2026
month = 8
# Start date for the "count" policy (ISO date, defaults to the 1st)
start = ""
# Number of trading days for the "count" policy
count = 22
# Extra non-trading dates beyond the exchange calendar
holidays = []

[feed]
# Record source: "local" (database only), "csv" or "json" (remote sheet)
mode = "local"
# Published sheet export URLs for csv/json modes
records_url = ""
credentials_url = ""
capital_url = ""
# Fetch timeout (e.g., "15s")
timeout = "15s"

[capital]
# Starting balance when no capital feed is configured
initial = 0.0

[access]
# Admin panel credentials
admin_login = "FIGADM"
admin_password = "FIGADM"
# Password required to reset the cycle (empty disables reset)
reset_password = ""
# How long a failed-login flag stays raised
error_ttl = "2s"

[ui]
# Enable colored output
color_enabled = true
# Delay between simulated tape prints
tape_interval = "1200ms"
`

const credentialsTemplate = `# Fig Tracker Credentials
# WARNING: Keep this file secure! Do not commit to version control.

[openai]
api_key = ""
model = ""
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return fmt.Errorf("config file not found, created template at %s", path)
}

func createTemplateCredentials(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "credentials.toml")
	// Use restricted permissions for credentials file
	if err := os.WriteFile(path, []byte(credentialsTemplate), 0600); err != nil {
		return fmt.Errorf("writing credentials template: %w", err)
	}

	return fmt.Errorf("credentials file not found, created template at %s", path)
}
