// service/main_test.go
package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rajalakshmi-growphil/zoho-crm-integration/config"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/logger"
)

// TestMain runs setup before any tests in this package are executed.
func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// newTestConfig builds a config pointed at a fake accounts server and a
// throwaway token file.
func newTestConfig(t *testing.T, accountsURL string) *config.Config {
	cfg := &config.Config{}
	cfg.Zoho.ClientID = "test-client-id"
	cfg.Zoho.ClientSecret = "test-client-secret"
	cfg.Zoho.AccountsURL = accountsURL
	cfg.Zoho.RedirectURI = "http://localhost:8080/callback"
	cfg.TokenFile = filepath.Join(t.TempDir(), "tokens.json")
	return cfg
}
