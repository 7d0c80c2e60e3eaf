package cli

import (
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/tsforge-labs/tsforge/internal/config"
)

func TestConfigSetCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	defer rootCmd.SetArgs(nil)

	rootCmd.SetArgs([]string{"config", "set", "scope", "@acme"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	if _, err := os.Stat(config.FilePath()); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if got := config.Get("scope"); got != "@acme" {
		t.Errorf("Get(scope) = %q, want @acme", got)
	}
}
