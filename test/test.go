package test

import (
	"path/filepath"
	"testing"

	"github.com/memoflow/noted/server/profile"
)

// GetTestingProfile returns a profile pointing at a throwaway sqlite file.
func GetTestingProfile(t *testing.T) *profile.Profile {
	return &profile.Profile{
		Mode:         "dev",
		Addr:         "",
		Port:         8080,
		Data:         filepath.Join(t.TempDir(), "noted_test.db"),
		WebhookToken: "test-secret-token",
	}
}
