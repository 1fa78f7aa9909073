package profile

import (
	"fmt"

	"github.com/spf13/viper"
)

// Profile is the runtime configuration of the service, resolved once at
// startup from flags and NOTED_* environment variables.
type Profile struct {
	// Mode is "dev" or "prod".
	Mode string
	// Addr is the bind address.
	Addr string
	// Port is the bind port.
	Port int
	// Data is the sqlite database path. Empty means the in-memory store.
	Data string
	// WebhookToken is the shared secret expected in the X-Webhook-Token
	// header. Empty disables the check.
	WebhookToken string
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// DSN returns the sqlite connection string for the configured data path.
func (p *Profile) DSN() string {
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)", p.Data)
}

// GetProfile resolves the profile from viper.
func GetProfile() (*Profile, error) {
	profile := Profile{
		Mode:         viper.GetString("mode"),
		Addr:         viper.GetString("addr"),
		Port:         viper.GetInt("port"),
		Data:         viper.GetString("data"),
		WebhookToken: viper.GetString("webhook-token"),
	}

	if profile.Mode != "dev" && profile.Mode != "prod" {
		profile.Mode = "dev"
	}
	if profile.Port <= 0 || profile.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", profile.Port)
	}
	return &profile, nil
}
