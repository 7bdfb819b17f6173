package config

import (
	"crypto/tls"
	"fmt"
)

// TLSEnabled reports whether the configuration asks for TLS termination.
func (c *Config) TLSEnabled() bool {
	return c.Security.UseHTTPS
}

// CheckTLSMaterial verifies that the configured certificate and key load as
// a matching pair. A no-op when usehttps is off.
func CheckTLSMaterial(cfg *Config) error {
	if !cfg.Security.UseHTTPS {
		return nil
	}
	if _, err := tls.LoadX509KeyPair(cfg.Security.WOPICert, cfg.Security.WOPIKey); err != nil {
		return fmt.Errorf("TLS material (%s, %s): %w", cfg.Security.WOPICert, cfg.Security.WOPIKey, err)
	}
	return nil
}

// ServerTLSConfig builds the tls.Config for the listener when usehttps is
// set. Returns nil when TLS termination is off.
func ServerTLSConfig(cfg *Config) (*tls.Config, error) {
	if !cfg.Security.UseHTTPS {
		return nil, nil
	}
	cert, err := tls.LoadX509KeyPair(cfg.Security.WOPICert, cfg.Security.WOPIKey)
	if err != nil {
		return nil, fmt.Errorf("TLS material (%s, %s): %w", cfg.Security.WOPICert, cfg.Security.WOPIKey, err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
