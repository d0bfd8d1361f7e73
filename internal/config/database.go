// internal/config/database.go
package config

import (
	"fmt"
	"strings"
)

// DSN renders the Postgres connection string for gorm's driver. The
// password key is omitted entirely when empty so local trust-auth setups
// work out of the box.
func (d *DatabaseConfig) DSN() string {
	parts := []string{
		"host=" + d.Host,
		"port=" + d.Port,
		"user=" + d.User,
	}
	if d.Password != "" {
		parts = append(parts, "password="+d.Password)
	}
	parts = append(parts,
		fmt.Sprintf("dbname=%s sslmode=%s", d.Database, d.SSLMode),
	)
	return strings.Join(parts, " ")
}
