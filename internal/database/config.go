package database

import (
	"fmt"
)

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	// Driver specifies the database driver (postgres, sqlite)
	Driver string

	// PostgreSQL-specific configuration
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	// SQLite-specific configuration
	Path string
}

// String returns a string representation with sensitive data masked
func (c *DatabaseConfig) String() string {
	return fmt.Sprintf("DatabaseConfig{Driver: %s, Host: %s, Port: %s, User: %s, Password: [REDACTED], Name: %s, SSLMode: %s, Path: %s}",
		c.Driver, c.Host, c.Port, c.User, c.Name, c.SSLMode, c.Path)
}

// Validate checks that the fields required by the selected driver are set
func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case "postgres", "postgresql":
		if c.Host == "" || c.Name == "" || c.User == "" {
			return fmt.Errorf("postgres requires host, name and user (got %s)", c)
		}
	case "sqlite", "":
		if c.Path == "" {
			return fmt.Errorf("sqlite requires a database path")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
	return nil
}

// DSN builds a Data Source Name string based on the driver. The sqlite DSN
// enables foreign keys and a busy timeout: the recipe schema leans on FK
// relations, and concurrent writers otherwise hit SQLITE_BUSY immediately.
func (c *DatabaseConfig) DSN() string {
	switch c.Driver {
	case "postgres", "postgresql":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
	case "sqlite", "":
		return fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", c.Path)
	default:
		return ""
	}
}
