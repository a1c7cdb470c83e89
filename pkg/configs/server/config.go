package server

import (
	"time"
)

// ServerConfig is the sealed, immutable server configuration.
//
// To get one, use `Unmarshal` or `LoadServerConfig`.
type ServerConfig struct {
	port             int32
	database         string
	schemaRepository string
	auth             *AuthConfig
	render           *RenderConfig
	smtp             *SMTPConfig
}

func (c *ServerConfig) Port() int32 {
	return c.port
}

// Connection string for database.
func (c *ServerConfig) Database() string {
	return c.database
}

// Directory holding the versioned schema scripts.
func (c *ServerConfig) SchemaRepository() string {
	return c.schemaRepository
}

func (c *ServerConfig) Auth() *AuthConfig {
	return c.auth
}

func (c *ServerConfig) Render() *RenderConfig {
	return c.render
}

// SMTP returns nil when mail is not configured. The server then runs
// without notifications.
func (c *ServerConfig) SMTP() *SMTPConfig {
	return c.smtp
}

type AuthConfig struct {
	signKey     string
	tokenExpiry time.Duration
}

// HMAC key signing session tokens.
func (a *AuthConfig) SignKey() []byte {
	return []byte(a.signKey)
}

func (a *AuthConfig) TokenExpiry() time.Duration {
	return a.tokenExpiry
}

type RenderConfig struct {
	chromePath string
	timeout    time.Duration
}

// Path of the headless Chrome binary. Empty means lookup on PATH.
func (r *RenderConfig) ChromePath() string {
	return r.chromePath
}

func (r *RenderConfig) Timeout() time.Duration {
	return r.timeout
}

type SMTPConfig struct {
	host     string
	port     int
	username string
	password string
	from     string
	admins   []string
}

func (s *SMTPConfig) Host() string {
	return s.host
}

func (s *SMTPConfig) Port() int {
	return s.port
}

func (s *SMTPConfig) Username() string {
	return s.username
}

func (s *SMTPConfig) Password() string {
	return s.password
}

func (s *SMTPConfig) From() string {
	return s.from
}

// Admin mailboxes alerted on registrations and orders.
func (s *SMTPConfig) Admins() []string {
	return s.admins
}
