package server

import (
	"fmt"
	"time"
)

type Marshalled[S any] interface {
	trySeal(string) S
}

// seal marshalled object.
//
// this function CAN CAUSE PANIC if misconfiguration is found.
func TrySeal[S any](conf Marshalled[S]) S {
	return conf.trySeal("(root)")
}

type ServerConfigMarshall struct {
	Port             int32                 `yaml:"port"`
	Database         string                `yaml:"database"`
	SchemaRepository string                `yaml:"schemaRepository,omitempty"`
	Auth             *AuthConfigMarshall   `yaml:"auth"`
	Render           *RenderConfigMarshall `yaml:"render,omitempty"`
	SMTP             *SMTPConfigMarshall   `yaml:"smtp,omitempty"`
}

var _ Marshalled[*ServerConfig] = &ServerConfigMarshall{}

func (m *ServerConfigMarshall) trySeal(path string) *ServerConfig {
	render := m.Render
	if render == nil {
		render = &RenderConfigMarshall{}
	}

	var smtp *SMTPConfig
	if m.SMTP != nil {
		smtp = m.SMTP.trySeal(path + ".smtp")
	}

	return &ServerConfig{
		port:             required(m.Port, path+".port"),
		database:         required(m.Database, path+".database"),
		schemaRepository: m.SchemaRepository,
		auth:             nonnil(m.Auth, path+".auth").trySeal(path + ".auth"),
		render:           render.trySeal(path + ".render"),
		smtp:             smtp,
	}
}

type AuthConfigMarshall struct {
	SignKey     string `yaml:"signKey"`
	TokenExpiry string `yaml:"tokenExpiry,omitempty"`
}

func (m *AuthConfigMarshall) trySeal(path string) *AuthConfig {
	expiry := 24 * time.Hour
	if m.TokenExpiry != "" {
		expiry = duration(m.TokenExpiry, path+".tokenExpiry")
	}
	return &AuthConfig{
		signKey:     required(m.SignKey, path+".signKey"),
		tokenExpiry: expiry,
	}
}

type RenderConfigMarshall struct {
	ChromePath string `yaml:"chromePath,omitempty"`
	Timeout    string `yaml:"timeout,omitempty"`
}

func (m *RenderConfigMarshall) trySeal(path string) *RenderConfig {
	timeout := 30 * time.Second
	if m.Timeout != "" {
		timeout = duration(m.Timeout, path+".timeout")
	}
	return &RenderConfig{
		chromePath: m.ChromePath,
		timeout:    timeout,
	}
}

type SMTPConfigMarshall struct {
	Host     string   `yaml:"host"`
	Port     int      `yaml:"port"`
	Username string   `yaml:"username,omitempty"`
	Password string   `yaml:"password,omitempty"`
	From     string   `yaml:"from"`
	Admins   []string `yaml:"admins,omitempty"`
}

func (m *SMTPConfigMarshall) trySeal(path string) *SMTPConfig {
	return &SMTPConfig{
		host:     required(m.Host, path+".host"),
		port:     required(m.Port, path+".port"),
		username: m.Username,
		password: m.Password,
		from:     required(m.From, path+".from"),
		admins:   m.Admins,
	}
}

func nonnil[T any](v *T, path string) *T {
	if v == nil {
		panic(path + " is required")
	}
	return v
}

func required[T comparable](v T, path string) T {
	if v == *new(T) {
		panic(path + " is required")
	}
	return v
}

func duration(v string, path string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(fmt.Errorf("%s can not be parsed: %w", path, err))
	}
	return d
}
