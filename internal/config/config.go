// Package config defines ServerConfig, the shape consumed from the
// external configuration loader, and a minimal Load helper
// that reads two of the persisted files the CLI collaborator manages:
// configuration.json and schema.graphql. configuration.schema.json is not
// read.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/samsarahq/go/oops"
)

// ConnectionConfig is ServerConfig.connection.
type ConnectionConfig struct {
	Endpoint string            `json:"endpoint"`
	Headers  map[string]string `json:"headers"`
}

// RequestConfig is ServerConfig.request.
type RequestConfig struct {
	HeadersArgument string   `json:"headers_argument"`
	HeadersTypeName string   `json:"headers_type_name"`
	ForwardHeaders  []string `json:"forward_headers"`
}

// ResponseConfig is ServerConfig.response.
type ResponseConfig struct {
	HeadersField   string   `json:"headers_field"`
	ResponseField  string   `json:"response_field"`
	TypeNamePrefix string   `json:"type_name_prefix"`
	TypeNameSuffix string   `json:"type_name_suffix"`
	ForwardHeaders []string `json:"forward_headers"`
}

// ServerConfig is the full configuration consumed by the bridge.
// SDL is loaded separately from schema.graphql and is not part of
// configuration.json.
type ServerConfig struct {
	Connection ConnectionConfig `json:"connection"`
	Request    RequestConfig    `json:"request"`
	Response   ResponseConfig   `json:"response"`
}

// Default fills in defaults for any field left at its Go zero value in
// cfg's request/response sub-structs.
func (cfg ServerConfig) Default() ServerConfig {
	if cfg.Request.HeadersArgument == "" {
		cfg.Request.HeadersArgument = "_headers"
	}
	if cfg.Request.HeadersTypeName == "" {
		cfg.Request.HeadersTypeName = "_HeaderMap"
	}
	if cfg.Response.HeadersField == "" {
		cfg.Response.HeadersField = "headers"
	}
	if cfg.Response.ResponseField == "" {
		cfg.Response.ResponseField = "response"
	}
	if cfg.Response.TypeNamePrefix == "" {
		cfg.Response.TypeNamePrefix = "_"
	}
	if cfg.Response.TypeNameSuffix == "" {
		cfg.Response.TypeNameSuffix = "Response"
	}
	return cfg
}

// Load reads configuration.json and schema.graphql from dir, as written by
// the external CLI collaborator. It does
// not validate configuration.json against configuration.schema.json; that
// validation belongs to the CLI collaborator, not this runtime.
func Load(dir string) (ServerConfig, string, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "configuration.json"))
	if err != nil {
		return ServerConfig{}, "", oops.Wrapf(err, "reading configuration.json")
	}

	var cfg ServerConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return ServerConfig{}, "", oops.Wrapf(err, "parsing configuration.json")
	}

	sdl, err := os.ReadFile(filepath.Join(dir, "schema.graphql"))
	if err != nil {
		return ServerConfig{}, "", oops.Wrapf(err, "reading schema.graphql")
	}

	return cfg.Default(), string(sdl), nil
}
