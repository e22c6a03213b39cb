// Package config holds the machine-readable output contract of a fetch.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FetchResult is the normalized output of a completed download.
type FetchResult struct {
	Host            string `json:"host" yaml:"host"`
	Port            int    `json:"port,omitempty" yaml:"port,omitempty"`
	User            string `json:"user" yaml:"user"`
	RemotePath      string `json:"remote_path" yaml:"remote_path"`
	LocalPath       string `json:"local_path" yaml:"local_path"`
	Bytes           int64  `json:"bytes" yaml:"bytes"`
	SHA256          string `json:"sha256" yaml:"sha256"`
	HostFingerprint string `json:"host_fingerprint,omitempty" yaml:"host_fingerprint,omitempty"`
}

// Validate checks the fields consumers rely on.
func (r FetchResult) Validate() error {
	if strings.TrimSpace(r.Host) == "" {
		return fmt.Errorf("fetch host is required")
	}
	if strings.TrimSpace(r.User) == "" {
		return fmt.Errorf("fetch user is required")
	}
	if !strings.HasPrefix(r.RemotePath, "/") {
		return fmt.Errorf("fetch remote_path must be absolute")
	}
	if strings.TrimSpace(r.LocalPath) == "" {
		return fmt.Errorf("fetch local_path is required")
	}
	if r.Bytes < 0 {
		return fmt.Errorf("fetch bytes must not be negative")
	}
	if len(r.SHA256) != 64 {
		return fmt.Errorf("fetch sha256 must be 64 hex characters")
	}
	if r.Port < 0 || r.Port > 65535 {
		return fmt.Errorf("fetch port must be in range 0..65535")
	}
	if fp := strings.TrimSpace(r.HostFingerprint); fp != "" && !strings.HasPrefix(fp, "SHA256:") {
		return fmt.Errorf("fetch host_fingerprint must be in SHA256:... format")
	}
	return nil
}

func isJSON(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}

// LoadFetchResult reads FetchResult from YAML or JSON.
func LoadFetchResult(path string) (FetchResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FetchResult{}, fmt.Errorf("read fetch result %s: %w", path, err)
	}

	var out FetchResult
	if isJSON(path) {
		err = json.Unmarshal(content, &out)
	} else {
		err = yaml.Unmarshal(content, &out)
	}
	if err != nil {
		return FetchResult{}, fmt.Errorf("parse fetch result %s: %w", path, err)
	}

	if err := out.Validate(); err != nil {
		return FetchResult{}, err
	}
	if out.Port == 0 {
		out.Port = 22
	}
	return out, nil
}

// SaveFetchResult writes FetchResult to YAML or JSON based on file extension.
func SaveFetchResult(path string, result FetchResult) error {
	if err := result.Validate(); err != nil {
		return err
	}
	if result.Port == 0 {
		result.Port = 22
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	var content []byte
	var err error
	if isJSON(path) {
		content, err = json.MarshalIndent(result, "", "  ")
	} else {
		content, err = yaml.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("marshal fetch result %s: %w", path, err)
	}

	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("write fetch result %s: %w", path, err)
	}
	return nil
}
