// Package configs provides library defaults loaded from embedded YAML files.
// All hardcoded values live in defaults.yaml.
package configs

import (
	_ "embed"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults holds all library default values (loaded from defaults.yaml at startup).
var Defaults LibDefaults

func init() {
	if err := yaml.Unmarshal(defaultsYAML, &Defaults); err != nil {
		panic("sftp-logfetch: invalid defaults.yaml: " + err.Error())
	}
}

// LibDefaults holds all configurable library defaults.
type LibDefaults struct {
	SFTP     SFTPDefaults    `yaml:"sftp"`
	Timeouts TimeoutDefaults `yaml:"timeouts"`
	Fetch    FetchDefaults   `yaml:"fetch"`
	Wizard   WizardDefaults  `yaml:"wizard"`
	State    StateDefaults   `yaml:"state"`
	Output   OutputDefaults  `yaml:"output"`
}

// SFTPDefaults holds SSH/SFTP connection defaults.
type SFTPDefaults struct {
	Port       int    `yaml:"port"`
	KnownHosts string `yaml:"known_hosts"`
	Insecure   bool   `yaml:"insecure"`
}

// TimeoutDefaults holds all timeout values.
type TimeoutDefaults struct {
	ConnectSeconds    int `yaml:"connect_seconds"`
	ValidationSeconds int `yaml:"validation_seconds"`
	ProgressSeconds   int `yaml:"progress_seconds"`
}

// As time.Duration convenience methods.

func (t TimeoutDefaults) Connect() time.Duration {
	return time.Duration(t.ConnectSeconds) * time.Second
}
func (t TimeoutDefaults) Validation() time.Duration {
	return time.Duration(t.ValidationSeconds) * time.Second
}
func (t TimeoutDefaults) Progress() time.Duration {
	return time.Duration(t.ProgressSeconds) * time.Second
}

// FetchDefaults holds log selection and download defaults.
type FetchDefaults struct {
	Pattern           string `yaml:"pattern"`
	DownloadDir       string `yaml:"download_dir"`
	OpenAfterDownload bool   `yaml:"open_after_download"`
}

// WizardDefaults holds prompt defaults.
type WizardDefaults struct {
	Title string `yaml:"title"`
}

// StateDefaults locates the file remembering previous answers.
type StateDefaults struct {
	Path string `yaml:"path"`
}

// OutputDefaults holds CLI output defaults.
type OutputDefaults struct {
	Enable          bool   `yaml:"enable"`
	FetchResultPath string `yaml:"fetch_result_path"`
}
