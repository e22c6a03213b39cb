package main

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Bibi40k/sftp-logfetch/configs"
	"github.com/Bibi40k/sftp-logfetch/internal/utils"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "LOGFETCH"

// Setting keys. Flags use the same names; environment variables are
// LOGFETCH_<KEY> with dashes as underscores.
const (
	keyHost              = "host"
	keyPort              = "port"
	keyUser              = "user"
	keyPassword          = "password"
	keyPath              = "path"
	keyFile              = "file"
	keyPattern           = "pattern"
	keyDownloadDir       = "download-dir"
	keyKnownHosts        = "known-hosts"
	keyInsecure          = "insecure"
	keyOpen              = "open"
	keyResult            = "result"
	keyStatePath         = "state-path"
	keyTitle             = "title"
	keyNonInteractive    = "non-interactive"
	keyConnectTimeout    = "connect-timeout"
	keyValidationTimeout = "validation-timeout"
)

// settings is the resolved runtime configuration of one command.
type settings struct {
	Host              string
	Port              int
	User              string
	Password          string
	Path              string
	File              string
	Pattern           string
	DownloadDir       string
	KnownHosts        string
	Insecure          bool
	Open              bool
	ResultPath        string
	StatePath         string
	Title             string
	NonInteractive    bool
	ConnectTimeout    time.Duration
	ValidationTimeout time.Duration
}

func envName(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// newViper returns a viper instance with built-in defaults and env lookup.
func newViper() *viper.Viper {
	v := viper.New()
	d := configs.Defaults
	v.SetDefault(keyPort, d.SFTP.Port)
	v.SetDefault(keyPattern, d.Fetch.Pattern)
	v.SetDefault(keyDownloadDir, d.Fetch.DownloadDir)
	v.SetDefault(keyKnownHosts, d.SFTP.KnownHosts)
	v.SetDefault(keyInsecure, d.SFTP.Insecure)
	v.SetDefault(keyOpen, d.Fetch.OpenAfterDownload)
	v.SetDefault(keyStatePath, d.State.Path)
	v.SetDefault(keyTitle, d.Wizard.Title)
	v.SetDefault(keyConnectTimeout, d.Timeouts.Connect())
	v.SetDefault(keyValidationTimeout, d.Timeouts.Validation())
	if d.Output.Enable {
		v.SetDefault(keyResult, d.Output.FetchResultPath)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// addFlags declares the persistent flags and binds them to v.
func addFlags(cmd *cobra.Command, v *viper.Viper) error {
	fs := cmd.PersistentFlags()
	fs.String(keyHost, "", "SFTP server address (IP or hostname)")
	fs.Int(keyPort, configs.Defaults.SFTP.Port, "SFTP server port")
	fs.String(keyUser, "", "Login user")
	fs.String(keyPath, "", "Remote log directory (absolute)")
	fs.String(keyFile, "", "Log file name (non-interactive mode)")
	fs.String(keyPattern, configs.Defaults.Fetch.Pattern, "Regular expression selecting log files")
	fs.String(keyDownloadDir, configs.Defaults.Fetch.DownloadDir, "Local directory for downloaded logs")
	fs.String(keyKnownHosts, configs.Defaults.SFTP.KnownHosts, "known_hosts file used to verify the server")
	fs.Bool(keyInsecure, configs.Defaults.SFTP.Insecure, "Skip host key verification (logs the fingerprint)")
	fs.Bool(keyOpen, configs.Defaults.Fetch.OpenAfterDownload, "Open the file after download")
	fs.String(keyResult, "", "Write fetch result to YAML/JSON file (optional)")
	fs.Bool(keyNonInteractive, false, "Prevent interactive prompts")

	for _, key := range []string{
		keyHost, keyPort, keyUser, keyPath, keyFile, keyPattern, keyDownloadDir,
		keyKnownHosts, keyInsecure, keyOpen, keyResult, keyNonInteractive,
	} {
		if err := v.BindPFlag(key, fs.Lookup(key)); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}
	return nil
}

// readConfigFile loads path, or ~/.logfetch.yaml when path is empty.
// Only an explicitly named file is required to exist.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", expanded, err)
		}
		return nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return nil
	}
	v.SetConfigName(".logfetch")
	v.SetConfigType("yaml")
	v.AddConfigPath(home)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// loadSettings resolves v into settings, expanding ~ in local paths.
func loadSettings(v *viper.Viper) (*settings, error) {
	s := &settings{
		Host:              strings.TrimSpace(v.GetString(keyHost)),
		User:              strings.TrimSpace(v.GetString(keyUser)),
		Password:          v.GetString(keyPassword),
		Path:              strings.TrimSpace(v.GetString(keyPath)),
		File:              strings.TrimSpace(v.GetString(keyFile)),
		Pattern:           v.GetString(keyPattern),
		Insecure:          v.GetBool(keyInsecure),
		Open:              v.GetBool(keyOpen),
		Title:             v.GetString(keyTitle),
		NonInteractive:    v.GetBool(keyNonInteractive),
		ConnectTimeout:    v.GetDuration(keyConnectTimeout),
		ValidationTimeout: v.GetDuration(keyValidationTimeout),
	}

	port, err := utils.ParsePort(v.GetString(keyPort))
	if err != nil {
		return nil, &userError{msg: err.Error(), hint: "use a port between 1 and 65535"}
	}
	s.Port = port
	if _, err := regexp.Compile(s.Pattern); err != nil {
		return nil, &userError{msg: fmt.Sprintf("invalid pattern %q: %v", s.Pattern, err)}
	}
	if s.ConnectTimeout <= 0 {
		s.ConnectTimeout = configs.Defaults.Timeouts.Connect()
	}
	if s.ValidationTimeout <= 0 {
		s.ValidationTimeout = configs.Defaults.Timeouts.Validation()
	}

	for _, p := range []struct {
		dst *string
		key string
	}{
		{&s.DownloadDir, keyDownloadDir},
		{&s.KnownHosts, keyKnownHosts},
		{&s.StatePath, keyStatePath},
		{&s.ResultPath, keyResult},
	} {
		expanded, err := homedir.Expand(strings.TrimSpace(v.GetString(p.key)))
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", p.key, err)
		}
		*p.dst = expanded
	}
	return s, nil
}

// requireValues returns a userError for the first empty value, in order.
func requireValues(pairs ...[2]string) error {
	for _, p := range pairs {
		if strings.TrimSpace(p[1]) == "" {
			return missingValue(p[0])
		}
	}
	return nil
}
