package main

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/Bibi40k/sftp-logfetch/internal/utils"
)

// validateHost checks syntax first, then that the SSH port answers within
// the validation timeout.
func (a *app) validateHost(ctx context.Context, value string) string {
	host := strings.TrimSpace(value)
	if err := utils.ValidateHost(host); err != nil {
		return "Invalid IP Address or hostname"
	}
	ctx, cancel := context.WithTimeout(ctx, a.cfg.ValidationTimeout)
	defer cancel()
	if !a.probe(ctx, host, a.cfg.Port) {
		return fmt.Sprintf("%s is not reachable on port %d", host, a.cfg.Port)
	}
	return ""
}

func validateUser(_ context.Context, value string) string {
	if strings.TrimSpace(value) == "" {
		return "Username is required"
	}
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return "Username must not contain spaces"
	}
	return ""
}

func validatePassword(_ context.Context, value string) string {
	if value == "" {
		return "Password is required"
	}
	return ""
}

func validateRemoteDir(_ context.Context, value string) string {
	if err := utils.ValidateRemoteDir(value); err != nil {
		return "Enter an absolute path, e.g. /var/log"
	}
	return ""
}
