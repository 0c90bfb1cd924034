// Package auth provides the access token for the remote calendar service.
// It implements a simple interface with multiple providers following the
// "deep modules" principle - simple interface, complex implementation hidden.
package auth

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultEnvVar is the environment variable checked for a calendar token.
const DefaultEnvVar = "QIMEN_CALENDAR_TOKEN"

// ErrNoToken indicates that no provider could supply a token.
var ErrNoToken = errors.New("no calendar token available")

// TokenProvider defines the interface for obtaining a calendar service token.
// Implementations may use different sources (credential helpers, environment
// variables, files).
type TokenProvider interface {
	GetToken() (string, error)
}

// CommandProvider obtains tokens by running a credential helper command that
// prints the token on stdout.
type CommandProvider struct {
	Command string
	Args    []string
}

// GetToken runs the helper and returns its trimmed output.
// Returns an error if the helper is not installed, fails, or prints nothing.
func (c *CommandProvider) GetToken() (string, error) {
	if c.Command == "" {
		return "", errors.New("no credential helper configured")
	}
	output, err := exec.Command(c.Command, c.Args...).Output()
	if err != nil {
		// Check if it's an exec error (helper not found)
		var execErr *exec.Error
		if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
			return "", fmt.Errorf("credential helper %q not found in PATH", c.Command)
		}
		return "", fmt.Errorf("credential helper %q failed: %w", c.Command, err)
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", fmt.Errorf("credential helper %q returned empty token", c.Command)
	}
	return token, nil
}

// EnvProvider obtains tokens from an environment variable, DefaultEnvVar
// when Var is empty.
type EnvProvider struct {
	Var string
}

// GetToken reads the environment variable.
// Returns an error if the variable is not set or is empty.
func (e *EnvProvider) GetToken() (string, error) {
	name := e.Var
	if name == "" {
		name = DefaultEnvVar
	}
	token := os.Getenv(name)
	if token == "" {
		return "", fmt.Errorf("%s environment variable not set or empty", name)
	}
	return token, nil
}

// FileProvider reads the token from a file, ~/.qimen/token when Path is empty.
type FileProvider struct {
	Path string
}

// GetToken returns the first line of the token file.
func (f *FileProvider) GetToken() (string, error) {
	path := f.Path
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory: %w", err)
		}
		path = filepath.Join(home, ".qimen", "token")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}
	token, _, _ := strings.Cut(string(data), "\n")
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", path)
	}
	return token, nil
}

// Chain tries each provider in order and returns the first token found.
type Chain []TokenProvider

// GetToken returns the first successful provider's token, or ErrNoToken
// listing every failure.
func (c Chain) GetToken() (string, error) {
	var errs []error
	for _, p := range c {
		token, err := p.GetToken()
		if err == nil {
			return token, nil
		}
		errs = append(errs, err)
	}
	return "", fmt.Errorf("%w: %w", ErrNoToken, errors.Join(errs...))
}

// GetToken attempts to obtain a calendar token using the following strategy:
// 1. The QIMEN_CALENDAR_TOKEN environment variable
// 2. The ~/.qimen/token file
//
// This is the main entry point for token retrieval in the application.
func GetToken() (string, error) {
	return Chain{&EnvProvider{}, &FileProvider{}}.GetToken()
}
