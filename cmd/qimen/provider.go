package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/h0rv/qimen/internal/auth"
	"github.com/h0rv/qimen/internal/calendar"
	"github.com/h0rv/qimen/internal/config"
	"github.com/h0rv/qimen/internal/persistence"
	"github.com/h0rv/qimen/internal/remote"
	"go.uber.org/zap"
)

// newProvider builds the solar term provider named in c.
func newProvider(c config.Config, logger *zap.Logger) (calendar.Provider, error) {
	switch c.Provider {
	case config.ProviderStatic:
		p, err := calendar.LoadStatic(c.TermsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load term table: %w", err)
		}
		return p, nil
	case config.ProviderRemote:
		opts := []remote.Option{remote.WithLogger(logger)}
		if tokens := tokenProvider(c.Remote); tokens != nil {
			opts = append(opts, remote.WithTokenProvider(tokens))
		}
		return remote.New(c.Remote.Endpoint, opts...), nil
	default:
		return calendar.NewAstro(), nil
	}
}

// tokenProvider chains the configured token sources: the environment
// variable, then the token file, then the credential helper. Returns nil when
// none is configured, leaving requests anonymous.
func tokenProvider(r config.RemoteConfig) auth.TokenProvider {
	var chain auth.Chain
	if r.TokenEnv != "" && os.Getenv(r.TokenEnv) != "" {
		chain = append(chain, &auth.EnvProvider{Var: r.TokenEnv})
	}
	if r.TokenFile != "" {
		chain = append(chain, &auth.FileProvider{Path: r.TokenFile})
	}
	if fields := strings.Fields(r.TokenCommand); len(fields) > 0 {
		chain = append(chain, &auth.CommandProvider{Command: fields[0], Args: fields[1:]})
	}
	if len(chain) == 0 {
		return nil
	}
	return chain
}

// openJournal opens the journal database, creating its directory.
func openJournal(path string, logger *zap.Logger) (*persistence.Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	j, err := persistence.Open(path, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal %s: %w", path, err)
	}
	return j, nil
}
