// Copyright 2026 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"os"

	"github.com/spf13/pflag"
	"gitlab.com/accumulatenetwork/moveclient/config"
	"gitlab.com/accumulatenetwork/moveclient/internal/logging"
	"gitlab.com/accumulatenetwork/moveclient/pkg/account"
	"gitlab.com/accumulatenetwork/moveclient/pkg/client"
	"gitlab.com/accumulatenetwork/moveclient/pkg/journal"
	"gitlab.com/accumulatenetwork/moveclient/pkg/move"
	"gitlab.com/accumulatenetwork/moveclient/pkg/node"
	"golang.org/x/exp/slog"
)

// envPrivateKey holds the signing key when no key is named.
const envPrivateKey = "MOVECLIENT_PRIVATE_KEY"

func loadConfig() *config.Config {
	file := flagMain.Config
	if _, err := os.Stat(file); err != nil {
		file = ""
	}

	flags := cmdMain.PersistentFlags()
	cfg, err := config.Load(file, map[string]*pflag.Flag{
		"node.url":       flags.Lookup("node"),
		"logging.level":  flags.Lookup("log-level"),
		"logging.format": flags.Lookup("log-format"),
	})
	checkf(err, "load configuration")
	return cfg
}

func newLogger(cfg *config.Config) *slog.Logger {
	logger, err := logging.New(cfg.Logging.Format, cfg.Logging.Level, os.Stderr)
	checkf(err, "configure logging")
	return logger
}

func openJournal(cfg *config.Config, logger *slog.Logger) journal.Journal {
	switch cfg.Journal.Type {
	case config.BadgerStorage:
		j, err := journal.OpenBadger(cfg.Journal.Path, logger)
		checkf(err, "open journal")
		return j
	default:
		return journal.NewMemory()
	}
}

func newNode(cfg *config.Config, logger *slog.Logger) *node.Client {
	conn := node.NewClient(cfg.Node.URL)
	conn.Client.Timeout = cfg.Node.RequestTimeout
	conn.Logger = logger
	return conn
}

// openClient returns a client configured from the configuration and flags,
// and a function that releases it.
func openClient(ctx context.Context) (*client.Client, *config.Config, func()) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	conn := newNode(cfg, logger)
	j := openJournal(cfg, logger)

	opts := client.Options{
		Expiration:   cfg.Transaction.Expiration,
		MaxGasAmount: cfg.Gas.MaxAmount,
		GasUnitPrice: cfg.Gas.UnitPrice,
		PollInterval: cfg.Finality.PollInterval,
		Timeout:      cfg.Finality.Timeout,
		MaxRetries:   cfg.Finality.MaxRetries,
		ChainID:      cfg.Node.ChainID,
		Journal:      j,
		Logger:       logger,
	}

	if cfg.Gas.Estimate {
		est, err := conn.EstimateGasPrice(ctx)
		if err != nil {
			logger.Warn("Gas price estimate failed, using the configured price", "module", "main", "error", err)
		} else if est.GasEstimate > 0 {
			opts.GasUnitPrice = est.GasEstimate
		}
	}

	return client.New(conn, opts), cfg, func() {
		if err := j.Close(); err != nil {
			logger.Error("Failed to close the journal", "module", "main", "error", err)
		}
	}
}

// signer loads the key named by --key, or the key in $MOVECLIENT_PRIVATE_KEY,
// which may be defined in ./.env.
func signer(cfg *config.Config) *account.Account {
	if flagMain.Key != "" {
		a, err := cfg.Key(flagMain.Key)
		check(err)
		return a
	}
	a, err := account.Source{Env: envPrivateKey, DotEnv: ".env"}.Load()
	checkf(err, "no key selected (use --key or set %s)", envPrivateKey)
	return a
}

// resolveAddress parses an address, or returns the address of a configured
// key with that name.
func resolveAddress(cfg *config.Config, s string) move.Address {
	addr, err := move.ParseAddress(s)
	if err == nil {
		return addr
	}
	if _, ok := cfg.Keys[s]; ok {
		a, err := cfg.Key(s)
		check(err)
		return a.Address()
	}
	fatalf("%q is not an address or a key name", s)
	panic("unreachable")
}

func parseCoin(s string) move.TypeTag {
	tag, err := move.ParseTypeTag(s)
	checkf(err, "invalid coin type")
	if tag.Struct == nil {
		fatalf("coin type %s is not a struct", s)
	}
	return tag
}
