// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/mattn/go-isatty"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakevault/stakevault/eventdb"
	"github.com/stakevault/stakevault/log"
	"github.com/stakevault/stakevault/lvldb"
	"github.com/stakevault/stakevault/metrics"
	"github.com/stakevault/stakevault/vault"
)

func fatal(args ...any) {
	fmt.Fprint(os.Stderr, "Fatal: ")
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func fatalf(format string, args ...any) {
	fatal(fmt.Sprintf(format, args...))
}

func defaultDataDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		if u, err := user.Current(); err == nil {
			home = u.HomeDir
		}
	}
	if home == "" {
		return ""
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "StakeVault")
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "StakeVault")
	default:
		return filepath.Join(home, ".stakevault")
	}
}

func initLogger(ctx *cli.Context) {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	output := os.Stdout
	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandlerWithLevel(output, &level)
	} else {
		handler = log.NewTerminalHandlerWithLevel(output, &level, isatty.IsTerminal(output.Fd()))
	}
	log.SetDefault(log.NewLogger(handler))
}

func openMainDB(ctx *cli.Context) *lvldb.LevelDB {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatalf("unable to infer default data dir, use -%s to specify one", dataDirFlag.Name)
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatalf("create data dir at '%v': %v", dataDir, err)
	}
	db, err := lvldb.New(filepath.Join(dataDir, "main.db"), lvldb.Options{})
	if err != nil {
		fatalf("open main database: %v", err)
	}
	return db
}

func openEventDB(ctx *cli.Context) *eventdb.EventDB {
	dataDir := ctx.String(dataDirFlag.Name)
	db, err := eventdb.New(filepath.Join(dataDir, "events.db"))
	if err != nil {
		fatalf("open event database: %v", err)
	}
	return db
}

func parseAddress(ctx *cli.Context, flag cli.StringFlag) vault.Address {
	raw := ctx.String(flag.Name)
	if raw == "" {
		fatalf("-%s is required", flag.Name)
	}
	addr, err := vault.ParseAddress(raw)
	if err != nil {
		fatalf("parse -%s: %v", flag.Name, err)
	}
	return *addr
}

func startMetricsServer(addr string) (*http.Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics API addr [%v]: %w", addr, err)
	}
	metrics.InitializePrometheusMetrics()
	router := http.NewServeMux()
	router.Handle("/metrics", metrics.HTTPHandler())
	srv := &http.Server{Handler: router}
	go func() {
		srv.Serve(listener)
	}()
	return srv, nil
}
