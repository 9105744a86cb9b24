// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakevault/stakevault/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for vault databases",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Usage: "metrics service listening address (disabled if empty)",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "address of the vault owner",
	}
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "account address to inspect",
	}
	eventNameFlag = cli.StringFlag{
		Name:  "name",
		Usage: "filter events by name",
	}
	eventLimitFlag = cli.Uint64Flag{
		Name:  "limit",
		Value: 20,
		Usage: "max number of events to list",
	}
)
