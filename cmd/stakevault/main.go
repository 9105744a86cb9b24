// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/stakevault/stakevault/builtin"
	"github.com/stakevault/stakevault/eventdb"
	"github.com/stakevault/stakevault/log"
	"github.com/stakevault/stakevault/state"
	"github.com/stakevault/stakevault/vault"
)

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "StakeVault",
		Usage:     "Value-custody staking vault",
		Copyright: "2025 The StakeVault developers",
		Flags: []cli.Flag{
			dataDirFlag,
			verbosityFlag,
			jsonLogsFlag,
			metricsAddrFlag,
		},
		Action: statusAction,
		Commands: []cli.Command{
			{
				Name:  "init",
				Usage: "initialize the vault databases and governance params",
				Flags: []cli.Flag{
					dataDirFlag,
					verbosityFlag,
					jsonLogsFlag,
					ownerFlag,
				},
				Action: initAction,
			},
			{
				Name:  "status",
				Usage: "print vault governance params and totals",
				Flags: []cli.Flag{
					dataDirFlag,
					verbosityFlag,
					jsonLogsFlag,
					metricsAddrFlag,
				},
				Action: statusAction,
			},
			{
				Name:  "account",
				Usage: "print the stake of an account",
				Flags: []cli.Flag{
					dataDirFlag,
					verbosityFlag,
					jsonLogsFlag,
					accountFlag,
				},
				Action: accountAction,
			},
			{
				Name:  "events",
				Usage: "list recorded vault events",
				Flags: []cli.Flag{
					dataDirFlag,
					verbosityFlag,
					jsonLogsFlag,
					eventNameFlag,
					accountFlag,
					eventLimitFlag,
				},
				Action: eventsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initAction(ctx *cli.Context) error {
	initLogger(ctx)
	owner := parseAddress(ctx, ownerFlag)

	mainDB := openMainDB(ctx)
	defer mainDB.Close()
	events := openEventDB(ctx)
	defer events.Close()

	st := state.New(mainDB)
	auth := builtin.Params.Authority(st, events)
	if err := auth.Initialize(owner, vault.InitialRewardRate, vault.InitialMinHoldPeriod); err != nil {
		return err
	}
	if err := st.Commit(); err != nil {
		return err
	}
	logger.Info("vault initialized", "owner", owner)
	return nil
}

func statusAction(ctx *cli.Context) error {
	initLogger(ctx)

	mainDB := openMainDB(ctx)
	defer mainDB.Close()
	events := openEventDB(ctx)
	defer events.Close()

	if addr := ctx.String(metricsAddrFlag.Name); addr != "" {
		srv, err := startMetricsServer(addr)
		if err != nil {
			return err
		}
		defer srv.Shutdown(context.Background())
	}

	st := state.New(mainDB)
	vlt := builtin.Staking.WithState(st, events)

	owner, err := vlt.Authority().Owner()
	if err != nil {
		return err
	}
	paused, err := vlt.Authority().Paused()
	if err != nil {
		return err
	}
	rate, err := vlt.Authority().RewardRate()
	if err != nil {
		return err
	}
	holdPeriod, err := vlt.Authority().MinHoldPeriod()
	if err != nil {
		return err
	}
	totalPrincipal, err := vlt.GetTotalPrincipal()
	if err != nil {
		return err
	}
	totalSupply, err := vlt.Token().TotalSupply()
	if err != nil {
		return err
	}

	fmt.Printf(`Vault status
    owner           %v
    paused          %v
    reward rate     %v
    min hold period %vs
    total principal %v
    claim supply    %v
`, owner, paused, rate, holdPeriod, totalPrincipal, totalSupply)
	return nil
}

func accountAction(ctx *cli.Context) error {
	initLogger(ctx)
	acc := parseAddress(ctx, accountFlag)

	mainDB := openMainDB(ctx)
	defer mainDB.Close()
	events := openEventDB(ctx)
	defer events.Close()

	st := state.New(mainDB)
	vlt := builtin.Staking.WithState(st, events)

	now := uint64(time.Now().Unix())
	stake, err := vlt.GetStake(acc)
	if err != nil {
		return err
	}
	pending, err := vlt.GetPendingRewards(acc, now)
	if err != nil {
		return err
	}
	remaining, err := vlt.GetTimeUntilWithdrawable(acc, now)
	if err != nil {
		return err
	}
	claimBalance, err := vlt.Token().BalanceOf(acc)
	if err != nil {
		return err
	}

	fmt.Printf(`Account %v
    principal       %v
    pending rewards %v
    claim balance   %v
    withdrawable in %vs
`, acc, stake.Principal, pending, claimBalance, remaining)
	return nil
}

func eventsAction(ctx *cli.Context) error {
	initLogger(ctx)

	events := openEventDB(ctx)
	defer events.Close()

	filter := &eventdb.Filter{
		Name:    ctx.String(eventNameFlag.Name),
		Order:   eventdb.DESC,
		Options: &eventdb.Options{Limit: ctx.Uint64(eventLimitFlag.Name)},
	}
	if raw := ctx.String(accountFlag.Name); raw != "" {
		addr, err := vault.ParseAddress(raw)
		if err != nil {
			return err
		}
		filter.Account = addr
	}

	list, err := events.Filter(filter)
	if err != nil {
		return err
	}
	for _, ev := range list {
		fmt.Printf("#%-6d %-22s %v amount=%v balance=%v time=%v\n",
			ev.Sequence, ev.Name, ev.Account, ev.Amount, ev.Balance, ev.Time)
	}
	return nil
}
