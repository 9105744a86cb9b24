// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking implements the value-custody ledger: participants deposit
// the base asset, receive claim tokens 1:1, accrue time-weighted rewards and
// withdraw principal after the holding period, or through the pause-gated
// emergency path.
//
// Every mutating entry point runs under the custody guard's busy flag and a
// state checkpoint; it either completes in full or is rolled back with no
// partial visibility. "now" is sampled once per operation, by the caller.
package staking

import (
	"math/big"

	"github.com/stakevault/stakevault/builtin/authority"
	"github.com/stakevault/stakevault/builtin/claimtoken"
	"github.com/stakevault/stakevault/builtin/reverts"
	"github.com/stakevault/stakevault/log"
	"github.com/stakevault/stakevault/metrics"
	"github.com/stakevault/stakevault/state"
	"github.com/stakevault/stakevault/vault"
)

var (
	logger   = log.WithContext("pkg", "staking")
	metricOp = metrics.LazyLoadCounterVec("staking_op_count", []string{"op"})
)

// SetLogger overrides the package logger.
func SetLogger(l log.Logger) {
	logger = l
}

// Staking implements the staking ledger state machine.
type Staking struct {
	addr  vault.Address
	state *state.State

	auth  *authority.Authority
	token *claimtoken.ClaimToken
	store *storage

	guard    guard
	hooks    map[vault.Address]ReceiveHook
	recorder vault.EventRecorder
}

// New create a new instance.
// recorder may be nil, in which case audit events are dropped.
func New(
	addr vault.Address,
	state *state.State,
	auth *authority.Authority,
	token *claimtoken.ClaimToken,
	recorder vault.EventRecorder,
) *Staking {
	return &Staking{
		addr:     addr,
		state:    state,
		auth:     auth,
		token:    token,
		store:    newStorage(addr, state),
		hooks:    make(map[vault.Address]ReceiveHook),
		recorder: recorder,
	}
}

// Address returns the contract address holding custody of the base asset.
func (v *Staking) Address() vault.Address {
	return v.addr
}

// Token returns the claim-token ledger controlled by this contract.
func (v *Staking) Token() *claimtoken.ClaimToken {
	return v.token
}

// Authority returns the administrative surface consumed by this contract.
func (v *Staking) Authority() *authority.Authority {
	return v.auth
}

//
// Getters - no state change
//

// GetStake returns the ledger record of an account. Accrued figures are as of
// the last ledger touch; use PendingRewards for an up-to-date figure.
func (v *Staking) GetStake(acc vault.Address) (*Stake, error) {
	return v.store.GetStake(acc)
}

// IsActive returns whether the account currently has principal deposited.
func (v *Staking) IsActive(acc vault.Address) (bool, error) {
	stake, err := v.store.GetStake(acc)
	if err != nil {
		return false, err
	}
	return stake.Principal.Sign() > 0, nil
}

// GetTotalPrincipal returns the sum of all accounts' principal.
func (v *Staking) GetTotalPrincipal() (*big.Int, error) {
	return v.store.GetTotalPrincipal()
}

// GetPendingRewards returns rewards claimable as of now, without mutating
// state.
func (v *Staking) GetPendingRewards(acc vault.Address, now uint64) (*big.Int, error) {
	stake, err := v.store.GetStake(acc)
	if err != nil {
		return nil, err
	}
	rate, err := v.auth.RewardRate()
	if err != nil {
		return nil, err
	}
	return new(big.Int).Add(stake.Accrued, stake.PendingAt(now, rate)), nil
}

// GetTimeUntilWithdrawable returns seconds until the ordinary withdrawal path
// opens, 0 when already eligible or inactive.
func (v *Staking) GetTimeUntilWithdrawable(acc vault.Address, now uint64) (uint64, error) {
	stake, err := v.store.GetStake(acc)
	if err != nil {
		return 0, err
	}
	if stake.Principal.Sign() == 0 {
		return 0, nil
	}
	holdPeriod, err := v.auth.MinHoldPeriod()
	if err != nil {
		return 0, err
	}
	eligibleAt := stake.LastUpdate + holdPeriod
	if now >= eligibleAt {
		return 0, nil
	}
	return eligibleAt - now, nil
}

//
// Setters - state change
//

// Deposit adds amount to the account's principal, minting claim tokens 1:1.
// The base asset is pulled from the account's balance into vault custody.
func (v *Staking) Deposit(acc vault.Address, amount *big.Int, now uint64) error {
	logger.Debug("deposit", "account", acc, "amount", amount)

	return v.mutate("deposit", func() error {
		if err := v.requireNotPaused(); err != nil {
			return err
		}
		if amount.Sign() <= 0 {
			return reverts.New("amount must be positive")
		}
		if err := v.collect(acc, amount); err != nil {
			return err
		}

		stake, err := v.accrue(acc, now)
		if err != nil {
			return err
		}
		stake.Principal = new(big.Int).Add(stake.Principal, amount)
		if err := v.store.SetStake(acc, stake); err != nil {
			return err
		}
		if err := v.store.AddTotalPrincipal(amount); err != nil {
			return err
		}
		if err := v.token.Mint(v.addr, acc, amount); err != nil {
			return err
		}

		logger.Info("deposited", "account", acc, "amount", amount, "principal", stake.Principal)
		v.record(vault.EventDeposit, acc, amount, stake.Principal, now)
		return nil
	})
}

// Withdraw returns amount of principal to the account, burning claim tokens
// 1:1. The hold period is checked against the record's LastUpdate as it was
// before this call: any earlier touch of the record, a top-up deposit
// included, has reset the clock for the entire principal.
func (v *Staking) Withdraw(acc vault.Address, amount *big.Int, now uint64) error {
	logger.Debug("withdraw", "account", acc, "amount", amount)

	return v.mutate("withdraw", func() error {
		if err := v.requireNotPaused(); err != nil {
			return err
		}
		if amount.Sign() <= 0 {
			return reverts.New("amount must be positive")
		}
		stake, err := v.store.GetStake(acc)
		if err != nil {
			return err
		}
		if stake.Principal.Cmp(amount) < 0 {
			return reverts.New("insufficient principal")
		}
		holdPeriod, err := v.auth.MinHoldPeriod()
		if err != nil {
			return err
		}
		if now < stake.LastUpdate+holdPeriod {
			return reverts.New("hold period not elapsed")
		}

		rate, err := v.auth.RewardRate()
		if err != nil {
			return err
		}
		stake.Accrue(now, rate)
		stake.Principal = new(big.Int).Sub(stake.Principal, amount)
		if err := v.store.SetStake(acc, stake); err != nil {
			return err
		}
		if err := v.store.SubTotalPrincipal(amount); err != nil {
			return err
		}
		// a failing burn signals the claim tokens were transferred away
		if err := v.token.Burn(v.addr, acc, amount); err != nil {
			return err
		}
		// outbound transfer last, with all state settled
		if err := v.payout(acc, amount); err != nil {
			return err
		}

		logger.Info("withdrew", "account", acc, "amount", amount, "principal", stake.Principal)
		v.record(vault.EventWithdrawal, acc, amount, stake.Principal, now)
		return nil
	})
}

// ClaimRewards pays out all accrued rewards. Principal and claim tokens are
// untouched. Claiming with nothing accrued is an error, not a no-op.
func (v *Staking) ClaimRewards(acc vault.Address, now uint64) (*big.Int, error) {
	logger.Debug("claim rewards", "account", acc)

	var claimed *big.Int
	err := v.mutate("claim", func() error {
		if err := v.requireNotPaused(); err != nil {
			return err
		}
		stake, err := v.accrue(acc, now)
		if err != nil {
			return err
		}
		if stake.Accrued.Sign() == 0 {
			return reverts.New("nothing to claim")
		}
		claimed = stake.Accrued
		stake.Accrued = new(big.Int)
		if err := v.store.SetStake(acc, stake); err != nil {
			return err
		}
		if err := v.payout(acc, claimed); err != nil {
			return err
		}

		logger.Info("claimed rewards", "account", acc, "amount", claimed)
		v.record(vault.EventRewardClaim, acc, claimed, stake.Accrued, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// EmergencyWithdraw recovers the full principal while the vault is paused,
// ignoring the hold period. Unclaimed rewards are forfeited. The claim tokens
// matching the principal must still be surrendered.
func (v *Staking) EmergencyWithdraw(acc vault.Address, now uint64) (*big.Int, error) {
	logger.Debug("emergency withdraw", "account", acc)

	var principal *big.Int
	err := v.mutate("emergency_withdraw", func() error {
		paused, err := v.auth.Paused()
		if err != nil {
			return err
		}
		if !paused {
			return reverts.New("not paused")
		}
		stake, err := v.store.GetStake(acc)
		if err != nil {
			return err
		}
		if stake.Principal.Sign() == 0 {
			return reverts.New("nothing staked")
		}

		principal = stake.Principal
		stake.Principal = new(big.Int)
		stake.Accrued = new(big.Int)
		if now > stake.LastUpdate {
			stake.LastUpdate = now
		}
		if err := v.store.SetStake(acc, stake); err != nil {
			return err
		}
		if err := v.store.SubTotalPrincipal(principal); err != nil {
			return err
		}
		if err := v.token.Burn(v.addr, acc, principal); err != nil {
			return err
		}
		if err := v.payout(acc, principal); err != nil {
			return err
		}

		logger.Warn("emergency withdrawal", "account", acc, "amount", principal)
		v.record(vault.EventEmergencyWithdrawal, acc, principal, new(big.Int), now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return principal, nil
}

// mutate runs op under the custody guard and a state checkpoint: the busy
// flag rejects reentrant entry, and any error reverts every state change the
// op made.
func (v *Staking) mutate(name string, op func() error) error {
	if err := v.guard.enter(); err != nil {
		return err
	}
	defer v.guard.exit()

	checkpoint := v.state.NewCheckpoint()
	if err := op(); err != nil {
		v.state.RevertTo(checkpoint)
		logger.Info("operation rejected", "op", name, "error", err)
		return err
	}
	metricOp().AddWithLabel(1, map[string]string{"op": name})
	return nil
}

func (v *Staking) requireNotPaused() error {
	paused, err := v.auth.Paused()
	if err != nil {
		return err
	}
	if paused {
		return reverts.New("paused")
	}
	return nil
}

// accrue loads the account record and settles pending rewards up to now.
// The returned record is not yet stored.
func (v *Staking) accrue(acc vault.Address, now uint64) (*Stake, error) {
	stake, err := v.store.GetStake(acc)
	if err != nil {
		return nil, err
	}
	rate, err := v.auth.RewardRate()
	if err != nil {
		return nil, err
	}
	stake.Accrue(now, rate)
	return stake, nil
}

// record sinks an audit event; a failing recorder never fails the operation.
func (v *Staking) record(name string, acc vault.Address, amount, balance *big.Int, now uint64) {
	if v.recorder == nil {
		return
	}
	if err := v.recorder.RecordEvent(&vault.Event{
		Name:    name,
		Account: acc,
		Amount:  amount,
		Balance: balance,
		Time:    now,
	}); err != nil {
		logger.Warn("event recording failed", "event", name, "error", err)
	}
}
