// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package authority implements the administrative surface of the vault:
// the owner address, the pause switch and the tunable reward parameters.
// Every write funnels through RequireOwner; the staking core only ever
// consumes the read side.
package authority

import (
	"math/big"

	"github.com/stakevault/stakevault/builtin/params"
	"github.com/stakevault/stakevault/builtin/reverts"
	"github.com/stakevault/stakevault/log"
	"github.com/stakevault/stakevault/vault"
)

var logger = log.WithContext("pkg", "authority")

// Authority owner-gated mutable global configuration.
type Authority struct {
	params   *params.Params
	recorder vault.EventRecorder
}

// New create a new instance.
// recorder may be nil, in which case parameter-change events are dropped.
func New(params *params.Params, recorder vault.EventRecorder) *Authority {
	return &Authority{params: params, recorder: recorder}
}

// Initialize seeds owner and parameters directly, genesis style.
// It must only be used while building the initial state; it performs no
// authorization check. The initial rate may be any non-negative value.
func (a *Authority) Initialize(owner vault.Address, rewardRate *big.Int, minHoldPeriod uint64) error {
	if rewardRate.Sign() < 0 {
		return reverts.New("negative reward rate")
	}
	a.params.Set(vault.KeyVaultOwner, new(big.Int).SetBytes(owner.Bytes()))
	a.params.Set(vault.KeyRewardRate, rewardRate)
	a.params.Set(vault.KeyMinHoldPeriod, new(big.Int).SetUint64(minHoldPeriod))
	return nil
}

// Owner returns the designated administrator.
func (a *Authority) Owner() (vault.Address, error) {
	v, err := a.params.Get(vault.KeyVaultOwner)
	if err != nil {
		return vault.Address{}, err
	}
	return vault.BytesToAddress(v.Bytes()), nil
}

// RequireOwner fails unless the caller is the designated administrator.
func (a *Authority) RequireOwner(caller vault.Address) error {
	owner, err := a.Owner()
	if err != nil {
		return err
	}
	if owner.IsZero() || owner != caller {
		return reverts.New("builtin: caller is not the owner")
	}
	return nil
}

// TransferOwnership hands the administrator role to a new address.
func (a *Authority) TransferOwnership(caller, newOwner vault.Address) error {
	if err := a.RequireOwner(caller); err != nil {
		return err
	}
	if newOwner.IsZero() {
		return reverts.New("builtin: new owner is the zero address")
	}
	a.params.Set(vault.KeyVaultOwner, new(big.Int).SetBytes(newOwner.Bytes()))
	logger.Info("ownership transferred", "from", caller, "to", newOwner)
	return nil
}

// Paused returns the state of the circuit breaker.
func (a *Authority) Paused() (bool, error) {
	v, err := a.params.Get(vault.KeyPaused)
	if err != nil {
		return false, err
	}
	return v.Sign() != 0, nil
}

// Pause halts participant-facing operations, enabling the emergency path.
func (a *Authority) Pause(caller vault.Address, now uint64) error {
	if err := a.RequireOwner(caller); err != nil {
		return err
	}
	a.params.Set(vault.KeyPaused, big.NewInt(1))
	logger.Warn("vault paused", "by", caller)
	a.record(vault.EventPaused, caller, nil, nil, now)
	return nil
}

// Unpause resumes participant-facing operations.
func (a *Authority) Unpause(caller vault.Address, now uint64) error {
	if err := a.RequireOwner(caller); err != nil {
		return err
	}
	a.params.Set(vault.KeyPaused, new(big.Int))
	logger.Info("vault unpaused", "by", caller)
	a.record(vault.EventUnpaused, caller, nil, nil, now)
	return nil
}

// RewardRate returns reward units per unit principal per second at
// vault.RewardScale.
func (a *Authority) RewardRate() (*big.Int, error) {
	return a.params.Get(vault.KeyRewardRate)
}

// SetRewardRate tunes the reward rate. Zero and anything above
// vault.MaxRewardRate are rejected.
func (a *Authority) SetRewardRate(caller vault.Address, rate *big.Int, now uint64) error {
	if err := a.RequireOwner(caller); err != nil {
		return err
	}
	if rate.Sign() <= 0 {
		return reverts.New("reward rate must be positive")
	}
	if rate.Cmp(vault.MaxRewardRate) > 0 {
		return reverts.New("reward rate exceeds maximum")
	}
	a.params.Set(vault.KeyRewardRate, rate)
	logger.Info("reward rate changed", "rate", rate)
	a.record(vault.EventRewardRateChanged, caller, rate, nil, now)
	return nil
}

// MinHoldPeriod returns the minimum holding period in seconds.
func (a *Authority) MinHoldPeriod() (uint64, error) {
	v, err := a.params.Get(vault.KeyMinHoldPeriod)
	if err != nil {
		return 0, err
	}
	return v.Uint64(), nil
}

// SetMinHoldPeriod tunes the minimum holding period.
func (a *Authority) SetMinHoldPeriod(caller vault.Address, seconds uint64, now uint64) error {
	if err := a.RequireOwner(caller); err != nil {
		return err
	}
	period := new(big.Int).SetUint64(seconds)
	a.params.Set(vault.KeyMinHoldPeriod, period)
	logger.Info("min hold period changed", "seconds", seconds)
	a.record(vault.EventHoldPeriodChanged, caller, period, nil, now)
	return nil
}

// record sinks a parameter-change event. Events are audit-only, a failing
// recorder never fails the operation.
func (a *Authority) record(name string, account vault.Address, amount, balance *big.Int, now uint64) {
	if a.recorder == nil {
		return
	}
	if err := a.recorder.RecordEvent(&vault.Event{
		Name:    name,
		Account: account,
		Amount:  amount,
		Balance: balance,
		Time:    now,
	}); err != nil {
		logger.Warn("event recording failed", "event", name, "error", err)
	}
}
