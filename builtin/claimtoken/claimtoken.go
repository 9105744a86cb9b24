// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package claimtoken implements the fungible claim-unit ledger. Claim tokens
// are minted 1:1 against deposited principal and burned 1:1 on withdrawal;
// mint and burn are restricted to a single controller, the staking contract.
package claimtoken

import (
	"math/big"

	"github.com/stakevault/stakevault/builtin/reverts"
	"github.com/stakevault/stakevault/builtin/sslot"
	"github.com/stakevault/stakevault/log"
	"github.com/stakevault/stakevault/state"
	"github.com/stakevault/stakevault/vault"
)

var logger = log.WithContext("pkg", "claimtoken")

var (
	slotBalances    = nameToSlot("balances")
	slotAllowances  = nameToSlot("allowances")
	slotTotalSupply = nameToSlot("total-supply")
)

func nameToSlot(name string) vault.Bytes32 {
	return vault.BytesToBytes32([]byte(name))
}

// BurnHook is a receiver callback invoked after the holder's tokens are
// burned. Registering a hook is what marks an address as contract-like.
// Hook failures are swallowed; a burn never fails because its notification
// failed.
type BurnHook func(amount *big.Int) error

// ClaimToken binder of the claim-token ledger.
type ClaimToken struct {
	context    *sslot.Context
	controller vault.Address

	balances    *sslot.Mapping[vault.Address, *big.Int]
	allowances  *sslot.Mapping[vault.Bytes32, *big.Int]
	totalSupply *sslot.Uint256

	burnHooks map[vault.Address]BurnHook
}

// New create a new instance. Mint and burn will only accept calls from the
// controller address.
func New(addr vault.Address, state *state.State, controller vault.Address) *ClaimToken {
	context := sslot.NewContext(addr, state)
	return &ClaimToken{
		context:     context,
		controller:  controller,
		balances:    sslot.NewMapping[vault.Address, *big.Int](context, slotBalances),
		allowances:  sslot.NewMapping[vault.Bytes32, *big.Int](context, slotAllowances),
		totalSupply: sslot.NewUint256(context, slotTotalSupply),
		burnHooks:   make(map[vault.Address]BurnHook),
	}
}

func allowanceKey(owner, spender vault.Address) vault.Bytes32 {
	return vault.Blake2b(owner.Bytes(), spender.Bytes())
}

// TotalSupply returns total supply of claim tokens.
func (c *ClaimToken) TotalSupply() (*big.Int, error) {
	return c.totalSupply.Get()
}

// BalanceOf returns claim-token balance of an account.
func (c *ClaimToken) BalanceOf(addr vault.Address) (*big.Int, error) {
	return c.balances.Get(addr)
}

// SetBurnHook registers (or clears, with nil) the burn notification callback
// for an account.
func (c *ClaimToken) SetBurnHook(addr vault.Address, hook BurnHook) {
	if hook == nil {
		delete(c.burnHooks, addr)
		return
	}
	c.burnHooks[addr] = hook
}

func (c *ClaimToken) requireController(caller vault.Address) error {
	if caller != c.controller {
		return reverts.New("builtin: caller is not the controller")
	}
	return nil
}

// Mint creates amount tokens for the given account.
// Restricted to the controller.
func (c *ClaimToken) Mint(caller, to vault.Address, amount *big.Int) error {
	if err := c.requireController(caller); err != nil {
		return err
	}
	if amount.Sign() < 0 {
		return reverts.New("negative amount")
	}
	bal, err := c.balances.Get(to)
	if err != nil {
		return err
	}
	if err := c.balances.Set(to, new(big.Int).Add(bal, amount)); err != nil {
		return err
	}
	return c.totalSupply.Add(amount)
}

// Burn destroys amount tokens of the given account.
// Restricted to the controller. The holder's burn hook, if any, is notified
// best-effort after the ledger has settled.
func (c *ClaimToken) Burn(caller, from vault.Address, amount *big.Int) error {
	if err := c.requireController(caller); err != nil {
		return err
	}
	if amount.Sign() < 0 {
		return reverts.New("negative amount")
	}
	bal, err := c.balances.Get(from)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.New("insufficient claim token balance")
	}
	if err := c.balances.Set(from, new(big.Int).Sub(bal, amount)); err != nil {
		return err
	}
	if err := c.totalSupply.Sub(amount); err != nil {
		return err
	}
	if hook := c.burnHooks[from]; hook != nil {
		if err := hook(amount); err != nil {
			logger.Warn("burn notification failed", "account", from, "error", err)
		}
	}
	return nil
}

// Transfer moves amount tokens from one account to another.
func (c *ClaimToken) Transfer(from, to vault.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.New("negative amount")
	}
	fromBal, err := c.balances.Get(from)
	if err != nil {
		return err
	}
	if fromBal.Cmp(amount) < 0 {
		return reverts.New("insufficient claim token balance")
	}
	if err := c.balances.Set(from, new(big.Int).Sub(fromBal, amount)); err != nil {
		return err
	}
	toBal, err := c.balances.Get(to)
	if err != nil {
		return err
	}
	return c.balances.Set(to, new(big.Int).Add(toBal, amount))
}

// Approve sets the allowance of a spender over the owner's tokens.
func (c *ClaimToken) Approve(owner, spender vault.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return reverts.New("negative amount")
	}
	return c.allowances.Set(allowanceKey(owner, spender), amount)
}

// Allowance returns the remaining allowance of a spender over the owner's tokens.
func (c *ClaimToken) Allowance(owner, spender vault.Address) (*big.Int, error) {
	return c.allowances.Get(allowanceKey(owner, spender))
}

// TransferFrom moves amount tokens using the spender's allowance.
func (c *ClaimToken) TransferFrom(spender, from, to vault.Address, amount *big.Int) error {
	allowed, err := c.allowances.Get(allowanceKey(from, spender))
	if err != nil {
		return err
	}
	if allowed.Cmp(amount) < 0 {
		return reverts.New("insufficient allowance")
	}
	if err := c.Transfer(from, to, amount); err != nil {
		return err
	}
	return c.allowances.Set(allowanceKey(from, spender), new(big.Int).Sub(allowed, amount))
}
