// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/stakevault/stakevault/builtin/reverts"
	"github.com/stakevault/stakevault/vault"
)

// ReceiveHook is recipient code run while an outbound transfer is in flight.
// The recipient may attempt anything, including calling back into the vault;
// the busy flag rejects such nested calls. A non-nil error from the hook is a
// hard failure that unwinds the whole operation.
type ReceiveHook func(amount *big.Int) error

// guard enforces mutual exclusion across the whole operation set: a single
// busy flag, set on entry and cleared unconditionally on every exit path.
type guard struct {
	busy bool
}

func (g *guard) enter() error {
	if g.busy {
		return reverts.New("reentrant call")
	}
	g.busy = true
	return nil
}

func (g *guard) exit() {
	g.busy = false
}

// SetReceiveHook registers (or clears, with nil) the receive callback of an
// account, the stand-in for contract code at the address.
func (v *Staking) SetReceiveHook(addr vault.Address, hook ReceiveHook) {
	if hook == nil {
		delete(v.hooks, addr)
		return
	}
	v.hooks[addr] = hook
}

// collect pulls base asset from an account into vault custody.
func (v *Staking) collect(from vault.Address, amount *big.Int) error {
	bal, err := v.state.GetBalance(from)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return reverts.New("insufficient balance")
	}
	v.state.SetBalance(from, new(big.Int).Sub(bal, amount))
	custody, err := v.state.GetBalance(v.addr)
	if err != nil {
		return err
	}
	v.state.SetBalance(v.addr, new(big.Int).Add(custody, amount))
	return nil
}

// payout pushes base asset out of vault custody, then hands control to the
// recipient's hook. All ledger state must be settled before calling payout:
// the hook observes post-operation state, and anything it does wrong fails
// the operation as a whole.
func (v *Staking) payout(to vault.Address, amount *big.Int) error {
	custody, err := v.state.GetBalance(v.addr)
	if err != nil {
		return err
	}
	if custody.Cmp(amount) < 0 {
		return reverts.New("insufficient custody balance")
	}
	v.state.SetBalance(v.addr, new(big.Int).Sub(custody, amount))
	bal, err := v.state.GetBalance(to)
	if err != nil {
		return err
	}
	v.state.SetBalance(to, new(big.Int).Add(bal, amount))

	if hook := v.hooks[to]; hook != nil {
		if err := hook(amount); err != nil {
			return reverts.Errorf("outbound transfer rejected: %v", err)
		}
	}
	return nil
}
