// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"

	"github.com/stakevault/stakevault/builtin/sslot"
	"github.com/stakevault/stakevault/state"
	"github.com/stakevault/stakevault/vault"
)

// Params binder of the global parameter store.
type Params struct {
	context *sslot.Context
}

func New(addr vault.Address, state *state.State) *Params {
	return &Params{sslot.NewContext(addr, state)}
}

// Get native way to get param.
func (p *Params) Get(key vault.Bytes32) (*big.Int, error) {
	return sslot.NewUint256(p.context, key).Get()
}

// Set native way to set param.
func (p *Params) Set(key vault.Bytes32, value *big.Int) {
	sslot.NewUint256(p.context, key).Set(value)
}
