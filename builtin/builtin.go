// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the vault contracts to their well-known addresses.
// Addresses are derived from fixed names, never from deployed code, so a code
// upgrade finds the same state where the old code left it.
package builtin

import (
	"github.com/stakevault/stakevault/builtin/authority"
	"github.com/stakevault/stakevault/builtin/claimtoken"
	"github.com/stakevault/stakevault/builtin/params"
	"github.com/stakevault/stakevault/builtin/staking"
	"github.com/stakevault/stakevault/state"
	"github.com/stakevault/stakevault/vault"
)

type contract struct {
	Name    string
	Address vault.Address
}

func nameToAddress(name string) vault.Address {
	return vault.BytesToAddress(vault.Keccak256([]byte(name)).Bytes()[12:])
}

// Builtin contracts binding.
var (
	Params     = &paramsContract{contract{"Params", nameToAddress("stakevault.params")}}
	ClaimToken = &claimTokenContract{contract{"ClaimToken", nameToAddress("stakevault.claimtoken")}}
	Staking    = &stakingContract{contract{"Staking", nameToAddress("stakevault.staking")}}
)

type (
	paramsContract     struct{ contract }
	claimTokenContract struct{ contract }
	stakingContract    struct{ contract }
)

func (p *paramsContract) WithState(state *state.State) *params.Params {
	return params.New(p.Address, state)
}

// Authority binds the administrative surface over the params contract.
func (p *paramsContract) Authority(state *state.State, recorder vault.EventRecorder) *authority.Authority {
	return authority.New(p.WithState(state), recorder)
}

// WithState binds the claim-token ledger, with the staking contract as the
// sole mint/burn controller.
func (c *claimTokenContract) WithState(state *state.State) *claimtoken.ClaimToken {
	return claimtoken.New(c.Address, state, Staking.Address)
}

// WithState binds the staking ledger with all of its collaborators.
func (s *stakingContract) WithState(state *state.State, recorder vault.EventRecorder) *staking.Staking {
	return staking.New(
		s.Address,
		state,
		Params.Authority(state, recorder),
		ClaimToken.WithState(state),
		recorder,
	)
}
