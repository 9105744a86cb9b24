// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"github.com/stakevault/stakevault/state"
	"github.com/stakevault/stakevault/vault"
)

// Context binds a contract address to a state, scoping all storage access to
// that address.
type Context struct {
	address vault.Address
	state   *state.State
}

func NewContext(address vault.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() vault.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
