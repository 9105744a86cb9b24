// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakevault/stakevault/builtin"
	"github.com/stakevault/stakevault/lvldb"
	"github.com/stakevault/stakevault/state"
	"github.com/stakevault/stakevault/vault"
)

func TestContractAddresses(t *testing.T) {
	// addresses are derived from fixed names; distinct and stable
	assert.False(t, builtin.Params.Address.IsZero())
	assert.False(t, builtin.ClaimToken.Address.IsZero())
	assert.False(t, builtin.Staking.Address.IsZero())
	assert.NotEqual(t, builtin.Params.Address, builtin.ClaimToken.Address)
	assert.NotEqual(t, builtin.Params.Address, builtin.Staking.Address)
	assert.NotEqual(t, builtin.ClaimToken.Address, builtin.Staking.Address)
}

func TestBindings(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	owner := vault.BytesToAddress([]byte("owner"))
	auth := builtin.Params.Authority(st, nil)
	assert.Nil(t, auth.Initialize(owner, vault.InitialRewardRate, vault.InitialMinHoldPeriod))

	v := builtin.Staking.WithState(st, nil)
	assert.Equal(t, builtin.Staking.Address, v.Address())

	// full round trip through the bound contracts
	acc := vault.BytesToAddress([]byte("a1"))
	st.SetBalance(acc, big.NewInt(1e18))
	assert.Nil(t, v.Deposit(acc, big.NewInt(1e18), 1000))

	tokenBal, err := v.Token().BalanceOf(acc)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(1e18), tokenBal)

	// committed state is visible to a fresh binding
	assert.Nil(t, st.Commit())
	v2 := builtin.Staking.WithState(state.New(kv), nil)
	total, err := v2.GetTotalPrincipal()
	assert.Nil(t, err)
	assert.Equal(t, 0, total.Cmp(big.NewInt(1e18)))
}
