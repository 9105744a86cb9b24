// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakevault/stakevault/builtin/sslot"
	"github.com/stakevault/stakevault/lvldb"
	"github.com/stakevault/stakevault/state"
	"github.com/stakevault/stakevault/vault"
)

func newTestContext() *sslot.Context {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)
	return sslot.NewContext(vault.BytesToAddress([]byte("c1")), st)
}

func TestMapping(t *testing.T) {
	ctx := newTestContext()
	m := sslot.NewMapping[vault.Address, *big.Int](ctx, vault.BytesToBytes32([]byte("balances")))

	acc := vault.BytesToAddress([]byte("a1"))

	v, err := m.Get(acc)
	assert.Nil(t, err)
	assert.Equal(t, &big.Int{}, v)

	assert.Nil(t, m.Set(acc, big.NewInt(42)))
	v, err = m.Get(acc)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(42), v)

	// other keys are unaffected
	v, err = m.Get(vault.BytesToAddress([]byte("a2")))
	assert.Nil(t, err)
	assert.Equal(t, &big.Int{}, v)
}

func TestMappingStruct(t *testing.T) {
	type entry struct {
		Amount *big.Int
		Time   uint64
	}

	ctx := newTestContext()
	m := sslot.NewMapping[vault.Address, *entry](ctx, vault.BytesToBytes32([]byte("entries")))

	acc := vault.BytesToAddress([]byte("a1"))

	v, err := m.Get(acc)
	assert.Nil(t, err)
	assert.Equal(t, &entry{}, v)

	assert.Nil(t, m.Set(acc, &entry{Amount: big.NewInt(7), Time: 100}))
	v, err = m.Get(acc)
	assert.Nil(t, err)
	assert.Equal(t, &entry{Amount: big.NewInt(7), Time: 100}, v)
}

func TestUint256(t *testing.T) {
	ctx := newTestContext()
	u := sslot.NewUint256(ctx, vault.BytesToBytes32([]byte("total")))

	v, err := u.Get()
	assert.Nil(t, err)
	assert.Equal(t, 0, v.Sign())

	u.Set(big.NewInt(100))
	v, err = u.Get()
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(100), v)

	assert.Nil(t, u.Add(big.NewInt(50)))
	v, _ = u.Get()
	assert.Equal(t, big.NewInt(150), v)

	assert.Nil(t, u.Sub(big.NewInt(150)))
	v, _ = u.Get()
	assert.Equal(t, 0, v.Sign())

	err = u.Sub(big.NewInt(1))
	assert.EqualError(t, err, "uint256 underflow")
}
