// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakevault/stakevault/builtin/params"
	"github.com/stakevault/stakevault/lvldb"
	"github.com/stakevault/stakevault/state"
	"github.com/stakevault/stakevault/vault"
)

func TestParamsGetSet(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)
	p := params.New(vault.BytesToAddress([]byte("par")), st)

	key := vault.BytesToBytes32([]byte("key"))

	v, err := p.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, 0, v.Sign())

	p.Set(key, big.NewInt(10))
	v, err = p.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(10), v)

	// params of distinct contracts do not collide
	other := params.New(vault.BytesToAddress([]byte("other")), st)
	v, err = other.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, 0, v.Sign())
}
