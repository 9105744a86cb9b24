// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package authority_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakevault/stakevault/builtin/authority"
	"github.com/stakevault/stakevault/builtin/params"
	"github.com/stakevault/stakevault/builtin/reverts"
	"github.com/stakevault/stakevault/lvldb"
	"github.com/stakevault/stakevault/state"
	"github.com/stakevault/stakevault/vault"
)

var (
	owner    = vault.BytesToAddress([]byte("owner"))
	stranger = vault.BytesToAddress([]byte("stranger"))
)

func newTestAuthority(t *testing.T) *authority.Authority {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)
	auth := authority.New(params.New(vault.BytesToAddress([]byte("par")), st), nil)
	if err := auth.Initialize(owner, vault.InitialRewardRate, vault.InitialMinHoldPeriod); err != nil {
		t.Fatal(err)
	}
	return auth
}

func TestAuthorityInitialize(t *testing.T) {
	auth := newTestAuthority(t)

	got, err := auth.Owner()
	assert.Nil(t, err)
	assert.Equal(t, owner, got)

	rate, err := auth.RewardRate()
	assert.Nil(t, err)
	assert.Equal(t, vault.InitialRewardRate, rate)

	period, err := auth.MinHoldPeriod()
	assert.Nil(t, err)
	assert.Equal(t, vault.InitialMinHoldPeriod, period)

	paused, err := auth.Paused()
	assert.Nil(t, err)
	assert.False(t, paused)
}

func TestAuthorityOwnerGate(t *testing.T) {
	auth := newTestAuthority(t)

	tests := []struct {
		name string
		err  error
	}{
		{"pause", auth.Pause(stranger, 0)},
		{"unpause", auth.Unpause(stranger, 0)},
		{"set rate", auth.SetRewardRate(stranger, big.NewInt(1), 0)},
		{"set hold period", auth.SetMinHoldPeriod(stranger, 60, 0)},
		{"transfer ownership", auth.TransferOwnership(stranger, stranger)},
	}
	for _, tt := range tests {
		assert.EqualError(t, tt.err, "builtin: caller is not the owner", tt.name)
		assert.True(t, reverts.IsRevertErr(tt.err), tt.name)
	}
}

func TestAuthorityPause(t *testing.T) {
	auth := newTestAuthority(t)

	assert.Nil(t, auth.Pause(owner, 0))
	paused, _ := auth.Paused()
	assert.True(t, paused)

	assert.Nil(t, auth.Unpause(owner, 0))
	paused, _ = auth.Paused()
	assert.False(t, paused)
}

func TestAuthoritySetRewardRate(t *testing.T) {
	auth := newTestAuthority(t)

	assert.EqualError(t, auth.SetRewardRate(owner, new(big.Int), 0), "reward rate must be positive")
	assert.EqualError(t, auth.SetRewardRate(owner, big.NewInt(-1), 0), "reward rate must be positive")

	tooHigh := new(big.Int).Add(vault.MaxRewardRate, big.NewInt(1))
	assert.EqualError(t, auth.SetRewardRate(owner, tooHigh, 0), "reward rate exceeds maximum")

	assert.Nil(t, auth.SetRewardRate(owner, vault.MaxRewardRate, 0))
	rate, _ := auth.RewardRate()
	assert.Equal(t, vault.MaxRewardRate, rate)
}

func TestAuthoritySetMinHoldPeriod(t *testing.T) {
	auth := newTestAuthority(t)

	assert.Nil(t, auth.SetMinHoldPeriod(owner, 0, 0))
	period, _ := auth.MinHoldPeriod()
	assert.Equal(t, uint64(0), period)

	assert.Nil(t, auth.SetMinHoldPeriod(owner, 3600, 0))
	period, _ = auth.MinHoldPeriod()
	assert.Equal(t, uint64(3600), period)
}

func TestAuthorityTransferOwnership(t *testing.T) {
	auth := newTestAuthority(t)

	assert.EqualError(t, auth.TransferOwnership(owner, vault.Address{}), "builtin: new owner is the zero address")

	newOwner := vault.BytesToAddress([]byte("new-owner"))
	assert.Nil(t, auth.TransferOwnership(owner, newOwner))

	got, _ := auth.Owner()
	assert.Equal(t, newOwner, got)

	// previous owner lost the role
	assert.EqualError(t, auth.Pause(owner, 0), "builtin: caller is not the owner")
	assert.Nil(t, auth.Pause(newOwner, 0))
}
