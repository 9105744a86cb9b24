// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakevault/stakevault/builtin/staking"
	"github.com/stakevault/stakevault/vault"
)

func TestStakePendingAt(t *testing.T) {
	rate := big.NewInt(1e14)

	stake := &staking.Stake{
		Principal:  big.NewInt(1e18),
		Accrued:    new(big.Int),
		LastUpdate: 100,
	}

	// principal * elapsed * rate / scale
	expected := new(big.Int).Mul(big.NewInt(1e18), big.NewInt(50))
	expected.Mul(expected, rate)
	expected.Div(expected, vault.RewardScale)

	tests := []struct {
		ret      any
		expected any
	}{
		{stake.PendingAt(150, rate), expected},
		{stake.PendingAt(100, rate), new(big.Int)},
		{stake.PendingAt(50, rate), new(big.Int)},
		{stake.PendingAt(150, new(big.Int)), new(big.Int)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.ret)
	}

	// a stake touched at time zero accrues from time zero
	fresh := &staking.Stake{Principal: big.NewInt(1e18), Accrued: new(big.Int)}
	expected = new(big.Int).Mul(big.NewInt(100), rate)
	assert.Equal(t, expected, fresh.PendingAt(100, rate))

	// zero principal accrues nothing
	idle := &staking.Stake{Principal: new(big.Int), Accrued: new(big.Int), LastUpdate: 100}
	assert.Equal(t, new(big.Int), idle.PendingAt(200, rate))
}

func TestStakeAccrue(t *testing.T) {
	rate := big.NewInt(1e14)

	stake := &staking.Stake{
		Principal:  big.NewInt(1e18),
		Accrued:    new(big.Int),
		LastUpdate: 100,
	}

	stake.Accrue(200, rate)
	first := new(big.Int).Set(stake.Accrued)
	assert.Equal(t, 1, first.Sign())
	assert.Equal(t, uint64(200), stake.LastUpdate)

	// settling twice at the same instant adds nothing
	stake.Accrue(200, rate)
	assert.Equal(t, first, stake.Accrued)

	// the baseline never moves backwards
	stake.Accrue(150, rate)
	assert.Equal(t, first, stake.Accrued)
	assert.Equal(t, uint64(200), stake.LastUpdate)

	// zero principal still advances the baseline
	idle := &staking.Stake{Principal: new(big.Int), Accrued: new(big.Int), LastUpdate: 100}
	idle.Accrue(300, rate)
	assert.Equal(t, 0, idle.Accrued.Sign())
	assert.Equal(t, uint64(300), idle.LastUpdate)
}

func TestStakeIsEmpty(t *testing.T) {
	assert.True(t, (&staking.Stake{Principal: new(big.Int), Accrued: new(big.Int)}).IsEmpty())
	assert.False(t, (&staking.Stake{Principal: big.NewInt(1), Accrued: new(big.Int)}).IsEmpty())
	assert.False(t, (&staking.Stake{Principal: new(big.Int), Accrued: big.NewInt(1)}).IsEmpty())
	assert.False(t, (&staking.Stake{Principal: new(big.Int), Accrued: new(big.Int), LastUpdate: 1}).IsEmpty())
}
