// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"
)

// Constants of the vault protocol.
const (
	// InitialMinHoldPeriod default minimum holding period in seconds.
	InitialMinHoldPeriod uint64 = 60 * 60 * 24 // 1 day
)

// Keys of governance params.
var (
	KeyVaultOwner    = BytesToBytes32([]byte("vault-owner"))
	KeyRewardRate    = BytesToBytes32([]byte("reward-rate"))
	KeyMinHoldPeriod = BytesToBytes32([]byte("min-hold-period"))
	KeyPaused        = BytesToBytes32([]byte("paused"))

	// RewardScale fixed-point denominator of the reward rate.
	RewardScale = big.NewInt(1e18)

	// MaxRewardRate upper bound of the reward rate, reward units per unit
	// principal per second at RewardScale. 1e15 is 0.1% per second.
	MaxRewardRate = big.NewInt(1e15)

	// InitialRewardRate about 0.00864 reward units per unit principal per day.
	InitialRewardRate = big.NewInt(1e14)
)
