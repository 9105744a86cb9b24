// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/stakevault/stakevault/vault"
)

// Stake is the per-account ledger record.
//
// LastUpdate doubles as the reward-accrual baseline and the hold-period
// anchor: any touch of the record resets the withdrawal clock for the whole
// principal. Downstream behavior depends on that coupling, keep it.
type Stake struct {
	Principal  *big.Int
	Accrued    *big.Int
	LastUpdate uint64
}

// ensure makes the record safe to use after decoding; an absent entry decodes
// with nil figures.
func (s *Stake) ensure() *Stake {
	if s.Principal == nil {
		s.Principal = new(big.Int)
	}
	if s.Accrued == nil {
		s.Accrued = new(big.Int)
	}
	return s
}

// IsEmpty returns whether the record holds nothing. A zeroed record is
// indistinguishable from one that never existed except for LastUpdate
// residue.
func (s *Stake) IsEmpty() bool {
	return s.Principal.Sign() == 0 && s.Accrued.Sign() == 0 && s.LastUpdate == 0
}

// PendingAt computes rewards earned since LastUpdate, without mutating the
// record:
//
//	principal * elapsed * rate / RewardScale
//
// The triple product is carried in a big.Int so it cannot wrap before the
// division. Zero principal or a non-advancing clock accrues nothing.
func (s *Stake) PendingAt(now uint64, rate *big.Int) *big.Int {
	if now <= s.LastUpdate {
		return new(big.Int)
	}
	if s.Principal.Sign() == 0 || rate.Sign() == 0 {
		return new(big.Int)
	}
	x := new(big.Int).SetUint64(now - s.LastUpdate)
	x.Mul(x, s.Principal)
	x.Mul(x, rate)
	return x.Div(x, vault.RewardScale)
}

// Accrue settles pending rewards into Accrued and advances the baseline.
// On zero principal it is a no-op that still advances LastUpdate, so future
// accrual starts from now. The baseline never moves backwards.
func (s *Stake) Accrue(now uint64, rate *big.Int) {
	s.Accrued = new(big.Int).Add(s.Accrued, s.PendingAt(now, rate))
	if now > s.LastUpdate {
		s.LastUpdate = now
	}
}
