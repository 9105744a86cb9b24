// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/stakevault/stakevault/builtin/sslot"
	"github.com/stakevault/stakevault/state"
	"github.com/stakevault/stakevault/vault"
)

var (
	slotStakes         = nameToSlot("stakes")
	slotTotalPrincipal = nameToSlot("total-principal")
)

func nameToSlot(name string) vault.Bytes32 {
	return vault.BytesToBytes32([]byte(name))
}

// storage represents the root storage for the staking contract.
// Entry positions are pure functions of account key and base slot, stable
// across code versions.
type storage struct {
	context        *sslot.Context
	stakes         *sslot.Mapping[vault.Address, *Stake]
	totalPrincipal *sslot.Uint256
}

// newStorage creates a new instance of storage.
func newStorage(addr vault.Address, state *state.State) *storage {
	context := sslot.NewContext(addr, state)
	return &storage{
		context:        context,
		stakes:         sslot.NewMapping[vault.Address, *Stake](context, slotStakes),
		totalPrincipal: sslot.NewUint256(context, slotTotalPrincipal),
	}
}

func (s *storage) GetStake(acc vault.Address) (*Stake, error) {
	stake, err := s.stakes.Get(acc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake")
	}
	return stake.ensure(), nil
}

func (s *storage) SetStake(acc vault.Address, stake *Stake) error {
	if err := s.stakes.Set(acc, stake); err != nil {
		return errors.Wrap(err, "failed to set stake")
	}
	return nil
}

func (s *storage) GetTotalPrincipal() (*big.Int, error) {
	return s.totalPrincipal.Get()
}

func (s *storage) AddTotalPrincipal(amount *big.Int) error {
	return s.totalPrincipal.Add(amount)
}

func (s *storage) SubTotalPrincipal(amount *big.Int) error {
	return s.totalPrincipal.Sub(amount)
}
