// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/stakevault/stakevault/kv"
	"github.com/stakevault/stakevault/stackedmap"
	"github.com/stakevault/stakevault/vault"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

type (
	balanceKey vault.Address
	storageKey struct {
		addr vault.Address
		key  vault.Bytes32
	}
)

// State manages the world state: base-asset balances per address and
// structured storage per contract address.
//
// All mutations are journaled and become persistent only on Commit. Keys of
// the backing store are pure functions of (address, storage key), independent
// of the code interpreting the values, so that replacing the interpreting
// code never strands the state.
type State struct {
	kv kv.GetPutter
	sm *stackedmap.StackedMap // keeps revisions of state
}

// New create a state object backed by the given key-value store.
func New(kvStore kv.GetPutter) *State {
	state := State{kv: kvStore}
	state.sm = stackedmap.New(func(key any) (any, bool, error) {
		return state.srcGetter(key)
	})
	// base layer holds uncommitted changes
	state.sm.Push()
	return &state
}

// srcGetter implements stackedmap.MapGetter, loading from the backing store.
func (s *State) srcGetter(key any) (value any, exist bool, err error) {
	switch k := key.(type) {
	case balanceKey:
		data, err := s.kv.Get(balanceDBKey(vault.Address(k)))
		if err != nil {
			if s.kv.IsNotFound(err) {
				return &big.Int{}, true, nil
			}
			return nil, false, err
		}
		var bal big.Int
		if err := rlp.DecodeBytes(data, &bal); err != nil {
			return nil, false, err
		}
		return &bal, true, nil
	case storageKey:
		data, err := s.kv.Get(storageDBKey(k.addr, k.key))
		if err != nil {
			if s.kv.IsNotFound(err) {
				return rlp.RawValue(nil), true, nil
			}
			return nil, false, err
		}
		return rlp.RawValue(data), true, nil
	}
	panic(fmt.Errorf("unexpected key type %+v", key))
}

// GetBalance returns base-asset balance for the given address.
// The returned value must not be modified by the caller.
func (s *State) GetBalance(addr vault.Address) (*big.Int, error) {
	v, _, err := s.sm.Get(balanceKey(addr))
	if err != nil {
		return nil, &Error{err}
	}
	return v.(*big.Int), nil
}

// SetBalance set base-asset balance for the given address.
func (s *State) SetBalance(addr vault.Address, balance *big.Int) {
	s.sm.Put(balanceKey(addr), balance)
}

// GetRawStorage returns raw storage value for the given address and key.
func (s *State) GetRawStorage(addr vault.Address, key vault.Bytes32) (rlp.RawValue, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v.(rlp.RawValue), nil
}

// SetRawStorage set raw storage value for the given address and key.
// Empty raw value clears the entry.
func (s *State) SetRawStorage(addr vault.Address, key vault.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns storage value decoded as Bytes32.
func (s *State) GetStorage(addr vault.Address, key vault.Bytes32) (vault.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return vault.Bytes32{}, err
	}
	if len(raw) == 0 {
		return vault.Bytes32{}, nil
	}
	_, content, _, err := rlp.Split(raw)
	if err != nil {
		return vault.Bytes32{}, &Error{err}
	}
	return vault.BytesToBytes32(content), nil
}

// SetStorage set storage value encoded from Bytes32.
// Zero value clears the entry.
func (s *State) SetStorage(addr vault.Address, key, value vault.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(trimLeadingZeros(value.Bytes()))
	s.SetRawStorage(addr, key, v)
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr vault.Address, key vault.Bytes32, decode func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := decode(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// EncodeStorage encode and set storage value.
func (s *State) EncodeStorage(addr vault.Address, key vault.Bytes32, encode func() ([]byte, error)) error {
	raw, err := encode()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to the given revision, abandoning all changes made after
// the checkpoint was taken.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit flushes all journaled changes into the backing store.
func (s *State) Commit() error {
	batch := s.kv.NewBatch()
	var werr error
	s.sm.Journal(func(key, value any) bool {
		switch k := key.(type) {
		case balanceKey:
			bal := value.(*big.Int)
			if bal.Sign() == 0 {
				werr = batch.Delete(balanceDBKey(vault.Address(k)))
			} else {
				var data []byte
				if data, werr = rlp.EncodeToBytes(bal); werr == nil {
					werr = batch.Put(balanceDBKey(vault.Address(k)), data)
				}
			}
		case storageKey:
			raw := value.(rlp.RawValue)
			if len(raw) == 0 {
				werr = batch.Delete(storageDBKey(k.addr, k.key))
			} else {
				werr = batch.Put(storageDBKey(k.addr, k.key), raw)
			}
		}
		return werr == nil
	})
	if werr != nil {
		return &Error{werr}
	}
	if err := batch.Write(); err != nil {
		return &Error{err}
	}
	metricCommits().Add(1)
	return nil
}
