// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sslot

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/stakevault/stakevault/vault"
)

// Key is the constraint of mapping keys.
type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for contracts, similar to the
// mapping in Solidity. Entry positions are derived from the key and the
// mapping's base slot, so the layout is stable across code versions.
type Mapping[K Key, V any] struct {
	context *Context
	basePos vault.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos vault.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

// Get loads the value stored for the given key.
// An absent entry decodes to the zero value (allocated if V is a pointer).
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	position := vault.Blake2b(key.Bytes(), m.basePos.Bytes())
	err = m.context.state.DecodeStorage(m.context.address, position, func(raw []byte) error {
		if reflect.ValueOf(value).Kind() == reflect.Ptr {
			value = reflect.New(reflect.TypeOf(value).Elem()).Interface().(V)
		}
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

// Set stores the value for the given key.
func (m *Mapping[K, V]) Set(key K, value V) error {
	position := vault.Blake2b(key.Bytes(), m.basePos.Bytes())
	return m.context.state.EncodeStorage(m.context.address, position, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}
