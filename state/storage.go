// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/stakevault/stakevault/vault"
)

// Prefixes partition the backing store; keys are fixed-length so entries
// can never collide across namespaces.
var (
	balanceKeyPrefix = []byte("b/")
	storageKeyPrefix = []byte("s/")
)

func balanceDBKey(addr vault.Address) []byte {
	k := make([]byte, 0, len(balanceKeyPrefix)+vault.AddressLength)
	k = append(k, balanceKeyPrefix...)
	return append(k, addr.Bytes()...)
}

func storageDBKey(addr vault.Address, key vault.Bytes32) []byte {
	k := make([]byte, 0, len(storageKeyPrefix)+vault.AddressLength+32)
	k = append(k, storageKeyPrefix...)
	k = append(k, addr.Bytes()...)
	return append(k, key.Bytes()...)
}

func trimLeadingZeros(b []byte) []byte {
	i := 0
	for i < len(b) && b[i] == 0 {
		i++
	}
	return b[i:]
}

// StorageEncoder is the interface of the object to encode itself into raw storage value.
type StorageEncoder interface {
	Encode() ([]byte, error)
}

// StorageDecoder is the interface of the object to decode itself from raw storage value.
type StorageDecoder interface {
	Decode([]byte) error
}

// GetStructuredStorage get and decode a structured storage value.
func (s *State) GetStructuredStorage(addr vault.Address, key vault.Bytes32, val StorageDecoder) error {
	return s.DecodeStorage(addr, key, val.Decode)
}

// SetStructuredStorage encode and set a structured storage value.
func (s *State) SetStructuredStorage(addr vault.Address, key vault.Bytes32, val StorageEncoder) error {
	return s.EncodeStorage(addr, key, val.Encode)
}
