// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakevault/stakevault/lvldb"
	"github.com/stakevault/stakevault/state"
	"github.com/stakevault/stakevault/vault"
)

func TestStateBalance(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	acc := vault.BytesToAddress([]byte("a1"))

	bal, err := st.GetBalance(acc)
	assert.Nil(t, err)
	assert.Equal(t, &big.Int{}, bal)

	st.SetBalance(acc, big.NewInt(10))
	bal, err = st.GetBalance(acc)
	assert.Nil(t, err)
	assert.Equal(t, big.NewInt(10), bal)
}

func TestStateStorage(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	addr := vault.BytesToAddress([]byte("c1"))
	key := vault.BytesToBytes32([]byte("key"))
	value := vault.BytesToBytes32([]byte("value"))

	got, err := st.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, vault.Bytes32{}, got)

	st.SetStorage(addr, key, value)
	got, err = st.GetStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, value, got)

	st.SetStorage(addr, key, vault.Bytes32{})
	raw, err := st.GetRawStorage(addr, key)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(raw))
}

func TestStateRevert(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	acc := vault.BytesToAddress([]byte("a1"))
	key := vault.BytesToBytes32([]byte("key"))
	value := vault.BytesToBytes32([]byte("value"))

	st.SetBalance(acc, big.NewInt(10))

	rev := st.NewCheckpoint()
	st.SetBalance(acc, big.NewInt(20))
	st.SetStorage(acc, key, value)
	st.RevertTo(rev)

	bal, _ := st.GetBalance(acc)
	assert.Equal(t, big.NewInt(10), bal)
	got, _ := st.GetStorage(acc, key)
	assert.Equal(t, vault.Bytes32{}, got)
}

func TestStateCommit(t *testing.T) {
	kv, _ := lvldb.NewMem()

	acc := vault.BytesToAddress([]byte("a1"))
	zeroed := vault.BytesToAddress([]byte("a2"))
	key := vault.BytesToBytes32([]byte("key"))
	value := vault.BytesToBytes32([]byte("value"))

	st := state.New(kv)
	st.SetBalance(acc, big.NewInt(10))
	st.SetBalance(zeroed, big.NewInt(5))
	st.SetStorage(acc, key, value)
	st.SetBalance(zeroed, &big.Int{})
	assert.Nil(t, st.Commit())

	// a fresh state over the same store sees the committed values
	st = state.New(kv)
	bal, _ := st.GetBalance(acc)
	assert.Equal(t, big.NewInt(10), bal)
	got, _ := st.GetStorage(acc, key)
	assert.Equal(t, value, got)
	bal, _ = st.GetBalance(zeroed)
	assert.Equal(t, &big.Int{}, bal)
}

type testRecord struct {
	data []byte
}

func (r *testRecord) Encode() ([]byte, error) { return r.data, nil }
func (r *testRecord) Decode(b []byte) error {
	r.data = append([]byte(nil), b...)
	return nil
}

func TestStateStructuredStorage(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	addr := vault.BytesToAddress([]byte("c1"))
	key := vault.BytesToBytes32([]byte("key"))

	err := st.SetStructuredStorage(addr, key, &testRecord{data: []byte{4, 5, 6}})
	assert.Nil(t, err)

	var loaded testRecord
	err = st.GetStructuredStorage(addr, key, &loaded)
	assert.Nil(t, err)
	assert.Equal(t, []byte{4, 5, 6}, loaded.data)
}

func TestStateEncodeDecodeStorage(t *testing.T) {
	kv, _ := lvldb.NewMem()
	st := state.New(kv)

	addr := vault.BytesToAddress([]byte("c1"))
	key := vault.BytesToBytes32([]byte("key"))

	err := st.EncodeStorage(addr, key, func() ([]byte, error) {
		return []byte{1, 2, 3}, nil
	})
	assert.Nil(t, err)

	var decoded []byte
	err = st.DecodeStorage(addr, key, func(b []byte) error {
		decoded = b
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, []byte{1, 2, 3}, decoded)
}
