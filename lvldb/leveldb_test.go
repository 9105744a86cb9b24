// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakevault/stakevault/kv"
)

func TestLevelDB(t *testing.T) {
	var lvldbs []*LevelDB
	var (
		key        = []byte("123")
		value      = []byte("456")
		invalidKey = []byte("abc")
	)

	db, err := New(filepath.Join(t.TempDir(), "main.db"), Options{16, 16})
	assert.Equal(t, err, nil)
	defer db.Close()
	lvldbs = append(lvldbs, db)

	memdb, err := NewMem()
	assert.Equal(t, err, nil)
	defer memdb.Close()
	lvldbs = append(lvldbs, memdb)

	for _, leveldb := range lvldbs {
		err = leveldb.Put(key, value)
		assert.Equal(t, err, nil)

		ret1, err := leveldb.Get(key)
		assert.Equal(t, err, nil)

		ret2, err := leveldb.Has(key)
		assert.Equal(t, err, nil)

		ret3, err := leveldb.Has(invalidKey)
		assert.Equal(t, err, nil)

		err = leveldb.Delete(key)
		assert.Equal(t, err, nil)

		_, ret4 := leveldb.Get(key)

		tests := []struct {
			ret      any
			expected any
		}{
			{ret1, value},
			{ret2, true},
			{ret3, false},
			{leveldb.IsNotFound(ret4), true},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.ret)
		}
	}
}

func TestLevelDBBatch(t *testing.T) {
	var (
		key   = []byte("123")
		value = []byte("456")
	)
	db, err := NewMem()
	assert.Equal(t, err, nil)
	defer db.Close()

	batch := db.NewBatch()
	assert.Equal(t, batch.Len(), 0)

	err = batch.Put(key, value)
	assert.Equal(t, err, nil)
	assert.Equal(t, batch.Len(), 1)

	err = batch.Write()
	assert.Equal(t, err, nil)

	got, err := db.Get(key)
	assert.Equal(t, err, nil)
	assert.Equal(t, value, got)

	batch = db.NewBatch()
	err = batch.Delete(key)
	assert.Equal(t, err, nil)
	err = batch.Write()
	assert.Equal(t, err, nil)

	has, err := db.Has(key)
	assert.Equal(t, err, nil)
	assert.Equal(t, false, has)
}

func TestLevelDBIterator(t *testing.T) {
	db, err := NewMem()
	assert.Equal(t, err, nil)
	defer db.Close()

	keys := [][]byte{[]byte("a1"), []byte("a2"), []byte("b1")}
	for _, k := range keys {
		assert.Equal(t, db.Put(k, k), nil)
	}

	it := db.NewIterator(kv.Range{From: []byte("a"), To: []byte("b")})
	defer it.Release()

	var n int
	for it.Next() {
		n++
	}
	assert.Equal(t, it.Error(), nil)
	assert.Equal(t, 2, n)
}
