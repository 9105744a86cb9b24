// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stakevault/stakevault/eventdb"
	"github.com/stakevault/stakevault/vault"
)

func TestEventDB(t *testing.T) {
	db, err := eventdb.NewMem()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	alice := vault.BytesToAddress([]byte("alice"))
	bob := vault.BytesToAddress([]byte("bob"))

	for i := 0; i < 10; i++ {
		acc := alice
		name := vault.EventDeposit
		if i%2 == 1 {
			acc = bob
			name = vault.EventWithdrawal
		}
		err := db.RecordEvent(&vault.Event{
			Name:    name,
			Account: acc,
			Amount:  big.NewInt(int64(100 + i)),
			Balance: big.NewInt(int64(1000 + i)),
			Time:    uint64(i),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	all, err := db.Filter(nil)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 10, len(all))

	deposits, err := db.Filter(&eventdb.Filter{Name: vault.EventDeposit})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 5, len(deposits))
	for _, ev := range deposits {
		assert.Equal(t, alice, ev.Account)
	}

	ranged, err := db.Filter(&eventdb.Filter{
		Account: &bob,
		Range:   &eventdb.Range{From: 3, To: 7},
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 3, len(ranged))

	desc, err := db.Filter(&eventdb.Filter{
		Order:   eventdb.DESC,
		Options: &eventdb.Options{Offset: 0, Limit: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 3, len(desc))
	assert.Equal(t, uint64(9), desc[0].Time)
	assert.Equal(t, big.NewInt(109), desc[0].Amount)
}
