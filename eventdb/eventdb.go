// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package eventdb persists observable vault events for audit and indexing.
// Events are not correctness-critical; the store is append-only and queried
// by name, account and time range.
package eventdb

import (
	"database/sql"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/stakevault/stakevault/vault"
)

const eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	account BLOB NOT NULL,
	amount TEXT,
	balance TEXT,
	eventTime INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS event_name ON event(name);
CREATE INDEX IF NOT EXISTS event_account ON event(account);`

// OrderType order of queried events.
type OrderType string

const (
	ASC  OrderType = "ASC"
	DESC OrderType = "DESC"
)

// Range time range of a query, [From, To].
type Range struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// Options query pagination.
type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// Filter event query filter.
type Filter struct {
	Name    string         `json:"name"`
	Account *vault.Address `json:"account"`
	Order   OrderType      `json:"order"` // default asc
	Range   *Range
	Options *Options
}

// Event a persisted vault event.
type Event struct {
	Sequence int64
	Name     string
	Account  vault.Address
	Amount   *big.Int
	Balance  *big.Int
	Time     uint64
}

// EventDB manages all recorded events.
type EventDB struct {
	path          string
	db            *sql.DB
	sqliteVersion string
}

var _ vault.EventRecorder = (*EventDB)(nil)

// New open an event db.
func New(path string) (*EventDB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(eventTableSchema); err != nil {
		return nil, err
	}
	s, _, _ := sqlite3.Version()
	return &EventDB{
		path:          path,
		db:            db,
		sqliteVersion: s,
	}, nil
}

// NewMem create a memory sqlite db.
func NewMem() (*EventDB, error) {
	return New(":memory:")
}

// Close closes the event db.
func (db *EventDB) Close() error {
	return db.db.Close()
}

// Path returns the db path.
func (db *EventDB) Path() string {
	return db.path
}

// RecordEvent implements vault.EventRecorder.
func (db *EventDB) RecordEvent(ev *vault.Event) error {
	_, err := db.db.Exec(
		"INSERT INTO event(name, account, amount, balance, eventTime) VALUES (?, ?, ?, ?, ?);",
		ev.Name,
		ev.Account.Bytes(),
		bigValue(ev.Amount),
		bigValue(ev.Balance),
		ev.Time,
	)
	return err
}

// Filter return events with options.
func (db *EventDB) Filter(filter *Filter) ([]*Event, error) {
	if filter == nil {
		return db.query("SELECT seq, name, account, amount, balance, eventTime FROM event")
	}
	var args []any
	stmt := "SELECT seq, name, account, amount, balance, eventTime FROM event WHERE 1"
	if filter.Name != "" {
		args = append(args, filter.Name)
		stmt += " AND name = ? "
	}
	if filter.Account != nil {
		args = append(args, filter.Account.Bytes())
		stmt += " AND account = ? "
	}
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND eventTime >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND eventTime <= ? "
		}
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}
	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.query(stmt, args...)
}

// query queries events.
func (db *EventDB) query(stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			seq       int64
			name      string
			account   []byte
			amount    sql.NullString
			balance   sql.NullString
			eventTime uint64
		)
		if err := rows.Scan(
			&seq,
			&name,
			&account,
			&amount,
			&balance,
			&eventTime,
		); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			Sequence: seq,
			Name:     name,
			Account:  vault.BytesToAddress(account),
			Amount:   parseBig(amount),
			Balance:  parseBig(balance),
			Time:     eventTime,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func bigValue(v *big.Int) any {
	if v == nil {
		return nil
	}
	return v.String()
}

func parseBig(v sql.NullString) *big.Int {
	if !v.Valid {
		return nil
	}
	b, ok := new(big.Int).SetString(v.String, 10)
	if !ok {
		return nil
	}
	return b
}
