// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"
)

// Names of observable events.
const (
	EventDeposit             = "Deposit"
	EventWithdrawal          = "Withdrawal"
	EventRewardClaim         = "RewardClaim"
	EventEmergencyWithdrawal = "EmergencyWithdrawal"
	EventRewardRateChanged   = "RewardRateChanged"
	EventHoldPeriodChanged   = "HoldPeriodChanged"
	EventPaused              = "Paused"
	EventUnpaused            = "Unpaused"
)

// Event is an observable ledger event, for audit/indexing.
// Events are not correctness-critical and recording them is best-effort.
type Event struct {
	Name    string
	Account Address
	Amount  *big.Int
	// Balance resulting account figure the event refers to, when applicable:
	// principal for deposits/withdrawals, accrued rewards for claims,
	// the new parameter value for parameter changes.
	Balance *big.Int
	Time    uint64
}

// EventRecorder sinks ledger events.
type EventRecorder interface {
	RecordEvent(ev *Event) error
}
