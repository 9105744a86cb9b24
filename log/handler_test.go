// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package log

import (
	"bytes"
	"log/slog"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewTerminalHandler(&buf, false))

	l.Info("deposited", "account", "a1", "amount", big.NewInt(1e18))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "INFO "))
	assert.Contains(t, out, "deposited")
	assert.Contains(t, out, "account=a1")
	assert.Contains(t, out, "amount=1000000000000000000")
}

func TestTerminalHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	var level slog.LevelVar
	level.Set(slog.LevelInfo)
	l := NewLogger(NewTerminalHandlerWithLevel(&buf, &level, false))

	l.Debug("hidden")
	assert.Equal(t, 0, buf.Len())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(NewTerminalHandler(&buf, false)).With("pkg", "staking")

	l.Info("op")
	assert.Contains(t, buf.String(), "pkg=staking")
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, FromLegacyLevel(LegacyLevelInfo))
	assert.Equal(t, slog.LevelDebug, FromLegacyLevel(LegacyLevelDebug))
	assert.Equal(t, LevelCrit, FromLegacyLevel(LegacyLevelCrit))
	assert.Equal(t, LevelTrace, FromLegacyLevel(100))
}
