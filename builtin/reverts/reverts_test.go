// Copyright (c) 2025 The StakeVault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/stakevault/stakevault/builtin/reverts"
)

func TestIsRevertErr(t *testing.T) {
	assert.True(t, reverts.IsRevertErr(reverts.New("nope")))
	assert.True(t, reverts.IsRevertErr(reverts.Errorf("nope: %v", 1)))
	assert.True(t, reverts.IsRevertErr(errors.Wrap(reverts.New("nope"), "outer")))

	assert.False(t, reverts.IsRevertErr(nil))
	assert.False(t, reverts.IsRevertErr(errors.New("plain")))
	assert.False(t, reverts.IsRevertErr("not an error"))
}

func TestErrorMessage(t *testing.T) {
	assert.EqualError(t, reverts.New("insufficient principal"), "insufficient principal")
	assert.EqualError(t, reverts.Errorf("rejected: %v", "reason"), "rejected: reason")
}
