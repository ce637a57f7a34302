// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"testing"

	"code.gitea.io/githistory/modules/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDFromString(t *testing.T) {
	id, err := NewIDFromString("ABCDEF0123456789abcdef0123456789ABCDEF01")
	require.NoError(t, err)
	assert.Equal(t, "abcdef0123456789abcdef0123456789abcdef01", id.String())
	assert.False(t, id.IsZero())

	for _, s := range []string{
		"",
		"abcdef",
		"abcdef0123456789abcdef0123456789abcdef0",
		"abcdef0123456789abcdef0123456789abcdef012",
		"zbcdef0123456789abcdef0123456789abcdef01",
		"refs/heads/main",
	} {
		_, err := NewIDFromString(s)
		assert.ErrorIs(t, err, util.ErrInvalidArgument, s)
	}
}

func TestObjectIDCompare(t *testing.T) {
	a := MustIDFromString("0000000000000000000000000000000000000001")
	b := MustIDFromString("00000000000000000000000000000000000000ff")
	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(a))
	assert.True(t, EmptyObjectID.IsZero())

	text, err := b.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "00000000000000000000000000000000000000ff", string(text))
}
