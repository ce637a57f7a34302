// Copyright 2025 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package json

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hexText [2]byte

func (h hexText) MarshalText() ([]byte, error) {
	return []byte("ab"), nil
}

func TestMarshalTextMarshaler(t *testing.T) {
	type payload struct {
		ID      *hexText `json:"id"`
		Parents []string `json:"parents"`
	}
	b, err := Marshal(payload{ID: &hexText{}, Parents: []string{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"ab","parents":[]}`, string(b))

	b, err = Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":null,"parents":null}`, string(b))
}

func TestDecoder(t *testing.T) {
	var ids []string
	require.NoError(t, NewDecoder(bytes.NewBufferString(`["a","b"]`)).Decode(&ids))
	assert.Equal(t, []string{"a", "b"}, ids)
}

func TestMarshalIndent(t *testing.T) {
	b, err := MarshalIndent(map[string]int{"a": 1}, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))
}
