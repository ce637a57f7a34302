// Copyright 2023 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"bytes"
	"encoding/hex"
	"strings"

	"code.gitea.io/githistory/modules/util"

	"github.com/go-git/go-git/v5/plumbing"
)

// ObjectID is the 20 bytes SHA-1 name of a git object
type ObjectID [20]byte

// EmptyObjectID is the zero id, it never names a real object
var EmptyObjectID = ObjectID{}

// String returns the 40 characters lowercase hex form
func (id ObjectID) String() string {
	return hex.EncodeToString(id[:])
}

// IsZero reports whether the id is the zero id
func (id ObjectID) IsZero() bool {
	return id == EmptyObjectID
}

// Compare orders ids by their bytes, it is the same order as the hex strings
func (id ObjectID) Compare(other ObjectID) int {
	return bytes.Compare(id[:], other[:])
}

// MarshalText renders the id for JSON
func (id ObjectID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id ObjectID) hash() plumbing.Hash {
	return plumbing.Hash(id)
}

func fromHash(h plumbing.Hash) ObjectID {
	return ObjectID(h)
}

// IsValidSHAPattern reports whether s is a full hex object name
func IsValidSHAPattern(s string) bool {
	if len(s) != 40 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}

// NewIDFromString parses a full 40 characters hex object name, abbreviations are rejected
func NewIDFromString(s string) (ObjectID, error) {
	var id ObjectID
	s = strings.TrimSpace(s)
	if !IsValidSHAPattern(s) {
		return id, util.NewInvalidArgumentErrorf("malformed object id %q", s)
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, util.NewInvalidArgumentErrorf("malformed object id %q: %v", s, err)
	}
	return id, nil
}

// MustIDFromString parses a full hex object name and panics on error, it is meant for tests and constants
func MustIDFromString(s string) ObjectID {
	id, err := NewIDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}
