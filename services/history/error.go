// Copyright 2024 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package history

import (
	"fmt"

	"code.gitea.io/githistory/modules/util"
)

// ErrRootNotExist represents a root of a query (reference, HEAD or commit id) which cannot be resolved
type ErrRootNotExist struct {
	Root string
	Err  error
}

// IsErrRootNotExist checks if an error is a ErrRootNotExist.
func IsErrRootNotExist(err error) bool {
	_, ok := err.(ErrRootNotExist)
	return ok
}

func (err ErrRootNotExist) Error() string {
	return fmt.Sprintf("history root does not exist [root: %s]: %v", err.Root, err.Err)
}

func (err ErrRootNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrSessionNotExist represents an unknown, drained or evicted session
type ErrSessionNotExist struct {
	ID string
}

// IsErrSessionNotExist checks if an error is a ErrSessionNotExist.
func IsErrSessionNotExist(err error) bool {
	_, ok := err.(ErrSessionNotExist)
	return ok
}

func (err ErrSessionNotExist) Error() string {
	return fmt.Sprintf("session does not exist [id: %s]", err.ID)
}

func (err ErrSessionNotExist) Unwrap() error {
	return util.ErrNotExist
}
