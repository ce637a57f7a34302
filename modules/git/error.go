// Copyright 2015 The Gogs Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"fmt"

	"code.gitea.io/githistory/modules/util"
)

// ErrNotExist commit not exist error
type ErrNotExist struct {
	ID string
}

// IsErrNotExist if some error is ErrNotExist
func IsErrNotExist(err error) bool {
	_, ok := err.(ErrNotExist)
	return ok
}

func (err ErrNotExist) Error() string {
	return fmt.Sprintf("object does not exist [id: %s]", err.ID)
}

func (err ErrNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrReferenceNotExist represents a reference name that does not resolve to a commit
type ErrReferenceNotExist struct {
	Name string
}

// IsErrReferenceNotExist checks if an error is a ErrReferenceNotExist.
func IsErrReferenceNotExist(err error) bool {
	_, ok := err.(ErrReferenceNotExist)
	return ok
}

func (err ErrReferenceNotExist) Error() string {
	return fmt.Sprintf("reference does not exist [name: %s]", err.Name)
}

func (err ErrReferenceNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrRepoNotOpen is returned when the repository storage cannot be opened
type ErrRepoNotOpen struct {
	Path string
	Err  error
}

// IsErrRepoNotOpen checks if an error is a ErrRepoNotOpen.
func IsErrRepoNotOpen(err error) bool {
	_, ok := err.(ErrRepoNotOpen)
	return ok
}

func (err ErrRepoNotOpen) Error() string {
	return fmt.Sprintf("unable to open repository [path: %s]: %v", err.Path, err.Err)
}

func (err ErrRepoNotOpen) Unwrap() error {
	return util.ErrUnavailable
}
