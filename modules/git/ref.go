// Copyright 2018 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package git

import (
	"errors"
	"fmt"
	"strings"

	"code.gitea.io/githistory/modules/log"
	"code.gitea.io/githistory/modules/util"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const (
	// HEADRef is the name of the current checkout reference
	HEADRef = "HEAD"
	// RefsPrefix is the base directory of all references
	RefsPrefix = "refs/"
	// BranchPrefix is the base directory of the branch information of git.
	BranchPrefix = "refs/heads/"
	// TagPrefix is the base directory of the tag information of git.
	TagPrefix = "refs/tags/"
	// RemotePrefix is the base directory of the remotes information of git.
	RemotePrefix = "refs/remotes/"

	maxPeelDepth = 10
)

// RefName represents a full git reference name
type RefName string

func (ref RefName) String() string {
	return string(ref)
}

// ShortName returns the short name of the reference name
func (ref RefName) ShortName() string {
	for _, prefix := range []string{BranchPrefix, TagPrefix, RemotePrefix} {
		if s, ok := strings.CutPrefix(string(ref), prefix); ok {
			return s
		}
	}
	return string(ref)
}

// Reference represents a Git ref peeled to the commit it finally points to
type Reference struct {
	Name   RefName
	Object ObjectID
}

// isPseudoRefName reports whether name looks like HEAD, FETCH_HEAD or ORIG_HEAD
func isPseudoRefName(name string) bool {
	for _, r := range name {
		if !(r >= 'A' && r <= 'Z' || r == '_') {
			return false
		}
	}
	return strings.HasSuffix(name, HEADRef)
}

// candidateRefNames returns the full names a short name may stand for, in the order git rev-parse tries them
func candidateRefNames(name string) []string {
	candidates := make([]string, 0, 6)
	if isPseudoRefName(name) || strings.HasPrefix(name, RefsPrefix) {
		candidates = append(candidates, name)
	}
	return append(candidates,
		RefsPrefix+name,
		TagPrefix+name,
		BranchPrefix+name,
		RemotePrefix+name,
		RemotePrefix+name+"/"+HEADRef,
	)
}

// isSafeRefName rejects names that cannot be references and must never reach the ref storage as a path
func isSafeRefName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") ||
		strings.HasSuffix(name, ".lock") || strings.Contains(name, "..") || strings.Contains(name, "//") {
		return false
	}
	for _, r := range name {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(` ~^:?*[\`, r) {
			return false
		}
	}
	return true
}

// peelToCommit follows annotated tags until a commit is reached
func (repo *Repository) peelToCommit(h plumbing.Hash) (ObjectID, error) {
	for i := 0; i < maxPeelDepth; i++ {
		obj, err := repo.gogitRepo.Object(plumbing.AnyObject, h)
		if err != nil {
			if errors.Is(err, plumbing.ErrObjectNotFound) {
				return EmptyObjectID, ErrNotExist{ID: h.String()}
			}
			return EmptyObjectID, err
		}
		switch o := obj.(type) {
		case *object.Commit:
			return fromHash(o.Hash), nil
		case *object.Tag:
			h = o.Target
		default:
			return EmptyObjectID, util.NewNotExistErrorf("object %s is a %s, not a commit", h, obj.Type())
		}
	}
	return EmptyObjectID, util.NewNotExistErrorf("tag chain starting at %s is too deep", h)
}

// ResolveReference resolves a short or full reference name to the commit it peels to
func (repo *Repository) ResolveReference(name string) (ObjectID, error) {
	if !isSafeRefName(name) {
		return EmptyObjectID, ErrReferenceNotExist{Name: name}
	}
	for _, candidate := range candidateRefNames(name) {
		ref, err := repo.gogitRepo.Reference(plumbing.ReferenceName(candidate), true)
		if err != nil {
			if errors.Is(err, plumbing.ErrReferenceNotFound) {
				continue
			}
			return EmptyObjectID, fmt.Errorf("lookup reference %s: %w", candidate, err)
		}
		id, err := repo.peelToCommit(ref.Hash())
		if err != nil {
			if errors.Is(err, util.ErrNotExist) {
				return EmptyObjectID, ErrReferenceNotExist{Name: name}
			}
			return EmptyObjectID, err
		}
		return id, nil
	}
	return EmptyObjectID, ErrReferenceNotExist{Name: name}
}

// GetHEADCommitID returns the commit HEAD points to
func (repo *Repository) GetHEADCommitID() (ObjectID, error) {
	ref, err := repo.gogitRepo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return EmptyObjectID, ErrReferenceNotExist{Name: HEADRef}
		}
		return EmptyObjectID, err
	}
	return repo.peelToCommit(ref.Hash())
}

// GetReferences returns every non symbolic reference under refs/ peeled to its commit.
// References which do not peel to a commit are skipped.
func (repo *Repository) GetReferences() ([]*Reference, error) {
	iter, err := repo.gogitRepo.References()
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var refs []*Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		if ref.Type() != plumbing.HashReference || !strings.HasPrefix(ref.Name().String(), RefsPrefix) {
			return nil
		}
		id, err := repo.peelToCommit(ref.Hash())
		if err != nil {
			if errors.Is(err, util.ErrNotExist) {
				log.Debug("Skipping reference %s: %v", ref.Name(), err)
				return nil
			}
			return err
		}
		refs = append(refs, &Reference{Name: RefName(ref.Name().String()), Object: id})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return refs, nil
}
