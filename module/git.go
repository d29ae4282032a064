// Package module identifies the version of the module a design source is checked out from.
package module

import (
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/pkg/errors"

	"github.com/daedaleanai/runsyn/log"
)

// Revision is the checked-out state of a git module.
type Revision struct {
	// Hash is the commit hash of HEAD.
	Hash string
	// Dirty reports uncommited changes in the worktree.
	Dirty bool
}

func (r Revision) String() string {
	if r.Dirty {
		return r.Hash + "-dirty"
	}
	return r.Hash
}

// SourceRevision returns the revision of the git module containing `filePath`.
func SourceRevision(filePath string) (Revision, error) {
	dir := filepath.Dir(filePath)
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Revision{}, errors.Wrapf(err, "failed to open git module containing '%s'", filePath)
	}

	head, err := repo.Head()
	if err != nil {
		return Revision{}, errors.Wrap(err, "failed to get repo HEAD")
	}
	log.Debug("Repo HEAD is '%s'.\n", head.Hash().String())

	worktree, err := repo.Worktree()
	if err != nil {
		return Revision{}, errors.Wrap(err, "failed to get repo worktree")
	}
	status, err := worktree.Status()
	if err != nil {
		return Revision{}, errors.Wrap(err, "failed to get repo status")
	}
	return Revision{Hash: head.Hash().String(), Dirty: !status.IsClean()}, nil
}
