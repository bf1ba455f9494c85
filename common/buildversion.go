package common

import (
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// BuildCommit returns the commit stamped in at link time, or the short HEAD
// hash of the git checkout the binary runs from.
func BuildCommit(stamped string) string {
	if stamped != "" && stamped != "none" {
		return stamped
	}
	if cwd, err := os.Getwd(); err == nil {
		if hash := headHash(cwd); hash != "" {
			return shortHash(hash)
		}
	}
	if exePath, err := os.Executable(); err == nil {
		if hash := headHash(filepath.Dir(exePath)); hash != "" {
			return shortHash(hash)
		}
	}
	return "unknown"
}

func shortHash(hash string) string {
	if len(hash) >= 8 {
		return hash[:8]
	}
	return hash
}

func headHash(path string) string {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()
}
