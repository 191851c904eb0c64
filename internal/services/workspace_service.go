package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	git "github.com/go-git/go-git/v5"
	"github.com/yargevad/filepathx"

	"codeweave/internal/utils"
)

// FileModification is one pending worktree change, serialized into the
// outgoing user message so the model sees edits made since its last reply.
type FileModification struct {
	FilePath string `json:"filePath"`
	Status   string `json:"status"` // added | modified | deleted
	Content  string `json:"content,omitempty"`
}

// WorkspaceService watches the project checkout and exposes a read-only
// snapshot of file modifications. The chat shell consumes the snapshot once
// per outgoing user turn and then resets it; resetting records content
// checksums so unchanged files are not reported twice.
type WorkspaceService struct {
	ctx context.Context

	mu       sync.Mutex
	root     string
	consumed map[string]string // path -> content checksum at last reset
}

func NewWorkspaceService() *WorkspaceService {
	return &WorkspaceService{consumed: make(map[string]string)}
}

func (w *WorkspaceService) Startup(ctx context.Context) {
	w.ctx = ctx
}

// SetRoot points the workspace at a project checkout. The directory must
// exist and contain a git repository.
func (w *WorkspaceService) SetRoot(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("workspace path is required")
	}
	if !utils.DirectoryExists(path) {
		return fmt.Errorf("workspace path does not exist: %s", path)
	}
	if !utils.HasGitRepo(path) {
		return fmt.Errorf("workspace path is not a git repository: %s", path)
	}
	if _, err := git.PlainOpen(path); err != nil {
		return fmt.Errorf("open workspace repository: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.root = path
	w.consumed = make(map[string]string)
	return nil
}

func (w *WorkspaceService) Root() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.root
}

// FileModifications snapshots worktree changes not yet consumed by a chat
// turn. Order is stable by path.
func (w *WorkspaceService) FileModifications() ([]FileModification, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.root == "" {
		return nil, nil
	}

	repo, err := git.PlainOpen(w.root)
	if err != nil {
		return nil, fmt.Errorf("open workspace repository: %w", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}

	var mods []FileModification
	for path, fileStatus := range status {
		if fileStatus.Worktree == git.Unmodified && fileStatus.Staging == git.Unmodified {
			continue
		}
		mod := FileModification{FilePath: path, Status: statusLabel(fileStatus)}
		if mod.Status != "deleted" {
			data, err := os.ReadFile(filepath.Join(w.root, path))
			if err != nil {
				return nil, fmt.Errorf("read modified file %s: %w", path, err)
			}
			sum := checksum(data)
			if w.consumed[path] == sum {
				continue
			}
			mod.Content = string(data)
		} else if _, seen := w.consumed[path]; seen && w.consumed[path] == "" {
			continue
		}
		mods = append(mods, mod)
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i].FilePath < mods[j].FilePath })
	return mods, nil
}

// ModificationsMarkup renders pending modifications as the markup block
// prepended to the outgoing user message. Empty when nothing changed.
func (w *WorkspaceService) ModificationsMarkup() (string, error) {
	mods, err := w.FileModifications()
	if err != nil {
		return "", err
	}
	if len(mods) == 0 {
		return "", nil
	}

	var b strings.Builder
	b.WriteString("<codeweave_file_modifications>\n")
	for _, mod := range mods {
		fmt.Fprintf(&b, "<file path=%q status=%q>\n", mod.FilePath, mod.Status)
		if mod.Content != "" {
			b.WriteString(mod.Content)
			if !strings.HasSuffix(mod.Content, "\n") {
				b.WriteByte('\n')
			}
		}
		b.WriteString("</file>\n")
	}
	b.WriteString("</codeweave_file_modifications>")
	return b.String(), nil
}

// ResetModifications marks the current worktree state as consumed.
func (w *WorkspaceService) ResetModifications() error {
	mods, err := w.FileModifications()
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, mod := range mods {
		if mod.Status == "deleted" {
			w.consumed[mod.FilePath] = ""
			continue
		}
		w.consumed[mod.FilePath] = checksum([]byte(mod.Content))
	}
	return nil
}

// CollectFiles expands `**`-style glob patterns under the workspace root,
// for attaching project files to a conversation.
func (w *WorkspaceService) CollectFiles(patterns []string) ([]string, error) {
	w.mu.Lock()
	root := w.root
	w.mu.Unlock()
	if root == "" {
		return nil, fmt.Errorf("workspace root not set")
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := filepathx.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			rel, err := filepath.Rel(root, match)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if !seen[rel] {
				seen[rel] = true
				files = append(files, rel)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

func statusLabel(s *git.FileStatus) string {
	switch {
	case s.Worktree == git.Untracked || s.Staging == git.Added:
		return "added"
	case s.Worktree == git.Deleted || s.Staging == git.Deleted:
		return "deleted"
	default:
		return "modified"
	}
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
