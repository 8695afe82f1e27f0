package apply

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/aymanbagabas/go-udiff"
	"golang.org/x/text/encoding"

	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/textenc"
)

const (
	defaultPreviewDiffMaxLines = 200
	textSniffBytes             = 8000
)

// ChangeKind classifies one path in a package preview.
type ChangeKind string

// Preview change kinds.
const (
	ChangeAdd       ChangeKind = "add"
	ChangeOverwrite ChangeKind = "overwrite"
	ChangeUnchanged ChangeKind = "unchanged"
	ChangeDelete    ChangeKind = "delete"
)

// Change is one path a package would touch.
type Change struct {
	Path        string     `json:"path"`
	Kind        ChangeKind `json:"kind"`
	UnifiedDiff string     `json:"unified_diff,omitempty"`
	Truncated   bool       `json:"truncated,omitempty"`
}

// Preview is the dry-run result of applying a package.
type Preview struct {
	Package string   `json:"package"`
	Changes []Change `json:"changes"`
	// Rejected lists delete-list entries that would be skipped.
	Rejected []string `json:"rejected,omitempty"`
}

// PreviewOptions configures BuildPreview.
type PreviewOptions struct {
	InstallRoot    string
	DeleteListName string
	Encoding       encoding.Encoding
	// Diff renders unified diffs for overwritten text files.
	Diff         bool
	DiffMaxLines int
}

// BuildPreview reports what applying packagePath would delete, add, and
// overwrite under the install root without writing anything.
func BuildPreview(packagePath string, opts PreviewOptions) (Preview, error) {
	root, err := filepath.Abs(opts.InstallRoot)
	if err != nil {
		return Preview{}, fmt.Errorf(messages.ApplyResolvePathFmt, opts.InstallRoot, err)
	}
	reader, err := openArchive(packagePath)
	if err != nil {
		return Preview{}, err
	}
	defer func() { _ = reader.Close() }()

	preview := Preview{Package: packagePath}
	var files []*zip.File
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name, err := entryName(f, opts.Encoding)
		if err != nil {
			return Preview{}, &ArchiveError{Path: packagePath, Err: err}
		}
		cleanName := filepath.ToSlash(filepath.Clean(filepath.FromSlash(name)))
		if opts.DeleteListName != "" && cleanName == opts.DeleteListName {
			entries, err := readZipDeleteList(f, opts.Encoding)
			if err != nil {
				return Preview{}, &ArchiveError{Path: packagePath, Err: err}
			}
			preview.Changes, preview.Rejected = previewDeletions(root, entries)
			continue
		}
		files = append(files, f)
	}

	for _, f := range files {
		name, _ := entryName(f, opts.Encoding)
		dest, err := resolveUnder(root, name)
		if err != nil {
			return Preview{}, &ArchiveError{Path: packagePath, Err: fmt.Errorf(messages.ApplyArchiveEntryRejectedFmt, f.Name, err)}
		}
		change, err := previewFile(f, root, dest, opts)
		if err != nil {
			return Preview{}, err
		}
		preview.Changes = append(preview.Changes, change)
	}
	sort.SliceStable(preview.Changes, func(i, j int) bool {
		return preview.Changes[i].Path < preview.Changes[j].Path
	})
	return preview, nil
}

func readZipDeleteList(f *zip.File, enc encoding.Encoding) ([]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return parseDeleteList(textenc.NewReader(rc, enc))
}

func previewDeletions(root string, entries []string) ([]Change, []string) {
	var changes []Change
	var rejected []string
	for _, entry := range entries {
		path, err := resolveUnder(root, entry)
		if err != nil {
			rejected = append(rejected, entry)
			continue
		}
		if _, err := os.Lstat(path); err != nil {
			continue
		}
		rel, _ := filepath.Rel(root, path)
		changes = append(changes, Change{Path: filepath.ToSlash(rel), Kind: ChangeDelete})
	}
	return changes, rejected
}

func previewFile(f *zip.File, root string, dest string, opts PreviewOptions) (Change, error) {
	rel, _ := filepath.Rel(root, dest)
	change := Change{Path: filepath.ToSlash(rel), Kind: ChangeAdd}

	current, err := os.ReadFile(dest)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return change, nil
		}
		return Change{}, fmt.Errorf(messages.ApplyPreviewReadFmt, dest, err)
	}
	incoming, err := readZipFile(f)
	if err != nil {
		return Change{}, &ArchiveError{Path: f.Name, Err: err}
	}
	if bytes.Equal(current, incoming) {
		change.Kind = ChangeUnchanged
		return change, nil
	}
	change.Kind = ChangeOverwrite
	if opts.Diff && isText(current) && isText(incoming) {
		change.UnifiedDiff, change.Truncated = renderTruncatedUnifiedDiff(
			change.Path+" (installed)",
			change.Path+" (package)",
			string(current),
			string(incoming),
			opts.DiffMaxLines,
		)
	}
	return change, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

func isText(data []byte) bool {
	sniff := data
	if len(sniff) > textSniffBytes {
		sniff = sniff[:textSniffBytes]
	}
	return !bytes.ContainsRune(sniff, 0) && utf8.Valid(sniff)
}

func renderTruncatedUnifiedDiff(fromName string, toName string, fromContent string, toContent string, maxLines int) (string, bool) {
	limit := maxLines
	if limit <= 0 {
		limit = defaultPreviewDiffMaxLines
	}
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := strings.Split(strings.TrimRight(diff, "\n"), "\n")
	if len(lines) <= limit {
		return strings.Join(lines, "\n") + "\n", false
	}
	truncated := append(lines[:limit:limit], fmt.Sprintf(messages.ApplyPreviewTruncatedFmt, limit))
	return strings.Join(truncated, "\n") + "\n", true
}
