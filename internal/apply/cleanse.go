package apply

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/textenc"
	"github.com/conn-castle/stepup/internal/version"
	"github.com/conn-castle/stepup/internal/warnings"
)

// readDeleteList returns the non-empty, trimmed entries of the delete-list in the
// work area. found is false when the package ships no delete-list.
func (a *Applier) readDeleteList() (entries []string, found bool, err error) {
	if a.deleteListName == "" {
		return nil, false, nil
	}
	path := filepath.Join(a.work, a.deleteListName)
	if _, err := a.sys.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf(messages.ApplyStatDeleteListFmt, path, err)
	}
	file, err := a.sys.Open(path)
	if err != nil {
		return nil, false, fmt.Errorf(messages.ApplyReadDeleteListFmt, path, err)
	}
	defer func() { _ = file.Close() }()

	entries, err = parseDeleteList(textenc.NewReader(file, a.enc))
	if err != nil {
		return nil, false, fmt.Errorf(messages.ApplyReadDeleteListFmt, path, err)
	}
	return entries, true, nil
}

func parseDeleteList(r io.Reader) ([]string, error) {
	var entries []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entries = append(entries, textenc.NormalizePath(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// cleanse removes every delete-list path from the install root. Individual
// failures are recorded as warnings; a missing path is not an error.
func (a *Applier) cleanse(target version.Version, res *Result) error {
	entries, found, err := a.readDeleteList()
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	_, _ = fmt.Fprintln(a.out, messages.ApplyRemovingObsolete)
	for _, entry := range entries {
		path, err := resolveUnder(a.root, entry)
		if err != nil {
			a.warn(warnings.Warning{
				Code:    warnings.CodeDeletePathRejected,
				Version: target.String(),
				Subject: entry,
				Message: messages.WarnDeletePathRejected,
				Err:     err,
			})
			continue
		}
		if contains(path, a.work) {
			a.warn(warnings.Warning{
				Code:    warnings.CodeDeletePathRejected,
				Version: target.String(),
				Subject: entry,
				Message: messages.WarnDeletePathWorkArea,
			})
			continue
		}
		info, err := a.sys.Lstat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			a.deleteFailed(target, entry, err, res)
			continue
		}
		if info.IsDir() {
			err = a.sys.RemoveAll(path)
		} else {
			err = a.sys.Remove(path)
		}
		if err != nil {
			a.deleteFailed(target, entry, err, res)
			continue
		}
		res.Deleted++
	}
	_, _ = fmt.Fprintln(a.out, messages.ApplyRemovedObsolete)
	return nil
}

func (a *Applier) deleteFailed(target version.Version, entry string, err error, res *Result) {
	res.DeleteFailed++
	a.warn(warnings.Warning{
		Code:    warnings.CodeObsoleteDelete,
		Version: target.String(),
		Subject: entry,
		Message: messages.WarnObsoleteDeleteFailed,
		Err:     err,
	})
}
