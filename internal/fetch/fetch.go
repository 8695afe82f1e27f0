// Package fetch downloads one update package per version.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/remote"
	"github.com/conn-castle/stepup/internal/version"
	"github.com/conn-castle/stepup/internal/warnings"
)

// VersionPlaceholder is replaced by the version text in the package URL template.
const VersionPlaceholder = "{version}"

// DefaultTimeout bounds a whole package download.
const DefaultTimeout = 300 * time.Second

// SpaceFactor is the multiple of the package size that must be free before
// downloading, leaving headroom for extraction.
const SpaceFactor = 2

const chunkSize = 32 * 1024

// DiskSpaceError reports too little free space for a package and its extraction.
type DiskSpaceError struct {
	Required uint64
	Free     uint64
	Dir      string
}

func (e *DiskSpaceError) Error() string {
	return fmt.Sprintf(messages.FetchDiskSpaceFmt, e.Dir, humanize.IBytes(e.Required), humanize.IBytes(e.Free))
}

// Progress receives downloaded bytes.
type Progress interface {
	io.Writer
	Finish()
}

// ProgressFunc creates the Progress for one download. total is the reported
// content length, or <= 0 when unknown.
type ProgressFunc func(label string, total int64) Progress

// Options configures a Fetcher.
type Options struct {
	// URLTemplate contains VersionPlaceholder.
	URLTemplate string
	// Dir receives Update_<version>.zip files.
	Dir        string
	HTTPClient *http.Client
	// Timeout applies when HTTPClient is nil. Zero means DefaultTimeout.
	Timeout  time.Duration
	System   System
	Warnings *warnings.Sink
	Out      io.Writer
	Progress ProgressFunc
}

// Fetcher downloads packages. It performs no retries.
type Fetcher struct {
	template string
	dir      string
	http     *http.Client
	sys      System
	sink     *warnings.Sink
	out      io.Writer
	progress ProgressFunc
}

// New validates opts and returns a Fetcher.
func New(opts Options) (*Fetcher, error) {
	if !strings.Contains(opts.URLTemplate, VersionPlaceholder) {
		return nil, fmt.Errorf(messages.FetchTemplatePlaceholderFmt, opts.URLTemplate, VersionPlaceholder)
	}
	if strings.TrimSpace(opts.Dir) == "" {
		return nil, errors.New(messages.FetchDirRequired)
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	sys := opts.System
	if sys == nil {
		sys = RealSystem{}
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Fetcher{
		template: opts.URLTemplate,
		dir:      opts.Dir,
		http:     client,
		sys:      sys,
		sink:     opts.Warnings,
		out:      out,
		progress: opts.Progress,
	}, nil
}

// URL returns the package URL for v.
func (f *Fetcher) URL(v version.Version) string {
	return strings.ReplaceAll(f.template, VersionPlaceholder, v.String())
}

// PackagePath returns where the package for v is stored.
func (f *Fetcher) PackagePath(v version.Version) string {
	return filepath.Join(f.dir, "Update_"+v.String()+".zip")
}

// Fetch downloads the package for v and returns its path.
//
// A stale file at the destination is removed first; failing to remove it is a
// warning. Network failures are returned as *remote.NetworkError and an
// insufficient disk as *DiskSpaceError. No partial file is left behind.
func (f *Fetcher) Fetch(ctx context.Context, v version.Version) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	_, _ = fmt.Fprintf(f.out, messages.FetchDownloadingFmt, v)
	dest := f.PackagePath(v)
	f.removeStale(v, dest)

	url := f.URL(v)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf(messages.FetchCreateRequestFmt, url, err)
	}
	req.Header.Set("User-Agent", remote.UserAgent)
	resp, err := f.http.Do(req)
	if err != nil {
		return "", remote.Classify(url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", &remote.NetworkError{Kind: remote.KindStatus, URL: url, Status: resp.Status}
	}

	if err := f.sys.MkdirAll(f.dir, 0o755); err != nil {
		return "", fmt.Errorf(messages.FetchCreateDirFmt, f.dir, err)
	}
	if err := f.checkSpace(resp.ContentLength); err != nil {
		return "", err
	}
	if err := f.stream(url, dest, v, resp); err != nil {
		return "", err
	}
	_, _ = fmt.Fprintf(f.out, messages.FetchDownloadedFmt, v)
	return dest, nil
}

// Discard removes a package after it was applied. Failure is a warning.
func (f *Fetcher) Discard(v version.Version, path string) {
	if err := f.sys.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		f.sink.Add(warnings.Warning{
			Code:    warnings.CodePackageCleanup,
			Version: v.String(),
			Subject: path,
			Message: messages.WarnPackageCleanupFailed,
			Err:     err,
		})
	}
}

func (f *Fetcher) removeStale(v version.Version, dest string) {
	if _, err := f.sys.Stat(dest); err != nil {
		return
	}
	_, _ = fmt.Fprintln(f.out, messages.FetchRemovingStale)
	if err := f.sys.Remove(dest); err != nil {
		f.sink.Add(warnings.Warning{
			Code:    warnings.CodeStalePackageCleanup,
			Version: v.String(),
			Subject: dest,
			Message: messages.WarnStalePackageCleanupFailed,
			Err:     err,
		})
	}
}

// checkSpace fails when free space on the package volume is not more than
// SpaceFactor times size. An unknown size or an unreadable free-space figure
// passes.
func (f *Fetcher) checkSpace(size int64) error {
	if size <= 0 {
		return nil
	}
	free, err := f.sys.FreeSpace(f.dir)
	if err != nil {
		return nil //nolint:nilerr // Free space that cannot be measured does not block a download.
	}
	required := uint64(size) * SpaceFactor
	if free <= required {
		return &DiskSpaceError{Required: required, Free: free, Dir: f.dir}
	}
	return nil
}

// stream copies the body to a temporary sibling of dest and renames it into
// place once complete.
func (f *Fetcher) stream(url string, dest string, v version.Version, resp *http.Response) error {
	tmp := dest + ".part"
	file, err := f.sys.CreateFile(tmp)
	if err != nil {
		return fmt.Errorf(messages.FetchCreateFileFmt, tmp, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = f.sys.Remove(tmp)
		}
	}()

	var w io.Writer = markedWriter{file}
	var bar Progress
	if f.progress != nil {
		bar = f.progress(v.String(), resp.ContentLength)
		w = io.MultiWriter(w, bar)
	}
	buf := make([]byte, chunkSize)
	written, copyErr := io.CopyBuffer(w, onlyReader{resp.Body}, buf)
	if bar != nil {
		bar.Finish()
	}
	closeErr := file.Close()
	if copyErr != nil {
		if isWriteError(copyErr) {
			return fmt.Errorf(messages.FetchWriteFileFmt, tmp, copyErr)
		}
		return remote.Classify(url, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf(messages.FetchWriteFileFmt, tmp, closeErr)
	}
	if resp.ContentLength > 0 && written != resp.ContentLength {
		return &remote.NetworkError{Kind: remote.KindConnection, URL: url, Err: fmt.Errorf(messages.FetchShortBodyFmt, written, resp.ContentLength)}
	}
	if err := f.sys.Rename(tmp, dest); err != nil {
		return fmt.Errorf(messages.FetchRenameFmt, tmp, dest, err)
	}
	committed = true
	return nil
}

// onlyReader hides WriterTo so CopyBuffer uses the bounded buffer.
type onlyReader struct {
	io.Reader
}

// markedWriter tags write failures so they are not mistaken for network errors.
type markedWriter struct {
	w io.Writer
}

func (m markedWriter) Write(p []byte) (int, error) {
	n, err := m.w.Write(p)
	if err != nil {
		return n, writeError{err: err}
	}
	return n, nil
}

// writeError marks errors from the destination side of a copy.
type writeError struct {
	err error
}

func (e writeError) Error() string { return e.err.Error() }

func (e writeError) Unwrap() error { return e.err }

func isWriteError(err error) bool {
	var we writeError
	return errors.As(err, &we)
}
