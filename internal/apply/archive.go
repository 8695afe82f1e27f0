package apply

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"

	"golang.org/x/text/encoding"

	"github.com/conn-castle/stepup/internal/messages"
	"github.com/conn-castle/stepup/internal/textenc"
)

// openArchive opens a zip package, mapping format errors to ArchiveError.
func openArchive(packagePath string) (*zip.ReadCloser, error) {
	reader, err := zip.OpenReader(packagePath)
	if err != nil {
		if reader != nil {
			_ = reader.Close()
		}
		return nil, &ArchiveError{Path: packagePath, Err: err}
	}
	return reader, nil
}

// entryName returns the slash-separated, NFC-normalized name of f. Names stored
// without the UTF-8 flag are decoded with enc.
func entryName(f *zip.File, enc encoding.Encoding) (string, error) {
	name := f.Name
	if f.NonUTF8 && !textenc.IsUTF8(enc) {
		decoded, err := textenc.DecodeString(name, enc)
		if err != nil {
			return "", err
		}
		name = decoded
	}
	return textenc.NormalizePath(name), nil
}

// isRootEntry reports whether f is a directory entry naming the archive root,
// such as "./". Such entries carry nothing to extract.
func isRootEntry(f *zip.File, name string) bool {
	if !f.FileInfo().IsDir() {
		return false
	}
	return path.Clean(name) == "."
}

// isArchiveReadError reports whether err comes from decoding a corrupt entry.
func isArchiveReadError(err error) bool {
	return errors.Is(err, zip.ErrChecksum) ||
		errors.Is(err, zip.ErrFormat) ||
		errors.Is(err, zip.ErrAlgorithm) ||
		errors.Is(err, io.ErrUnexpectedEOF)
}

// extract decompresses every entry of the package into the work area.
func (a *Applier) extract(packagePath string, res *Result) error {
	_, _ = fmt.Fprintln(a.out, messages.ApplyExtracting)
	reader, err := openArchive(packagePath)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	for _, f := range reader.File {
		name, err := entryName(f, a.enc)
		if err != nil {
			return &ArchiveError{Path: packagePath, Err: err}
		}
		if isRootEntry(f, name) {
			continue
		}
		dest, err := resolveUnder(a.work, name)
		if err != nil {
			return &ArchiveError{Path: packagePath, Err: fmt.Errorf(messages.ApplyArchiveEntryRejectedFmt, f.Name, err)}
		}
		if f.FileInfo().IsDir() {
			if err := a.sys.MkdirAll(dest, 0o755); err != nil {
				return fmt.Errorf(messages.ApplyCreateDirFmt, dest, err)
			}
			continue
		}
		if err := a.extractFile(packagePath, f, dest); err != nil {
			return err
		}
		res.Extracted++
	}
	return nil
}

func (a *Applier) extractFile(packagePath string, f *zip.File, dest string) error {
	if err := a.sys.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf(messages.ApplyCreateDirFmt, filepath.Dir(dest), err)
	}
	src, err := f.Open()
	if err != nil {
		return &ArchiveError{Path: packagePath, Err: fmt.Errorf("%s: %w", f.Name, err)}
	}
	defer func() { _ = src.Close() }()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	out, err := a.sys.CreateFile(dest, perm|0o200)
	if err != nil {
		return fmt.Errorf(messages.ApplyExtractWriteFmt, dest, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		if isArchiveReadError(err) {
			return &ArchiveError{Path: packagePath, Err: fmt.Errorf("%s: %w", f.Name, err)}
		}
		return fmt.Errorf(messages.ApplyExtractWriteFmt, dest, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf(messages.ApplyExtractWriteFmt, dest, err)
	}
	if modified := f.Modified; !modified.IsZero() {
		// Timestamps are best effort; the overlay copies them onward.
		_ = a.sys.Chtimes(dest, modified, modified)
	}
	return nil
}
