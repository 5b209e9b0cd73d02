package worker

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Zixzorash/BURN-SUB/internal/config"
	"github.com/Zixzorash/BURN-SUB/internal/subtitles"
	"github.com/pkg/errors"
)

const (
	defaultLargeFileThreshold  = 256 << 20 // 256 MiB
	defaultBufferedCopyCeiling = 2 << 30   // 2 GiB

	copyBufferSize = 1 << 20

	stagedInputName    = "input"
	stagedSubtitleName = "subs"
	spoolDirName       = "src"
	outputDirName      = "out"
)

// Workspace is the per-job staging area on disk. Every path it creates is
// recorded so Cleanup can attempt a deletion for each one, success or
// failure. The link/copy/remove functions are injectable for tests.
type Workspace struct {
	root    string
	staging config.StagingConfig
	created []string

	linkFn   func(oldname, newname string) error
	copyFn   func(dst, src string) error
	removeFn func(path string) error
}

func NewWorkspace(root string, staging config.StagingConfig) (*Workspace, error) {
	for _, dir := range []string{spoolDirName, outputDirName} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return nil, errors.Wrap(err, "create job workspace")
		}
	}
	return &Workspace{
		root:     root,
		staging:  staging,
		linkFn:   os.Link,
		copyFn:   copyFile,
		removeFn: os.RemoveAll,
	}, nil
}

func (w *Workspace) Root() string {
	return w.root
}

// Spool writes a downloaded object into the workspace spool directory and
// returns its path and the byte count actually written. The written count
// is what staging decisions run on; a client-declared size is not trusted.
func (w *Workspace) Spool(name string, src io.Reader) (string, int64, error) {
	dst := filepath.Join(w.root, spoolDirName, filepath.Base(name))
	out, err := os.Create(dst)
	if err != nil {
		return "", 0, errors.Wrap(err, "create spool file")
	}
	w.track(dst)

	written, err := io.Copy(out, src)
	if err != nil {
		out.Close()
		return "", 0, errors.Wrap(err, "write spool file")
	}
	if err := out.Close(); err != nil {
		return "", 0, errors.Wrap(err, "close spool file")
	}
	return dst, written, nil
}

// StageInput places the spooled source at a fixed safe name inside the
// workspace, so the filter path handed to the engine never carries
// user-controlled characters. Files over the large-file threshold get a
// zero-copy mounted view (hardlink); if the link fails, the buffered copy
// is the fallback, refused outright when the file is over the ceiling.
// Small files take the buffered copy directly.
func (w *Workspace) StageInput(src string, size int64) (string, error) {
	dst := filepath.Join(w.root, stagedInputName+safeExt(src))

	if size > w.largeFileThreshold() {
		if err := w.linkFn(src, dst); err == nil {
			w.track(dst)
			return dst, nil
		}
		if size > w.bufferedCopyCeiling() {
			return "", errors.Wrapf(ErrInputTooLarge, "%d bytes", size)
		}
	}

	if err := w.copyFn(dst, src); err != nil {
		return "", errors.Wrap(err, "stage input")
	}
	w.track(dst)
	return dst, nil
}

// StageSubtitle copies the subtitle file in under a fixed safe name with
// the sniffed format's canonical extension. Subtitle files are small; they
// never take the mounted-view path.
func (w *Workspace) StageSubtitle(src string) (string, error) {
	dst := filepath.Join(w.root, stagedSubtitleName+subtitles.DetectFormat(src).Ext())
	if err := w.copyFn(dst, src); err != nil {
		return "", errors.Wrap(err, "stage subtitle")
	}
	w.track(dst)
	return dst, nil
}

// OutputPath reserves the output location in its own subdirectory, so a
// user-chosen output name can never collide with a staged file. The path is
// tracked up front so the engine's partial output gets a deletion attempt
// even when the job fails mid-run.
func (w *Workspace) OutputPath(name string) string {
	dst := filepath.Join(w.root, outputDirName, filepath.Base(name))
	w.track(dst)
	return dst
}

// Cleanup attempts a deletion for every created path, newest first, then
// removes the workspace root. Errors are swallowed so cleanup never masks
// the original failure.
func (w *Workspace) Cleanup() {
	for i := len(w.created) - 1; i >= 0; i-- {
		_ = w.removeFn(w.created[i])
	}
	w.created = w.created[:0]
	_ = w.removeFn(w.root)
}

func (w *Workspace) track(path string) {
	w.created = append(w.created, path)
}

func (w *Workspace) largeFileThreshold() int64 {
	return largeFileThreshold(w.staging)
}

func (w *Workspace) bufferedCopyCeiling() int64 {
	if w.staging.BufferedCopyCeiling > 0 {
		return w.staging.BufferedCopyCeiling
	}
	return defaultBufferedCopyCeiling
}

func largeFileThreshold(staging config.StagingConfig) int64 {
	if staging.LargeFileThreshold > 0 {
		return staging.LargeFileThreshold
	}
	return defaultLargeFileThreshold
}

func safeExt(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

func copyFile(dst, src string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	buf := make([]byte, copyBufferSize)
	if _, err := io.CopyBuffer(out, in, buf); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
