// Package payload implements the boundary file loader: it reads a payload
// file for the pipeline and maps every failure into an io-category
// cfgerr.Code, so a caller watching the log stream sees one uniform error
// vocabulary whether a run failed loading, parsing, validating, or
// verifying. The core never produces io codes; this package is the only
// source of them.
package payload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/danmuck/aethercfg/internal/cfgerr"
)

// DefaultMaxSize is the largest payload Read accepts unless the caller
// overrides it; sized for the device's 3 KiB payload buffer.
const DefaultMaxSize = 3 * 1024

// ErrLoadFailed is returned alongside a non-zero Code whenever the payload
// could not be loaded.
var ErrLoadFailed = errors.New("payload: load failed")

// Read loads the file at path, enforcing maxSize (<= 0 selects
// DefaultMaxSize). On failure it returns a zero-length slice plus the
// io-category Code describing what went wrong:
//
//	FILE_NOT_FOUND  — path's directory exists but the file does not
//	PATH_NOT_FOUND  — a directory component of path does not exist
//	INVALID_NAME    — path names something that is not a regular file
//	FILE_TOO_LARGE  — the file exceeds maxSize (the code's int24 payload
//	                  carries the observed size, clamped)
func Read(path string, maxSize int) ([]byte, cfgerr.Code, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			kind := cfgerr.KindFileNotFound
			if dir := filepath.Dir(path); !dirExists(dir) {
				kind = cfgerr.KindPathNotFound
			}
			return nil, cfgerr.WithInt24(cfgerr.CategoryIO, kind, 0),
				fmt.Errorf("%w: %s", ErrLoadFailed, path)
		}
		return nil, cfgerr.WithInt24(cfgerr.CategoryIO, cfgerr.KindInvalidName, 0),
			fmt.Errorf("%w: stat %s: %v", ErrLoadFailed, path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, cfgerr.WithInt24(cfgerr.CategoryIO, cfgerr.KindInvalidName, 0),
			fmt.Errorf("%w: not a regular file: %s", ErrLoadFailed, path)
	}
	if info.Size() > int64(maxSize) {
		size := info.Size()
		if size > 0x7FFFFF {
			size = 0x7FFFFF
		}
		return nil, cfgerr.WithInt24(cfgerr.CategoryIO, cfgerr.KindFileTooLarge, int32(size)),
			fmt.Errorf("%w: %s is %d bytes, max %d", ErrLoadFailed, path, info.Size(), maxSize)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, cfgerr.WithInt24(cfgerr.CategoryIO, cfgerr.KindInvalidName, 0),
			fmt.Errorf("%w: read %s: %v", ErrLoadFailed, path, err)
	}
	return buf, 0, nil
}

func dirExists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}
