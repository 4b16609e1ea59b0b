// Package compression unpacks single-file compressed images (photo.png.xz,
// scan.tiff.gz) so the external tools receive a plain image.
package compression

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/jmylchreest/swatch/internal/security"
)

// MaxDecompressedSize bounds the size of a decompressed image.
const MaxDecompressedSize = 512 * 1024 * 1024

// opener wraps a compressed stream in a decompressing reader.
type opener func(io.Reader) (io.Reader, error)

var openers = map[string]opener{
	".xz": func(r io.Reader) (io.Reader, error) {
		return xz.NewReader(r)
	},
	".gz": func(r io.Reader) (io.Reader, error) {
		return gzip.NewReader(r)
	},
	".bz2": func(r io.Reader) (io.Reader, error) {
		return bzip2.NewReader(r), nil
	},
}

// IsCompressed reports whether path has a compression suffix Decompress understands.
func IsCompressed(path string) bool {
	_, ok := openers[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Decompress writes the decompressed form of src into destDir and returns its path.
// The output keeps the source name minus the compression suffix, so the inner
// extension still tells the tools what format to expect.
// Paths without a known suffix are returned unchanged with decompressed=false.
func Decompress(src, destDir string) (path string, decompressed bool, err error) {
	ext := filepath.Ext(src)
	open, ok := openers[strings.ToLower(ext)]
	if !ok {
		return src, false, nil
	}

	in, err := os.Open(src) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return "", false, fmt.Errorf("failed to open compressed image: %w", err)
	}
	defer in.Close()

	r, err := open(in)
	if err != nil {
		return "", false, fmt.Errorf("failed to create %s reader: %w", strings.TrimPrefix(ext, "."), err)
	}

	name := strings.TrimSuffix(filepath.Base(src), ext)
	if name == "" || name == "." {
		name = "decompressed"
	}
	destPath := filepath.Join(destDir, name)

	out, err := os.Create(destPath) // #nosec G304 - Destination inside the scratch directory
	if err != nil {
		return "", false, fmt.Errorf("failed to create decompressed image: %w", err)
	}

	limitedReader := security.NewLimitedReader(r, MaxDecompressedSize)
	_, copyErr := io.Copy(out, limitedReader)
	closeErr := out.Close()

	if copyErr != nil {
		return "", false, fmt.Errorf("failed to decompress image: %w", copyErr)
	}
	if closeErr != nil {
		return "", false, fmt.Errorf("failed to close decompressed image: %w", closeErr)
	}

	return destPath, true, nil
}
