// Package integrity computes and verifies content digests of firmware files.
//
// Files are streamed through the digest with a fixed-size buffer, so images
// of any size are checked without being loaded into memory. Digests are
// rendered as uppercase hex, the form flashing documents carry in their MD5
// attributes.
package integrity

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/mflash/pkg/errors"
	"github.com/arthur-debert/mflash/pkg/logging"
	"github.com/rs/zerolog"
)

// BufferSize is the read buffer used while streaming a file.
const BufferSize = 8192

// DefaultAlgorithm matches the MD5 attribute of flashing documents.
const DefaultAlgorithm = "md5"

var algorithms = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
}

// Algorithms lists the supported digest names.
func Algorithms() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Checker computes and verifies digests with one algorithm.
type Checker struct {
	algorithm string
	newHash   func() hash.Hash
	logger    zerolog.Logger
}

// NewChecker returns a Checker for the named algorithm. An empty name
// selects DefaultAlgorithm.
func NewChecker(algorithm string) (*Checker, error) {
	name := strings.ToLower(strings.TrimSpace(algorithm))
	if name == "" {
		name = DefaultAlgorithm
	}
	newHash, ok := algorithms[name]
	if !ok {
		return nil, errors.Newf(errors.ErrDigestAlgorithm,
			"unsupported digest algorithm %q (supported: %s)", algorithm, strings.Join(Algorithms(), ", ")).
			WithDetail("algorithm", algorithm)
	}
	return &Checker{
		algorithm: name,
		newHash:   newHash,
		logger:    logging.GetLogger("integrity"),
	}, nil
}

// Algorithm returns the digest name in use.
func (c *Checker) Algorithm() string {
	return c.algorithm
}

// ComputeDigest streams file through the digest and returns uppercase hex.
func (c *Checker) ComputeDigest(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrNotReadable, "cannot open %s", file).
			WithDetail("path", file)
	}
	defer func() { _ = f.Close() }()

	h := c.newHash()
	buf := make([]byte, BufferSize)
	n, err := io.CopyBuffer(h, f, buf)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", file).
			WithDetail("path", file)
	}

	digest := strings.ToUpper(hex.EncodeToString(h.Sum(nil)))
	c.logger.Trace().
		Str("file", file).
		Int64("bytes", n).
		Str("digest", digest).
		Msg("Digest computed")
	return digest, nil
}

// Verify fails with INTEGRITY_MISMATCH when the digest of file differs
// from expected. Hex case and surrounding whitespace are ignored.
func (c *Checker) Verify(file, expected string) error {
	actual, err := c.ComputeDigest(file)
	if err != nil {
		return err
	}

	want := strings.ToUpper(strings.TrimSpace(expected))
	if actual != want {
		return errors.Newf(errors.ErrIntegrityMismatch,
			"expected %s of %q to be %q, not %q", strings.ToUpper(c.algorithm), file, want, actual).
			WithDetails(map[string]interface{}{
				"file":      file,
				"expected":  want,
				"actual":    actual,
				"algorithm": c.algorithm,
			})
	}

	c.logger.Debug().Str("file", file).Str("digest", actual).Msg("Digest verified")
	return nil
}
