// Package secret loads and tracks the shared secrets used to authenticate
// requests between the WOPI bridge and its calling application.
//
// A secret lives in a plain file referenced by the configuration
// (security.wopisecretfile, security.iopsecretfile). Rotation happens by
// replacing the file and restarting the process: a changed secret is never
// hot-swapped, only detected and reported.
package secret

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// Secret is a shared secret loaded from a file.
type Secret struct {
	// Path is the file the secret was read from.
	Path string

	value []byte
}

// Load reads a shared secret from path.
//
// Trailing whitespace (typically the newline most editors append) is
// stripped. An empty or whitespace-only file is rejected: an empty shared
// secret would make every signed token verifiable by anyone.
func Load(path string) (*Secret, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret file %s: %w", path, err)
	}

	value := strings.TrimRight(string(raw), " \t\r\n")
	if value == "" {
		return nil, fmt.Errorf("secret file %s is empty", path)
	}

	return &Secret{Path: path, value: []byte(value)}, nil
}

// Bytes returns the secret material for signing or verification.
func (s *Secret) Bytes() []byte {
	return s.value
}

// Fingerprint returns a short hex digest of the secret, safe to log.
func (s *Secret) Fingerprint() string {
	sum := sha256.Sum256(s.value)
	return hex.EncodeToString(sum[:8])
}

// Equal compares two secrets in constant time.
func (s *Secret) Equal(other *Secret) bool {
	if other == nil {
		return false
	}
	return subtle.ConstantTimeCompare(s.value, other.value) == 1
}

// Changed re-reads the secret file and reports whether the on-disk material
// differs from the loaded one. The loaded secret is left untouched either
// way; a change requires a process restart to take effect.
func (s *Secret) Changed() (bool, error) {
	current, err := Load(s.Path)
	if err != nil {
		return false, err
	}
	return !s.Equal(current), nil
}

// Pair holds the two shared secrets of the bridge: the WOPI secret signs the
// access tokens handed to the editing frontend, the IOP secret authenticates
// calls between bridge components.
type Pair struct {
	WOPI *Secret
	IOP  *Secret
}

// LoadPair loads both secrets. The two files may point at the same path; the
// secrets are still tracked independently.
func LoadPair(wopiPath, iopPath string) (*Pair, error) {
	wopi, err := Load(wopiPath)
	if err != nil {
		return nil, fmt.Errorf("wopi secret: %w", err)
	}
	iop, err := Load(iopPath)
	if err != nil {
		return nil, fmt.Errorf("iop secret: %w", err)
	}
	return &Pair{WOPI: wopi, IOP: iop}, nil
}

// Changed reports whether either secret file changed on disk since loading.
// Unreadable files count as changed: the running process can no longer prove
// what the next restart would load.
func (p *Pair) Changed() bool {
	for _, s := range []*Secret{p.WOPI, p.IOP} {
		changed, err := s.Changed()
		if err != nil || changed {
			return true
		}
	}
	return false
}
