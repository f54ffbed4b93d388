// Package manifest parses checksum manifests and validates batches of files
// against them.
//
// A manifest is the standard checksum-file format: one entry per line,
// '<hex-digest>  <relative-path>'. Parsing is partial-failure tolerant:
// malformed lines are collected as ParseErrors while the remaining lines are
// still processed, and the batch result always carries the full error list
// alongside the per-file results.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mrz1836/integrityforge/internal/digest"
	"github.com/mrz1836/integrityforge/internal/errors"
)

// algorithmDirective is the comment directive that switches the algorithm
// for subsequent entries, e.g. "# algorithm: blake3".
const algorithmDirective = "algorithm:"

// Entry is a single (path, expected digest, algorithm) manifest line.
type Entry struct {
	// Path is the relative path exactly as written in the manifest.
	Path string `json:"path"`

	// Expected is the lowercase hex digest the file must hash to.
	Expected string `json:"expected"`

	// Algorithm is the digest algorithm for this entry. Empty means the
	// processor resolves it from rule policy or the engine default.
	Algorithm digest.Algorithm `json:"algorithm,omitempty"`

	// Line is the 1-based manifest line number, for error reporting.
	Line int `json:"line"`
}

// ParseError describes one malformed manifest line.
type ParseError struct {
	// Line is the 1-based line number.
	Line int `json:"line"`

	// Reason is a human-readable description of what was wrong.
	Reason string `json:"reason"`
}

// Error implements the error interface.
func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Unwrap lets errors.Is(err, errors.ErrManifestParse) succeed.
func (e ParseError) Unwrap() error {
	return errors.ErrManifestParse
}

// Manifest is a parsed, immutable checksum manifest.
type Manifest struct {
	// Source identifies where the manifest came from (file path or "-").
	Source string `json:"source"`

	// Entries are the well-formed lines, in file order.
	Entries []Entry `json:"entries"`

	// Errors are the malformed lines, in file order. Non-fatal to the batch.
	Errors []ParseError `json:"errors,omitempty"`
}

// Parse reads a manifest from r. defaultAlgo is assigned to entries whose
// algorithm is not set by a directive; pass "" to defer resolution to the
// processor. Parsing never fails as a whole: every line either becomes an
// Entry or a ParseError.
func Parse(r io.Reader, source string, defaultAlgo digest.Algorithm) (*Manifest, error) {
	m := &Manifest{Source: source}
	current := defaultAlgo

	scanner := bufio.NewScanner(r)
	// Manifest lines are short; the default 64K token limit is plenty.
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			if algo, ok, err := parseDirective(line); err != nil {
				m.Errors = append(m.Errors, ParseError{Line: lineNo, Reason: err.Error()})
			} else if ok {
				current = algo
			}
			continue
		}

		entry, err := parseLine(line, lineNo, current)
		if err != nil {
			m.Errors = append(m.Errors, ParseError{Line: lineNo, Reason: err.Error()})
			continue
		}
		m.Entries = append(m.Entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrIO, "reading manifest %s: %v", source, err)
	}
	return m, nil
}

// parseDirective recognizes "# algorithm: <name>" comment lines. The bool
// result is false for ordinary comments.
func parseDirective(line string) (digest.Algorithm, bool, error) {
	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "#"))
	if !strings.HasPrefix(strings.ToLower(body), algorithmDirective) {
		return "", false, nil
	}
	name := strings.TrimSpace(body[len(algorithmDirective):])
	algo, err := digest.ParseAlgorithm(name)
	if err != nil {
		return "", false, fmt.Errorf("unknown algorithm %q in directive", name)
	}
	return algo, true, nil
}

// parseLine parses one '<hex-digest>  <relative-path>' entry. The sha256sum
// binary-mode separator ' *' is accepted as well.
func parseLine(line string, lineNo int, algo digest.Algorithm) (Entry, error) {
	sep := strings.IndexByte(line, ' ')
	if sep < 0 {
		return Entry{}, fmt.Errorf("missing path field")
	}

	hexDigest := line[:sep]
	rest := line[sep:]

	switch {
	case strings.HasPrefix(rest, "  "):
		rest = rest[2:]
	case strings.HasPrefix(rest, " *"):
		rest = rest[2:]
	default:
		return Entry{}, fmt.Errorf("expected two-space separator after digest")
	}

	if rest == "" {
		return Entry{}, fmt.Errorf("missing path field")
	}
	if !isHex(hexDigest) {
		return Entry{}, fmt.Errorf("digest is not hexadecimal")
	}
	// All supported algorithms are 256-bit, so the digest length is the
	// only inference signal available.
	if len(hexDigest) != digest.HexLength {
		return Entry{}, fmt.Errorf("unsupported digest length %d (want %d hex characters)", len(hexDigest), digest.HexLength)
	}

	return Entry{
		Path:      rest,
		Expected:  strings.ToLower(hexDigest),
		Algorithm: algo,
		Line:      lineNo,
	}, nil
}

// isHex reports whether s is non-empty and all hex digits.
func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
