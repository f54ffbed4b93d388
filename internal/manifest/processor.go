package manifest

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/integrityforge/internal/digest"
	"github.com/mrz1836/integrityforge/internal/errors"
	"github.com/mrz1836/integrityforge/internal/rules"
)

// Status is the per-file validation outcome.
type Status string

// Validation outcomes.
const (
	// StatusPassed means the observed digest matched and rule policy was
	// satisfied.
	StatusPassed Status = "passed"

	// StatusFailed means the digest mismatched or a required rule was not
	// satisfied. A normal outcome, not an operational error.
	StatusFailed Status = "failed"

	// StatusErrored means the file could not be processed (unreadable,
	// cancelled). Never retried automatically.
	StatusErrored Status = "errored"
)

// Result is the outcome of validating one manifest entry.
type Result struct {
	Path       string           `json:"path"`
	Status     Status           `json:"status"`
	Algorithm  digest.Algorithm `json:"algorithm"`
	Expected   string           `json:"expected"`
	Observed   string           `json:"observed,omitempty"`
	Rules      []string         `json:"rules,omitempty"`
	Error      string           `json:"error,omitempty"`
	DurationMs int64            `json:"duration_ms"`
}

// Summary aggregates a batch run: per-file results in manifest order, the
// manifest's parse errors, and the outcome counts.
type Summary struct {
	Source      string       `json:"source"`
	Results     []Result     `json:"results"`
	ParseErrors []ParseError `json:"parse_errors,omitempty"`
	Passed      int          `json:"passed"`
	Failed      int          `json:"failed"`
	Errored     int          `json:"errored"`
	DurationMs  int64        `json:"duration_ms"`
}

// Ok reports whether every entry passed and the manifest parsed cleanly.
func (s *Summary) Ok() bool {
	return s.Failed == 0 && s.Errored == 0 && len(s.ParseErrors) == 0
}

// ExitCode maps the batch outcome to the process exit code contract:
// 0 all passed, 1 any failed, 2 any errored. Operational errors take
// precedence over validation failures so they are never masked.
func (s *Summary) ExitCode() int {
	switch {
	case s.Errored > 0:
		return 2
	case s.Failed > 0 || len(s.ParseErrors) > 0:
		return 1
	default:
		return 0
	}
}

// Processor drives batch validation: per entry it computes the digest,
// compares it against the expectation, and applies rule policy. Entries are
// independent and processed by a bounded worker pool; the only shared
// mutable state is the result collector behind a single channel.
type Processor struct {
	engine  *digest.Engine
	ruleSet *rules.Set
	workers int
}

// NewProcessor creates a batch processor. workers <= 0 defaults to the
// available parallelism.
func NewProcessor(engine *digest.Engine, ruleSet *rules.Set, workers int) *Processor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Processor{engine: engine, ruleSet: ruleSet, workers: workers}
}

// ValidateBatch validates every manifest entry concurrently and returns the
// aggregated summary. Per-file errors never abort the batch; the returned
// error is reserved for pre-flight failures detected before any file is
// touched (an entry naming an algorithm outside the allow-list). A cancelled
// context does not abort either: in-flight and remaining entries land in the
// summary as Errored/cancelled, so the run still reports and exits 2.
func (p *Processor) ValidateBatch(ctx context.Context, m *Manifest) (*Summary, error) {
	log := zerolog.Ctx(ctx)
	start := time.Now()

	// Fail fast before any file is read: every explicit algorithm must be
	// in the allow-list.
	for _, entry := range m.Entries {
		if entry.Algorithm != "" && !p.engine.Allowed(entry.Algorithm) {
			return nil, errors.Wrapf(errors.ErrUnsupportedAlgorithm,
				"manifest line %d requests %q", entry.Line, entry.Algorithm)
		}
	}

	summary := &Summary{
		Source:      m.Source,
		Results:     make([]Result, len(m.Entries)),
		ParseErrors: m.Errors,
	}

	log.Info().
		Str("source", m.Source).
		Int("entries", len(m.Entries)).
		Int("parse_errors", len(m.Errors)).
		Int("workers", p.workers).
		Msg("starting batch validation")

	type indexed struct {
		idx int
		res Result
	}

	// Single-writer aggregation: workers only send; the collector below is
	// the sole goroutine touching the results slice.
	resCh := make(chan indexed)
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for ir := range resCh {
			summary.Results[ir.idx] = ir.res
		}
	}()

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, entry := range m.Entries {
		i, entry := i, entry
		g.Go(func() error {
			resCh <- indexed{idx: i, res: p.validateEntry(ctx, entry)}
			return nil
		})
	}
	_ = g.Wait()
	close(resCh)
	<-collectorDone

	for _, r := range summary.Results {
		switch r.Status {
		case StatusPassed:
			summary.Passed++
		case StatusFailed:
			summary.Failed++
		case StatusErrored:
			summary.Errored++
		}
	}
	summary.DurationMs = time.Since(start).Milliseconds()

	log.Info().
		Int("passed", summary.Passed).
		Int("failed", summary.Failed).
		Int("errored", summary.Errored).
		Int64("duration_ms", summary.DurationMs).
		Msg("batch validation complete")

	return summary, nil
}

// validateEntry runs the Reading → Hashing → Comparing pipeline for one
// entry. Each call owns its own streaming buffer; nothing is shared.
func (p *Processor) validateEntry(ctx context.Context, entry Entry) Result {
	log := zerolog.Ctx(ctx)
	start := time.Now()

	algo := p.resolveAlgorithm(entry)
	res := Result{
		Path:      entry.Path,
		Algorithm: algo,
		Expected:  entry.Expected,
	}

	matched, ruleErr := p.ruleSet.Evaluate(entry.Path, algo)
	for _, r := range matched {
		res.Rules = append(res.Rules, r.Name)
	}
	for _, name := range p.ruleSet.Warnings(entry.Path, algo) {
		log.Warn().Str("path", entry.Path).Str("rule", name).Msg("rule violation (warning severity)")
	}
	if ruleErr != nil {
		res.Status = StatusFailed
		res.Error = ruleErr.Error()
		res.DurationMs = time.Since(start).Milliseconds()
		return res
	}

	observed, err := p.engine.ComputeFile(ctx, entry.Path, algo)
	if err != nil {
		res.Status = StatusErrored
		res.Error = err.Error()
		if ctx.Err() != nil {
			res.Error = "cancelled: " + ctx.Err().Error()
		}
		res.DurationMs = time.Since(start).Milliseconds()
		return res
	}
	res.Observed = observed.Hex

	if digest.EqualHex(entry.Expected, observed.Hex) {
		res.Status = StatusPassed
	} else {
		res.Status = StatusFailed
		res.Error = errors.ErrDigestMismatch.Error()
	}
	res.DurationMs = time.Since(start).Milliseconds()
	return res
}

// resolveAlgorithm picks the algorithm for an entry with none declared: a
// single-algorithm required rule wins, otherwise the default.
func (p *Processor) resolveAlgorithm(entry Entry) digest.Algorithm {
	if entry.Algorithm != "" {
		return entry.Algorithm
	}
	for _, r := range p.ruleSet.Match(entry.Path) {
		if r.Required && len(r.Algorithms) == 1 {
			return r.Algorithms[0]
		}
	}
	return digest.SHA256
}
