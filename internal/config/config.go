// Package config provides configuration management for integrityforge with
// layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (applied by the CLI after loading)
//  2. Environment variables (INTEGRITYFORGE_* prefix)
//  3. Project config (.integrityforge/config.yaml)
//  4. Global config (~/.integrityforge/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants, internal/errors,
// internal/digest, and internal/rules, but MUST NOT import internal/cli or
// other higher-level packages.
package config

import (
	"github.com/mrz1836/integrityforge/internal/digest"
	"github.com/mrz1836/integrityforge/internal/errors"
	"github.com/mrz1836/integrityforge/internal/rules"
)

// Signing backends for attestation records.
const (
	// BackendEd25519 uses the built-in Ed25519 key manager.
	BackendEd25519 = "ed25519"

	// BackendPGP uses an OpenPGP keyring for detached signatures.
	BackendPGP = "pgp"
)

// Config is the root configuration structure for integrityforge.
type Config struct {
	// ChunkSize is the streaming read size in bytes used when hashing.
	// Files are hashed chunk by chunk and never loaded whole.
	// Default: 8192, Valid range: 512 to 16 MiB
	ChunkSize int `yaml:"chunk_size" mapstructure:"chunk_size"`

	// MaxWorkers caps the number of concurrent file validations during
	// batch processing. 0 means one worker per available CPU.
	// Default: 0
	MaxWorkers int `yaml:"max_workers" mapstructure:"max_workers"`

	// StrictMode tightens behavior across the tool: paths matching no
	// rule fail validation, and unknown configuration keys are rejected.
	// Default: false
	StrictMode bool `yaml:"strict_mode" mapstructure:"strict_mode"`

	// RequireMode selects required-rule semantics when multiple rules
	// match a path: "any" (at least one satisfied) or "all".
	// Default: "any"
	RequireMode string `yaml:"require_mode" mapstructure:"require_mode"`

	// SignatureRequired rejects unsigned attestation records during verify.
	// Default: false
	SignatureRequired bool `yaml:"signature_required" mapstructure:"signature_required"`

	// Algorithms is the digest algorithm allow-list. Entries outside this
	// list are rejected before any hashing starts.
	// Default: ["sha256", "sha3-256", "blake3"]
	Algorithms []string `yaml:"algorithms" mapstructure:"algorithms"`

	// Attestation contains settings for attestation generation and
	// verification.
	Attestation AttestationConfig `yaml:"attestation" mapstructure:"attestation"`

	// Rules is the ordered validation rule list. Declaration order is
	// match order.
	Rules []RuleConfig `yaml:"rules,omitempty" mapstructure:"rules"`

	// Logging contains settings for structured log output.
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// AttestationConfig contains settings for attestation records.
type AttestationConfig struct {
	// Backend selects the signing backend: "ed25519" or "pgp".
	// Default: "ed25519"
	Backend string `yaml:"backend" mapstructure:"backend"`

	// Sign controls whether generated records are signed.
	// Default: true
	Sign bool `yaml:"sign" mapstructure:"sign"`

	// KeyDir is the directory holding the Ed25519 signing key.
	// Empty means ~/.integrityforge/keys.
	KeyDir string `yaml:"key_dir,omitempty" mapstructure:"key_dir"`

	// Keyring is the OpenPGP keyring path for the pgp backend. Armored
	// and binary keyrings are both accepted.
	Keyring string `yaml:"keyring,omitempty" mapstructure:"keyring"`

	// Output is the default attestation output file. Records are
	// appended as JSON lines. Empty means write to stdout.
	Output string `yaml:"output,omitempty" mapstructure:"output"`
}

// RuleConfig is the YAML shape of a single validation rule. It is converted
// to a rules.Rule by RuleSet.
type RuleConfig struct {
	// Name identifies the rule in results and logs.
	Name string `yaml:"name" mapstructure:"name"`

	// Patterns is the ordered glob-pattern list ('**' is supported).
	Patterns []string `yaml:"patterns" mapstructure:"patterns"`

	// Required marks the rule as one that must be satisfied.
	Required bool `yaml:"required,omitempty" mapstructure:"required"`

	// Algorithms restricts which digest algorithms satisfy the rule.
	// Empty means any allowed algorithm.
	Algorithms []string `yaml:"algorithms,omitempty" mapstructure:"algorithms"`

	// Severity is "error" (default) or "warning".
	Severity string `yaml:"severity,omitempty" mapstructure:"severity"`

	// Actions carries opaque action tags reported with match results.
	Actions []string `yaml:"actions,omitempty" mapstructure:"actions"`
}

// LoggingConfig contains settings for structured log output.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: "info"
	Level string `yaml:"level" mapstructure:"level"`

	// Format selects the console format: "auto" (console on a TTY, JSON
	// otherwise), "json", or "console".
	// Default: "auto"
	Format string `yaml:"format" mapstructure:"format"`
}

// ParsedAlgorithms parses the configured algorithm allow-list.
func (c *Config) ParsedAlgorithms() ([]digest.Algorithm, error) {
	if len(c.Algorithms) == 0 {
		return nil, errors.Wrap(errors.ErrConfigInvalid, "algorithms must not be empty")
	}
	out := make([]digest.Algorithm, 0, len(c.Algorithms))
	for _, name := range c.Algorithms {
		algo, err := digest.ParseAlgorithm(name)
		if err != nil {
			return nil, err
		}
		out = append(out, algo)
	}
	return out, nil
}

// DigestEngine builds a digest engine from the configured chunk size and
// algorithm allow-list.
func (c *Config) DigestEngine() (*digest.Engine, error) {
	algos, err := c.ParsedAlgorithms()
	if err != nil {
		return nil, err
	}
	return digest.NewEngine(c.ChunkSize, algos), nil
}

// RuleSet builds the immutable rule set from the configured rules, strict
// mode, and require mode.
func (c *Config) RuleSet() (*rules.Set, error) {
	mode, err := rules.ParseRequireMode(c.RequireMode)
	if err != nil {
		return nil, err
	}

	converted := make([]rules.Rule, 0, len(c.Rules))
	for _, rc := range c.Rules {
		algos := make([]digest.Algorithm, 0, len(rc.Algorithms))
		for _, name := range rc.Algorithms {
			algo, parseErr := digest.ParseAlgorithm(name)
			if parseErr != nil {
				return nil, errors.Wrapf(errors.ErrConfigInvalid,
					"rule %q: %v", rc.Name, parseErr)
			}
			algos = append(algos, algo)
		}

		severity := rules.Severity(rc.Severity)
		if rc.Severity == "" {
			severity = rules.SeverityError
		}

		converted = append(converted, rules.Rule{
			Name:       rc.Name,
			Patterns:   rc.Patterns,
			Required:   rc.Required,
			Algorithms: algos,
			Severity:   severity,
			Actions:    rc.Actions,
		})
	}

	return rules.NewSet(converted, c.StrictMode, mode)
}
