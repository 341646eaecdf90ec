package mc2

import (
	"github.com/escodb/mc2/internal/planner"
	"github.com/escodb/mc2/internal/store"
)

// UpdateMode and RemoveMode re-export the planner's DAG-shape knobs so
// callers never need to import the internal package directly.
type UpdateMode = planner.UpdateMode

// RemoveMode selects the shape of the DAG produced by a client's Remove workflow.
type RemoveMode = planner.RemoveMode

// CasMode selects how the store resolves compare-and-swap requests
// against absent and tombstoned keys.
type CasMode = store.CasMode

const (
	ReadsBeforeLinks = planner.ReadsBeforeLinks
	GetBeforePut     = planner.GetBeforePut

	UnlinkSequential = planner.UnlinkSequential
	UnlinkParallel   = planner.UnlinkParallel

	Strict   = store.Strict
	NoRev    = store.NoRev
	MatchRev = store.MatchRev
	Lax      = store.Lax
)

// Config is an immutable bundle of the four orthogonal knobs every
// other component consumes. It is a plain value type; copying a Config
// is always safe and cheap, so no explicit Clone method is needed.
type Config struct {
	UpdateMode UpdateMode
	RemoveMode RemoveMode
	SkipLinks  bool
	CasMode    CasMode
}

// Option configures a Config built by NewConfig.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		UpdateMode: ReadsBeforeLinks,
		RemoveMode: UnlinkSequential,
		SkipLinks:  false,
		CasMode:    Strict,
	}
}

// NewConfig builds a Config from defaultConfig plus the supplied options.
func NewConfig(opts ...Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithUpdateMode sets the shape of the DAG produced by Update.
func WithUpdateMode(m UpdateMode) Option {
	return func(c *Config) { c.UpdateMode = m }
}

// WithRemoveMode sets the shape of the DAG produced by Remove.
func WithRemoveMode(m RemoveMode) Option {
	return func(c *Config) { c.RemoveMode = m }
}

// WithSkipLinks controls whether an actor elides a directory write
// when the entry it would link is already present.
func WithSkipLinks(skip bool) Option {
	return func(c *Config) { c.SkipLinks = skip }
}

// WithCasMode sets how the store treats CAS requests against absent or
// tombstoned keys.
func WithCasMode(m CasMode) Option {
	return func(c *Config) { c.CasMode = m }
}
