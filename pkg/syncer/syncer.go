// Package syncer drives one pass over every configured dotfile: build the
// pair, copy it in the requested direction, and collect what went wrong.
//
// Pairs are handled one after the other. A pair that cannot be built is
// reported and skipped; it never stops the pass.
package syncer

import (
	"time"

	"github.com/arthur-debert/dotsync/pkg/config"
	"github.com/arthur-debert/dotsync/pkg/entity"
	"github.com/arthur-debert/dotsync/pkg/filesystem"
	"github.com/arthur-debert/dotsync/pkg/logging"
	"github.com/arthur-debert/dotsync/pkg/pair"
	"github.com/arthur-debert/dotsync/pkg/paths"
	"github.com/arthur-debert/dotsync/pkg/types"
)

// Options controls a pass
type Options struct {
	Direction types.Direction
	DryRun    bool
	// ManagerOverride replaces the configured manager directory when set
	ManagerOverride string
	// FS replaces the filesystem chosen from DryRun. Used by tests.
	FS types.FS
}

// PairResult is the outcome for one dotfile record
type PairResult struct {
	Dotfile     config.Dotfile
	ManagerPath string
	SystemPath  string

	// ManagerKind and SystemKind are what existed before the pair was built
	ManagerKind types.Kind
	SystemKind  types.Kind
	Kind        types.Kind

	// ConstructErr is set when the pair could not be built; nothing else
	// after it is filled in.
	ConstructErr error
	TreeErrors   []error
	CopyErrors   []error
	// CopyErr is set when the copy could not start at all
	CopyErr error

	// Stats describes the source side of the copy
	Stats    entity.Stats
	Duration time.Duration
}

// Failed reports whether the pair could not be built or copied
func (r PairResult) Failed() bool {
	return r.ConstructErr != nil || r.CopyErr != nil
}

// ErrorCount counts every error attached to the pair
func (r PairResult) ErrorCount() int {
	n := len(r.TreeErrors) + len(r.CopyErrors)
	if r.ConstructErr != nil {
		n++
	}
	if r.CopyErr != nil {
		n++
	}
	return n
}

// Result is the outcome of a whole pass
type Result struct {
	Direction   types.Direction
	DryRun      bool
	ManagerRoot string
	// Copied is false for status passes
	Copied bool

	RecordErrors []error
	Pairs        []PairResult
}

// Summary totals a Result
type Summary struct {
	Pairs    int
	Failed   int
	Errors   int
	Files    int
	Bytes    int64
	Records  int
	Rejected int
}

// Summary totals the pass
func (r *Result) Summary() Summary {
	s := Summary{
		Pairs:    len(r.Pairs),
		Records:  len(r.Pairs) + len(r.RecordErrors),
		Rejected: len(r.RecordErrors),
		Errors:   len(r.RecordErrors),
	}
	for _, p := range r.Pairs {
		if p.Failed() {
			s.Failed++
		}
		s.Errors += p.ErrorCount()
		s.Files += p.Stats.Files
		s.Bytes += p.Stats.Bytes
	}
	return s
}

// Sync builds and copies every pair in cfg
func Sync(cfg *config.Config, opts Options) (*Result, error) {
	return run(cfg, opts, true)
}

// Status builds every pair without copying. Unless opts.FS is set it runs
// on the dry-run overlay, so the directories pair construction creates
// never reach the disk.
func Status(cfg *config.Config, opts Options) (*Result, error) {
	if opts.FS == nil {
		opts.DryRun = true
	}
	return run(cfg, opts, false)
}

func run(cfg *config.Config, opts Options, doCopy bool) (*Result, error) {
	logger := logging.GetLogger("syncer")

	root, err := cfg.ManagerRoot(opts.ManagerOverride)
	if err != nil {
		return nil, err
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.New(opts.DryRun)
	}

	result := &Result{
		Direction:    opts.Direction,
		DryRun:       opts.DryRun,
		ManagerRoot:  root,
		Copied:       doCopy,
		RecordErrors: cfg.RecordErrors,
	}

	logger.Info().
		Str("manager", root).
		Str("direction", opts.Direction.String()).
		Bool("dryRun", opts.DryRun).
		Int("dotfiles", len(cfg.Dotfiles)).
		Msg("Starting pass")

	for _, d := range cfg.Dotfiles {
		result.Pairs = append(result.Pairs, runPair(fsys, cfg, root, d, opts.Direction, doCopy))
	}

	s := result.Summary()
	logger.Info().
		Int("pairs", s.Pairs).
		Int("failed", s.Failed).
		Int("errors", s.Errors).
		Msg("Pass finished")
	return result, nil
}

func runPair(fsys types.FS, cfg *config.Config, root string, d config.Dotfile, dir types.Direction, doCopy bool) (r PairResult) {
	logger := logging.GetLogger("syncer").With().
		Int("index", d.Index).
		Str("manager_path", d.ManagerPath).
		Logger()
	done := logging.LogOperationStart(logger, "pair")
	defer done()

	start := time.Now()
	r = PairResult{
		Dotfile:     d,
		ManagerPath: d.ManagerPath,
		SystemPath:  d.SystemPath,
	}
	defer func() { r.Duration = time.Since(start) }()

	// Best effort: pair.New reports bad paths itself
	if p, err := paths.JoinManagerPath(root, d.ManagerPath); err == nil {
		r.ManagerPath = p
		r.ManagerKind, _ = entity.Classify(fsys, p)
	}
	if p, err := paths.ResolveSystemPath(d.SystemPath); err == nil {
		r.SystemPath = p
		r.SystemKind, _ = entity.Classify(fsys, p)
	}

	ignore, err := cfg.IgnoreFor(d)
	if err != nil {
		r.ConstructErr = err
		return r
	}

	m, err := pair.New(fsys, root, d.ManagerPath, d.SystemPath, entity.WithIgnore(ignore))
	if err != nil {
		logger.Warn().Err(err).Msg("Pair could not be built")
		r.ConstructErr = err
		return r
	}
	r.Kind = m.Kind()
	r.TreeErrors = m.TreeErrors()
	r.Stats = statsOf(m.Source(dir))

	if !doCopy {
		return r
	}

	r.CopyErrors, r.CopyErr = m.Copy(dir)
	if r.CopyErr != nil {
		logger.Warn().Err(r.CopyErr).Msg("Copy failed")
	}
	for _, err := range r.CopyErrors {
		logger.Warn().Err(err).Msg("Copy error")
	}
	return r
}

func statsOf(e entity.Entity) entity.Stats {
	switch v := e.(type) {
	case *entity.Directory:
		return v.Stats()
	case *entity.File:
		return entity.Stats{Files: 1, Bytes: v.Size}
	default:
		return entity.Stats{}
	}
}
