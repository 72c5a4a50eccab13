// Package materialize implements the run orchestrator: it sequences
// secret resolution, rendering, staging, and linking across the whole
// manifest and aggregates per-entry outcomes.
package materialize

import (
	"sync"

	"github.com/arthur-debert/dotstrap/pkg/brew"
	"github.com/arthur-debert/dotstrap/pkg/command"
	"github.com/arthur-debert/dotstrap/pkg/config"
	"github.com/arthur-debert/dotstrap/pkg/filesystem"
	"github.com/arthur-debert/dotstrap/pkg/linker"
	"github.com/arthur-debert/dotstrap/pkg/logging"
	"github.com/arthur-debert/dotstrap/pkg/paths"
	"github.com/arthur-debert/dotstrap/pkg/repository"
	"github.com/arthur-debert/dotstrap/pkg/secrets"
	"github.com/arthur-debert/dotstrap/pkg/staging"
	"github.com/arthur-debert/dotstrap/pkg/templating"
	"github.com/arthur-debert/dotstrap/pkg/types"
)

// DefaultWorkers bounds the per-entry worker pool. Entries are
// mutually independent, so the pool only affects throughput.
const DefaultWorkers = 4

// Options defines the inputs of a materialization run.
type Options struct {
	// Source is a local repository path or a git URL.
	Source string

	// Home overrides the target home directory.
	Home string

	// DryRun computes and reports outcomes without mutating anything.
	DryRun bool

	// SkipBrew skips Homebrew package installation.
	SkipBrew bool

	// Workers caps the entry worker pool; zero means DefaultWorkers.
	Workers int

	// FS overrides the filesystem, for tests. Defaults to the OS.
	FS types.FS

	// Executor overrides external command execution, for tests.
	Executor types.Executor

	// Env overrides the environment consulted for env secrets, for
	// tests. Nil means the process environment.
	Env map[string]string
}

// Run materializes the repository's manifest into the home directory.
//
// Secret resolution failures abort the run before any filesystem
// mutation. Per-entry failures after that point are isolated: every
// entry is attempted, and the report enumerates all outcomes. The
// returned error covers run-fatal conditions only; callers decide exit
// status from report.Success().
func Run(opts Options) (*types.ExecutionReport, error) {
	logger := logging.GetLogger("commands.materialize")

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	executor := opts.Executor
	if executor == nil {
		executor = command.NewSystemExecutor()
	}

	report := &types.ExecutionReport{State: types.RunStateInitializing, DryRun: opts.DryRun}

	repo, err := repository.Resolve(opts.Source, executor)
	if err != nil {
		report.State = types.RunStateAborted
		return report, err
	}
	defer func() { _ = repo.Close() }()

	repoOpts, err := config.LoadRepoOptions(fs, repo.Path())
	if err != nil {
		report.State = types.RunStateAborted
		return report, err
	}

	pathSet, err := paths.NewWithOptions(opts.Home, paths.Options{
		StagingDir: repoOpts.Staging.Dir,
		BackupDir:  repoOpts.Backups.Dir,
	})
	if err != nil {
		report.State = types.RunStateAborted
		return report, err
	}

	// Manifest validation (version gate, duplicate destinations)
	// happens before any rendering.
	manifest, err := config.LoadManifest(fs, repo.Path())
	if err != nil {
		report.State = types.RunStateAborted
		return report, err
	}

	values, err := config.LoadValues(fs, repo.Path())
	if err != nil {
		report.State = types.RunStateAborted
		return report, err
	}
	specs, err := config.LoadSecretSpecs(fs, repo.Path())
	if err != nil {
		report.State = types.RunStateAborted
		return report, err
	}

	report.State = types.RunStateResolvingSecrets
	var resolver *secrets.Resolver
	if opts.Env != nil {
		resolver = secrets.NewResolverWithEnv(fs, pathSet, opts.Env)
	} else {
		resolver = secrets.NewResolver(fs, pathSet)
	}
	resolved, err := resolver.Resolve(specs, repo.Path())
	if err != nil {
		// Fail fast: no template renders with placeholder values and
		// nothing under the home root has been touched.
		report.State = types.RunStateAborted
		return report, err
	}

	context, err := templating.BuildContext(values, resolved)
	if err != nil {
		report.State = types.RunStateAborted
		return report, err
	}

	report.State = types.RunStateRendering
	outcomes, backups := runEntries(manifest.Templates, entryRunner{
		fs:       fs,
		paths:    pathSet,
		repoRoot: repo.Path(),
		context:  context,
		dryRun:   opts.DryRun,
	}, opts.Workers)

	report.State = types.RunStateLinking
	report.Outcomes = outcomes
	report.Backups = backups

	if !opts.SkipBrew {
		brewSpec, err := config.LoadBrewSpec(fs, repo.Path(), repoOpts.Brew.Manifest)
		if err != nil {
			report.State = types.RunStateCompleted
			return report, err
		}
		commands, err := brew.Install(brewSpec, executor, opts.DryRun)
		report.BrewCommands = commands
		if err != nil {
			report.State = types.RunStateCompleted
			return report, err
		}
	}

	report.State = types.RunStateCompleted
	logger.Info().
		Int("entries", len(report.Outcomes)).
		Int("backups", len(report.Backups)).
		Bool("dryRun", opts.DryRun).
		Bool("success", report.Success()).
		Msg("materialization finished")

	return report, nil
}

// entryRunner carries the per-entry pipeline dependencies.
type entryRunner struct {
	fs       types.FS
	paths    *paths.Paths
	repoRoot string
	context  types.RenderContext
	dryRun   bool
}

// runEntries processes every manifest entry through render, stage, and
// link on a bounded worker pool. Outcomes land in an index-keyed slice
// so the report preserves manifest order; entries never share a
// destination (validated upfront), so workers never contend on paths.
func runEntries(entries []types.ManifestEntry, runner entryRunner, workers int) ([]types.LinkOutcome, []types.BackupRecord) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(entries) {
		workers = len(entries)
	}

	outcomes := make([]types.LinkOutcome, len(entries))
	records := make([]*types.BackupRecord, len(entries))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				outcomes[idx], records[idx] = runner.run(entries[idx])
			}
		}()
	}
	for idx := range entries {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	var backups []types.BackupRecord
	for _, record := range records {
		if record != nil {
			backups = append(backups, *record)
		}
	}
	return outcomes, backups
}

// run renders, stages, and links a single entry. Failures before the
// linker are wrapped into Failed outcomes so sibling entries proceed.
func (r entryRunner) run(entry types.ManifestEntry) (types.LinkOutcome, *types.BackupRecord) {
	rendered, err := templating.NewRenderer(r.fs).Render(entry, r.repoRoot, r.context)
	if err != nil {
		return types.LinkOutcome{Entry: entry, Status: types.LinkStatusFailed, Err: err}, nil
	}

	var artifact *types.StagedArtifact
	if r.dryRun {
		// A dry run must not write anywhere under the home root, the
		// staging area included; the linker only needs the content.
		artifact = &types.StagedArtifact{
			Source:      entry.Source,
			Destination: entry.Destination,
			StagedPath:  r.paths.StagedPath(entry.Destination),
			Content:     rendered,
			Mode:        entry.Mode,
		}
	} else {
		artifact, err = staging.NewWriter(r.fs, r.paths).Stage(entry, rendered)
		if err != nil {
			return types.LinkOutcome{Entry: entry, Status: types.LinkStatusFailed, Err: err}, nil
		}
	}

	return linker.New(r.fs, r.paths).Commit(artifact, r.dryRun)
}
