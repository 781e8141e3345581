package install

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/0xb0rn3/blackutility/internal/app"
	"github.com/0xb0rn3/blackutility/internal/app/cancel"
	"github.com/0xb0rn3/blackutility/internal/app/orchestrator"
	"github.com/0xb0rn3/blackutility/internal/app/preflight"
	"github.com/0xb0rn3/blackutility/internal/app/report"
	"github.com/0xb0rn3/blackutility/internal/app/teardown"
	"github.com/0xb0rn3/blackutility/internal/domain/catalog"
	"github.com/0xb0rn3/blackutility/internal/domain/model/workitem"
	"github.com/0xb0rn3/blackutility/internal/infra/lockfile"
	"github.com/0xb0rn3/blackutility/internal/infra/logsink"
	"github.com/0xb0rn3/blackutility/internal/infra/pkgmgr"
	"github.com/0xb0rn3/blackutility/internal/infra/statefile"
	"github.com/0xb0rn3/blackutility/internal/interface/cli/common"
)

// NewCommand creates the install command.
func NewCommand() *cobra.Command {
	var category string
	var resume bool
	var bootstrap bool
	var refresh bool
	var skipNetwork bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the security-tool catalog",
		Long: `Install the security-tool catalog by driving the system package manager.

The run is guarded by a singleton lock, validated by preflight checks, and
gated on a typed confirmation before anything is mutated. Each target gets
up to three attempts under a five-minute deadline; failures are recorded and
the run moves on. Interrupting the run (Ctrl+C) stops before the next target
and saves resume state.

Examples:
  blackutility install                          # full catalog
  blackutility install --category forensics     # one curated category
  blackutility install --resume                 # continue a cancelled run
  blackutility install --bootstrap              # register repository keyring first`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := catalog.Validate(category); err != nil {
				return err
			}
			opts := options{
				category:    category,
				resume:      resume,
				bootstrap:   bootstrap,
				refresh:     refresh,
				skipNetwork: skipNetwork,
			}
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&category, "category", catalog.All, "Tool category to install")
	cmd.Flags().BoolVar(&resume, "resume", false, "Resume a previously interrupted run")
	cmd.Flags().BoolVar(&bootstrap, "bootstrap", false, "Register repository prerequisites (keyring) before installing")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Refresh the package database before installing")
	cmd.Flags().BoolVar(&skipNetwork, "skip-network-check", false, "Skip the connectivity preflight probe")
	return cmd
}

type options struct {
	category    string
	resume      bool
	bootstrap   bool
	refresh     bool
	skipNetwork bool
}

// run wires one installation run end to end. Precondition failures return
// an error before any mutation; reaching the summary step returns nil
// unless the run was cancelled or timed out.
func run(cmd *cobra.Command, opts options) error {
	cfg := common.GetGlobalConfig()
	paths := app.GetPaths()
	fs := afero.NewOsFs()
	log := common.GetLogger()

	// Every resource registers its release here; the sequencer runs once on
	// every exit path.
	seq := teardown.NewSequencer()
	seq.OnError = func(name string, err error) {
		log.Warn("teardown %s: %v", name, err)
	}
	defer seq.Run()

	// Signals are caught before anything is acquired, so a Ctrl+C at any
	// later point funnels through the sequencer instead of killing the
	// process outright.
	state := cancel.NewState()
	ctx, stop := state.Install(context.Background(), cfg.RunTimeout())
	defer stop()

	// Preflight gates everything; no lock marker is created when it fails.
	validator := preflight.New(
		cfg.MinDiskBytes(),
		cfg.MinMemoryBytes(),
		preflight.HostFamiliesFor(cfg.Manager()),
		preflight.DBLockPathFor(cfg.Manager()),
	)
	validator.SkipNetwork = opts.skipNetwork
	if err := validator.Validate(); err != nil {
		log.Error("preflight: %v", err)
		return fmt.Errorf("preflight: %w", err)
	}

	// The lock comes before the log sink: a losing instance must not rotate
	// the holder's live log out from under it.
	guard := lockfile.NewGuard(paths.Lock)
	if err := guard.Acquire(); err != nil {
		log.Error("lock: %v", err)
		return fmt.Errorf("lock: %w", err)
	}
	seq.Register("run lock", guard.Release)

	sink, err := logsink.Open(fs, paths.Log)
	if err != nil {
		log.Error("open log: %v", err)
		return fmt.Errorf("open log: %w", err)
	}
	log.SetSink(sink)
	seq.Register("log sink", func() error {
		log.SetSink(nil)
		return sink.Close()
	})

	// Nothing is mutated until the operator types the exact token.
	if err := confirm(ctx, cmd, cfg.ConfirmToken(), cfg.ConfirmTimeout()); err != nil {
		log.Warn("%v", err)
		return err
	}

	runner := pkgmgr.NewRunner(paths.Capture)
	seq.Register("command capture", runner.Close)

	mgr, err := pkgmgr.Detect(cfg.Manager(), runner)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	log.Info("using package manager: %s", mgr.Name())

	if opts.bootstrap {
		log.Info("bootstrapping repository prerequisites")
		if err := mgr.Bootstrap(ctx); err != nil {
			log.Error("bootstrap: %v", err)
			return fmt.Errorf("bootstrap: %w", err)
		}
	} else if opts.refresh {
		log.Info("refreshing package database")
		if err := mgr.Refresh(ctx); err != nil {
			log.Error("refresh: %v", err)
			return fmt.Errorf("refresh: %w", err)
		}
	}

	provider := pkgmgr.NewWorkListProvider(fs, mgr, paths.WorkList)
	seq.Register("work-list artifact", provider.Cleanup)

	store := statefile.NewStore(fs, paths.State)
	targets, prevCompleted, err := resolveTargets(ctx, opts, cfg.ToolGroup(), provider, store, log)
	if err != nil {
		log.Error("%v", err)
		return err
	}

	orch := orchestrator.New(
		mgr,
		state,
		orchestrator.Config{
			MaxRetries:    cfg.MaxRetries(),
			RetryCooldown: cfg.RetryCooldown(),
			ItemTimeout:   cfg.ItemTimeout(),
		},
		newLogReporter(log),
		log.Info, log.Warn, log.Error,
	)
	summary := orch.Run(ctx, targets)

	persistOutcome(summary, opts.category, prevCompleted, store, log)

	if err := report.Write(fs, paths.Report, report.FromSummary(summary)); err != nil {
		log.Warn("write report: %v", err)
	} else {
		log.Info("report written to %s", paths.Report)
	}

	if state.Requested() {
		return fmt.Errorf("run %s: %d of %d targets still pending", state.Cause(), summary.Pending, summary.Total)
	}
	return nil
}

// resolveTargets picks the work list: resume state, a curated category, or
// the manager's full group listing.
func resolveTargets(ctx context.Context, opts options, group string, provider *pkgmgr.WorkListProvider, store *statefile.Store, log *common.Logger) ([]string, []string, error) {
	if opts.resume {
		st, err := store.Load()
		if err != nil {
			return nil, nil, err
		}
		if st != nil && len(st.Remaining) > 0 {
			log.Info("resuming: %d targets remaining, %d already completed (saved %s)",
				len(st.Remaining), len(st.Completed), st.SavedAt)
			return st.Remaining, st.Completed, nil
		}
		log.Warn("nothing to resume; starting a fresh run")
	}

	if opts.category != catalog.All {
		pkgs, _ := catalog.Lookup(opts.category)
		log.Info("category %s: %d targets", opts.category, len(pkgs))
		return pkgs, nil, nil
	}

	log.Info("querying the %s catalog", group)
	targets, err := provider.Fetch(ctx, group)
	if err != nil {
		return nil, nil, err
	}
	log.Info("work list: %d targets", len(targets))
	return targets, nil, nil
}

// persistOutcome saves resume state when targets are still owed and clears
// it once the list is exhausted.
func persistOutcome(summary orchestrator.Summary, category string, prevCompleted []string, store *statefile.Store, log *common.Logger) {
	if summary.Pending == 0 {
		if err := store.Clear(); err != nil {
			log.Warn("clear resume state: %v", err)
		}
		return
	}

	st := statefile.State{Group: category, Completed: prevCompleted}
	for _, item := range summary.Items {
		if item.Outcome() == workitem.OutcomePending {
			st.Remaining = append(st.Remaining, item.Name())
		} else {
			st.Completed = append(st.Completed, item.Name())
		}
	}
	if err := store.Save(st); err != nil {
		log.Warn("save resume state: %v", err)
		return
	}
	log.Info("resume state saved; rerun with --resume to continue")
}
