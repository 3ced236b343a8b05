package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/hsm"
	hsmhttp "github.com/aretw0/hsm/internal/adapters/http"
	"github.com/aretw0/hsm/internal/demo"
	"github.com/aretw0/hsm/internal/presentation/graph"
	"github.com/aretw0/hsm/internal/presentation/tui"
	"github.com/aretw0/hsm/pkg/domain"
	"github.com/aretw0/hsm/pkg/observability"
	"github.com/aretw0/hsm/pkg/runner"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Run a guard scenario",
	Long: `Runs a scenario file (YAML or JSON) or the built-in one and prints the active
stack after every tick. Flags override the values from the scenario.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScenario,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("ticks", 0, "Number of ticks to run (overrides the scenario)")
	runCmd.Flags().Duration("dt", 0, "Simulated time per tick (overrides the scenario)")
	runCmd.Flags().Duration("interval", 0, "Wall-clock pause between ticks")
	runCmd.Flags().String("verbosity", "", "Engine verbosity: none, basic, diagnostic (overrides the scenario)")
	runCmd.Flags().String("name", "", "Machine name (defaults to the agent name plus a random suffix)")
	runCmd.Flags().String("metrics-addr", "", "Serve /metrics, /healthz and /stack on this address while running")
	runCmd.Flags().Bool("mermaid", false, "Print a Mermaid diagram of the final stack")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
	runCmd.Flags().BoolP("quiet", "q", false, "Only print the summary")
	runCmd.Flags().Bool("banner", false, "Print the banner first")
	runCmd.Flags().BoolP("watch", "w", false, "Run again whenever the scenario file changes")
}

func loadScenario(args []string) (demo.Scenario, error) {
	if len(args) == 0 {
		return demo.DefaultScenario(), nil
	}
	return demo.LoadScenario(args[0])
}

// runSettings holds the flag values shared by every run of a command invocation.
type runSettings struct {
	name        string
	interval    time.Duration
	showMermaid bool
	quiet       bool
	colour      bool
	metrics     *observability.Metrics
	snap        *hsmhttp.Snapshot
}

func runScenario(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	out := cmd.OutOrStdout()

	sc, err := scenarioFromFlags(cmd, args)
	if err != nil {
		return err
	}

	set := runSettings{}
	set.name, _ = flags.GetString("name")
	if set.name == "" {
		set.name = fmt.Sprintf("%s-%s", sc.Params.Name, uuid.NewString()[:8])
	}
	set.interval, _ = flags.GetDuration("interval")
	set.showMermaid, _ = flags.GetBool("mermaid")
	set.quiet, _ = flags.GetBool("quiet")
	noColor, _ := flags.GetBool("no-color")
	set.colour = !noColor && isTerminal(out)
	addr, _ := flags.GetString("metrics-addr")
	watch, _ := flags.GetBool("watch")
	banner, _ := flags.GetBool("banner")

	if watch && len(args) == 0 {
		return errors.New("--watch needs a scenario file")
	}
	if banner {
		tui.PrintBanner(out)
	}

	registry := prometheus.NewRegistry()
	set.metrics, err = observability.NewMetrics(registry, set.name)
	if err != nil {
		return err
	}
	set.snap = hsmhttp.NewSnapshot(set.name)

	if addr != "" {
		srv := &http.Server{Addr: addr, Handler: hsmhttp.NewHandler(registry, set.snap)}
		go func() {
			logger.Info("serving introspection", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("introspection server failed", "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("introspection server did not shut down cleanly", "error", err)
			}
		}()
	}

	ctx, stop := runner.SignalContext(cmd.Context())
	defer stop()

	if !watch {
		return simulateOnce(ctx, out, sc, set)
	}
	return watchScenario(ctx, args[0], func(ctx context.Context) error {
		sc, err := scenarioFromFlags(cmd, args)
		if err != nil {
			return err
		}
		return simulateOnce(ctx, out, sc, set)
	})
}

// scenarioFromFlags loads the scenario and applies the overriding flags.
func scenarioFromFlags(cmd *cobra.Command, args []string) (demo.Scenario, error) {
	flags := cmd.Flags()
	sc, err := loadScenario(args)
	if err != nil {
		return demo.Scenario{}, err
	}
	if flags.Changed("ticks") {
		sc.Ticks, _ = flags.GetInt("ticks")
	}
	if flags.Changed("dt") {
		sc.Step, _ = flags.GetDuration("dt")
	}
	if flags.Changed("verbosity") {
		sc.Verbosity, _ = flags.GetString("verbosity")
	}
	if err := sc.Validate(); err != nil {
		return demo.Scenario{}, err
	}
	return sc, nil
}

func simulateOnce(ctx context.Context, out io.Writer, sc demo.Scenario, set runSettings) error {
	visited := make(map[domain.StateID]bool)
	var order []domain.StateID
	var known []domain.StateID

	logger.Info("starting scenario", "scenario", sc.Name, "machine", set.name, "ticks", sc.Ticks, "step", sc.Step)
	res, err := demo.Simulate(ctx, sc,
		demo.WithMachineOptions(
			hsm.WithName(set.name),
			hsm.WithLogger(logger),
			hsm.WithHooks(set.metrics.Hooks()),
			hsm.WithHooks(observability.LogHooks(logger)),
		),
		demo.WithRunnerOptions(
			runner.WithInterval(set.interval),
			runner.WithLogger(logger),
		),
		demo.WithMachineHook(func(m *hsm.Machine[*demo.Agent]) {
			known = m.Registry().IDs()
		}),
		demo.WithFrameHook(func(f demo.Frame) {
			set.snap.Update(f.Tick, f.Stack, f.Status)
			for _, id := range f.Stack {
				if !visited[id] {
					visited[id] = true
					order = append(order, id)
				}
			}
			if !set.quiet {
				fmt.Fprintf(out, "%5d  %-28s %s\n", f.Tick, tui.FormatStack(f.Stack, set.colour), f.Status)
			}
		}),
	)
	if errors.Is(err, context.Canceled) {
		logger.Info("scenario interrupted")
	} else if err != nil {
		return err
	}

	last := res.Last()
	fmt.Fprintf(out, "\n%s: %d ticks, %d pursuits, %d triggered events, final stack %s, stamina %.1f\n",
		sc.Name, len(res.Frames), last.Pursuits, len(res.Fired), tui.FormatStack(last.Stack, set.colour), last.Stamina)

	if set.showMermaid {
		fmt.Fprintln(out)
		fmt.Fprint(out, graph.GenerateMermaid(last.Stack, &graph.Overlay{Known: known, Visited: order}))
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
