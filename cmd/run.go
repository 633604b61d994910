package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	"github.com/lc3tools/lc3test/lc3"
)

var (
	RunCasesFlag = &cli.IntFlag{
		Name:  "cases",
		Usage: "Number of randomized test cases",
		Value: 100,
	}
	RunWorkersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Parallel worker bound for randomized cases (0 = derive from CPU count)",
		Value: 0,
	}
	RunBoundaryOnlyFlag = &cli.BoolFlag{
		Name:  "boundary-only",
		Usage: "Run only the named boundary suite, skipping randomized cases",
	}
	RunSimFlag = &cli.StringFlag{
		Name:  "sim",
		Usage: "Simulator binary to drive",
		Value: "lc3sim",
	}
	RunTimeoutFlag = &cli.DurationFlag{
		Name:  "run-timeout",
		Usage: "Per-case bound on waiting for the halt marker",
		Value: lc3.DefaultSimConfig().RunTimeout,
	}
	RunVerboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log session protocol traffic",
	}
	RunPProfCPUFlag = &cli.BoolFlag{
		Name:  "pprof.cpu",
		Usage: "Enable CPU profiling, profile written to the current directory",
	}
)

func Run(ctx *cli.Context) error {
	if ctx.Bool(RunPProfCPUFlag.Name) {
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	}

	target := ctx.Args().First()
	if target == "" {
		return fmt.Errorf("missing target object image argument")
	}
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("target image %q not readable: %w", target, err)
	}

	lvl := log.LevelInfo
	if ctx.Bool(RunVerboseFlag.Name) {
		lvl = log.LevelDebug
	}
	l := Logger(os.Stderr, lvl)

	cfg := lc3.DefaultSimConfig()
	cfg.Binary = ctx.String(RunSimFlag.Name)
	cfg.RunTimeout = ctx.Duration(RunTimeoutFlag.Name)
	cfg.Log = l

	// An unreachable simulator is fatal to the whole suite, so probe it
	// once before fanning out rather than failing every case.
	probe, err := lc3.NewSession(cfg)
	if err != nil {
		var startup *lc3.SessionStartupError
		if errors.As(err, &startup) {
			return fmt.Errorf("simulator unavailable: %w", err)
		}
		return err
	}
	_ = probe.Close()

	failed := false

	if !ctx.Bool(RunBoundaryOnlyFlag.Name) {
		random := lc3.NewRandomSuite(
			randomCaseRunner(cfg, target),
			ctx.Int(RunCasesFlag.Name),
			ctx.Int(RunWorkersFlag.Name),
		)
		random.Log = l
		random.RunAll()
		if !random.PrintReport().AllPassed() {
			failed = true
		}
	}

	boundary := boundarySuite(cfg, target)
	boundary.Log = l
	boundary.RunAll()
	if !boundary.PrintReport().AllPassed() {
		failed = true
	}

	if failed {
		return cli.Exit("test suite failed", 1)
	}
	return nil
}

var RunCommand = &cli.Command{
	Name:      "run",
	Usage:     "Run the randomized and boundary suites against a target object image",
	ArgsUsage: "<target.obj>",
	Action:    Run,
	Flags: []cli.Flag{
		RunCasesFlag,
		RunWorkersFlag,
		RunBoundaryOnlyFlag,
		RunSimFlag,
		RunTimeoutFlag,
		RunVerboseFlag,
		RunPProfCPUFlag,
	},
}
