package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/plot"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/report"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/runner"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/suite"
	"github.com/DjordjeVuckovic/bop-eval/internal/ingest/reader"
	"github.com/DjordjeVuckovic/bop-eval/internal/router"
	"github.com/DjordjeVuckovic/bop-eval/internal/server"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage"
	"github.com/DjordjeVuckovic/bop-eval/internal/storage/factory"
	"github.com/DjordjeVuckovic/bop-eval/pkg/config/env"
	"github.com/DjordjeVuckovic/bop-eval/pkg/schema"
	"github.com/urfave/cli/v3"
)

var (
	version = "v0.0.1-default"

	schemaIDPrefix = "https://github.com/DjordjeVuckovic/bop-eval/schemas"

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs",
	}
	envFileFlag = &cli.StringFlag{
		Name:  "env-file",
		Usage: "Path to a .env file (ENV_PATH overrides it)",
		Value: ".env",
	}
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the evaluation YAML (defaults to the BOP19 metric set)",
	}
	resultFlag = &cli.StringSliceFlag{
		Name:    "result",
		Aliases: []string{"r"},
		Usage:   "Results file to evaluate, repeatable (overrides result_filenames)",
	}
	evalPathFlag = &cli.StringFlag{
		Name:  "eval-path",
		Usage: "Directory holding the per-signature score records (" + envEvalPath + ")",
	}
	resultsPathFlag = &cli.StringFlag{
		Name:  "results-path",
		Usage: "Directory holding the results files (" + envResultsPath + ")",
	}
	visibGtMinFlag = &cli.FloatFlag{
		Name:  "visib-gt-min",
		Usage: "Minimum visible fraction of a GT pose (" + envVisibGtMin + ")",
	}
	plotDirFlag = &cli.StringFlag{
		Name:  "plot-dir",
		Usage: "Enables recall-curve plots and writes them to this directory",
	}
	reportFlag = &cli.StringFlag{
		Name:  "report",
		Usage: "Writes the batch report as JSON to this path",
	}

	evalFlags = []cli.Flag{configFlag, resultFlag, evalPathFlag, resultsPathFlag, visibGtMinFlag, reportFlag}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:    "bop_eval",
		Usage:   "Aggregates BOP19 pose-error scores into final benchmark scores",
		Version: version,
		Flags:   []cli.Flag{debugFlag, envFileFlag},
		Before:  setup,
		Commands: []*cli.Command{
			{
				Name:   "score",
				Usage:  "Computes and persists the final scores of results files",
				Flags:  evalFlags,
				Action: scoreAction,
			},
			{
				Name:   "show",
				Usage:  "Reports the full BOP score and recall curves of results files",
				Flags:  append(evalFlags, plotDirFlag),
				Action: showAction,
			},
			{
				Name:   "serve",
				Usage:  "Serves persisted final scores over HTTP",
				Flags:  []cli.Flag{evalPathFlag},
				Action: serveAction,
			},
			{
				Name:   "schema",
				Usage:  "Prints the JSON schema of the evaluation config file",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		slog.Error("bop_eval failed", "error", err)
		os.Exit(1)
	}
}

func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := slog.LevelInfo
	if cmd.Bool(debugFlag.Name) {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	return ctx, env.LoadDotEnv(cmd.String(envFileFlag.Name), cmd.IsSet(envFileFlag.Name))
}

func scoreAction(ctx context.Context, cmd *cli.Command) error {
	rs, err := loadRunSettings(cmd)
	if err != nil {
		return err
	}

	storers := []storage.Storer{storage.NewJsonFileStorer(rs.Config.EvalPath)}
	if os.Getenv("STORAGE_TYPE") != "" {
		sc, err := factory.LoadEnv(rs.Config.EvalPath)
		if err != nil {
			return err
		}
		if sc.Type != storage.File {
			backend, err := factory.NewBackend(ctx, sc)
			if err != nil {
				return err
			}
			defer backend.Close()
			storers = append(storers, backend)
		}
	}

	r := runner.New(rs.Config,
		reader.NewFileLoader(rs.Config.ResultsPath),
		storage.NewFileScoreLoader(rs.Config.EvalPath),
		runner.WithStorers(storers...),
	)
	return finish(runner.ModeScore, r.RunAll(ctx, runner.ModeScore, rs.Filenames), rs.ReportOut)
}

func showAction(ctx context.Context, cmd *cli.Command) error {
	rs, err := loadRunSettings(cmd)
	if err != nil {
		return err
	}

	var opts []runner.Option
	if rs.Plot.Enabled {
		opts = append(opts, runner.WithPlotter(plot.NewCurvePlotter(rs.Plot.OutputDir)))
	}

	r := runner.New(rs.Config,
		reader.NewFileLoader(rs.Config.ResultsPath),
		storage.NewFileScoreLoader(rs.Config.EvalPath),
		opts...,
	)
	return finish(runner.ModeShow, r.RunAll(ctx, runner.ModeShow, rs.Filenames), rs.ReportOut)
}

func finish(mode runner.Mode, outcomes []runner.Outcome, reportOut string) error {
	rep := report.FromOutcomes(mode, outcomes)
	report.WriteTable(rep, os.Stdout)

	if reportOut != "" {
		if err := report.WriteJSON(rep, reportOut); err != nil {
			return err
		}
		slog.Info("report written", "path", reportOut)
	}

	if failed := runner.Failures(outcomes); failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d evaluations failed", failed, len(outcomes)), 1)
	}
	return nil
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	sCfg, err := server.LoadConfig()
	if err != nil {
		return fmt.Errorf("load server config: %w", err)
	}

	evalPath := pick(cmd.String(evalPathFlag.Name), env.String(envEvalPath, ""))
	stCfg, err := factory.LoadEnv(evalPath)
	if err != nil {
		return err
	}
	backend, err := factory.NewBackend(ctx, stCfg)
	if err != nil {
		return err
	}
	defer backend.Close()

	s := server.New(sCfg, backend.Health)
	router.NewScoresRouter(s.Echo, backend).Bind()

	return s.Start(ctx)
}

func schemaAction(_ context.Context, _ *cli.Command) error {
	out, err := schema.NewGenerator(schemaIDPrefix).GenerateJSONSchema(suite.EvalConfig{})
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	fmt.Println(out)
	return nil
}
