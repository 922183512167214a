package main

import (
	"fmt"

	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/runner"
	"github.com/DjordjeVuckovic/bop-eval/internal/benchmark/suite"
	"github.com/DjordjeVuckovic/bop-eval/pkg/config/env"
	"github.com/urfave/cli/v3"
)

const (
	envEvalPath    = "BOP_EVAL_PATH"
	envResultsPath = "BOP_RESULTS_PATH"
	envVisibGtMin  = "BOP_VISIB_GT_MIN"
)

type runSettings struct {
	Config    runner.Config
	Filenames []string
	Plot      suite.PlotConfig
	ReportOut string
}

// loadRunSettings resolves every setting with the precedence
// flag > environment > config file > built-in default.
func loadRunSettings(cmd *cli.Command) (*runSettings, error) {
	ec := suite.Default()
	if path := cmd.String(configFlag.Name); path != "" {
		loaded, err := suite.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		ec = loaded
	}

	ec.EvalPath = pick(cmd.String(evalPathFlag.Name), env.String(envEvalPath, ec.EvalPath))
	ec.ResultsPath = pick(cmd.String(resultsPathFlag.Name), env.String(envResultsPath, ec.ResultsPath))

	visib, err := env.Float(envVisibGtMin, ec.VisibGtMin)
	if err != nil {
		return nil, err
	}
	if cmd.IsSet(visibGtMinFlag.Name) {
		visib = cmd.Float(visibGtMinFlag.Name)
	}
	ec.VisibGtMin = visib

	if results := cmd.StringSlice(resultFlag.Name); len(results) > 0 {
		ec.ResultFilenames = results
	}
	if dir := cmd.String(plotDirFlag.Name); dir != "" {
		ec.Plot = suite.PlotConfig{Enabled: true, OutputDir: dir}
	}

	if err := suite.Validate(ec); err != nil {
		return nil, err
	}
	if ec.EvalPath == "" {
		return nil, fmt.Errorf("eval path is not set: use --%s or %s", evalPathFlag.Name, envEvalPath)
	}
	if len(ec.ResultFilenames) == 0 {
		return nil, fmt.Errorf("no results files: use --%s or result_filenames", resultFlag.Name)
	}

	rc, err := runner.ConfigFromSuite(ec)
	if err != nil {
		return nil, err
	}

	plot := ec.Plot
	if plot.Enabled && plot.OutputDir == "" {
		plot.OutputDir = ec.EvalPath
	}

	return &runSettings{
		Config:    rc,
		Filenames: ec.ResultFilenames,
		Plot:      plot,
		ReportOut: cmd.String(reportFlag.Name),
	}, nil
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
