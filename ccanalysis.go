package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/M-Ravali/PA3-Assignment/config"
	"github.com/M-Ravali/PA3-Assignment/pipeline"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config with the scenarios to compare",
	}
	pathFlag = &cli.StringFlag{
		Name:  "path",
		Usage: "data path holding the scenario result directories",
	}
	outFlag = &cli.StringFlag{
		Name:  "out",
		Usage: "output directory for charts and CSV exports",
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "chart format (png, svg, pdf, ...)",
	}
	workerFlag = &cli.IntFlag{
		Name:  "worker",
		Usage: "number of workers",
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "debug logging",
	}
)

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if ctx.IsSet(pathFlag.Name) {
		cfg.DataPath = ctx.String(pathFlag.Name)
	}
	if ctx.IsSet(outFlag.Name) {
		cfg.OutputDir = ctx.String(outFlag.Name)
	}
	if ctx.IsSet(formatFlag.Name) {
		cfg.Format = ctx.String(formatFlag.Name)
	}
	if ctx.IsSet(workerFlag.Name) {
		cfg.Workers = ctx.Int(workerFlag.Name)
	}
	return cfg, nil
}

func analyze(ctx *cli.Context) error {
	if ctx.Bool(verboseFlag.Name) {
		log.SetLevel(log.DebugLevel)
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"path": cfg.DataPath, "out": cfg.OutputDir, "workers": cfg.Workers}).
		Debug("Starting analysis")
	_, err = pipeline.Run(cfg, os.Stdout)
	return err
}

func main() {
	app := &cli.App{
		Name:   "ccanalysis",
		Usage:  "compare congestion control results across network conditions",
		Flags:  []cli.Flag{configFlag, pathFlag, outFlag, formatFlag, workerFlag, verboseFlag},
		Action: analyze,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
