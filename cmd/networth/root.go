package main

import (
	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries state shared by the subcommands after flag parsing.
type app struct {
	logLevel string
	envFile  string

	cfg *config.AppConfig
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "networth",
		Short:        "Project household net worth and find a safe retirement age",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (overrides NETWORTH_LOG_LEVEL)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "load environment from this .env file")

	root.AddCommand(
		newInitCmd(a),
		newProjectCmd(a),
		newSWRAgeCmd(a),
		newSafeAgeCmd(a),
		newFormatsCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	cfg, err := config.LoadAppConfig(files...)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	logging.Configure(logging.Log, cfg, cmd.ErrOrStderr())
	a.log = logging.Log
	return nil
}

// engine builds a projection engine logging through the CLI logger. workers
// below one falls back to the configured worker count.
func (a *app) engine(workers int) *calculation.Engine {
	e := calculation.NewEngine()
	e.SetLogger(logging.NewEngineLogger(a.log))
	e.Debug = a.log.IsLevelEnabled(logrus.TraceLevel)
	if workers < 1 {
		workers = a.cfg.Workers
	}
	e.Workers = workers
	return e
}

// loadParams imports a settings document and resolves it.
func (a *app) loadParams(path string) (domain.Params, error) {
	ws := config.NewWorkspace(config.BlankSettings())
	if err := ws.ImportFile(path); err != nil {
		a.log.WithError(err).WithField("file", path).Error("settings import failed")
		return domain.Params{}, err
	}
	a.log.WithField("file", path).Debug("settings imported")
	return ws.Params(), nil
}
