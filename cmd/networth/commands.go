package main

import (
	"fmt"
	"strings"

	"github.com/rpgo/networth-planner/internal/calculation"
	"github.com/rpgo/networth-planner/internal/config"
	"github.com/rpgo/networth-planner/internal/output"
	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	var out string
	var blank bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example settings document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := config.ExampleSettings()
			if blank {
				s = config.BlankSettings()
			}
			if err := config.Save(out, s); err != nil {
				return err
			}
			a.log.WithField("file", out).Info("settings written")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "networth.yaml", "destination file (.yaml or .json)")
	cmd.Flags().BoolVar(&blank, "blank", false, "write a cleared document instead of the example household")
	return cmd
}

func newProjectCmd(a *app) *cobra.Command {
	var (
		configPath    string
		format        string
		viewName      string
		outDir        string
		retirementAge int
		workers       int
	)
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Run the projection and write a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := output.ParseView(viewName)
			if err != nil {
				return err
			}
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("%w: %q. Try one of: %s", output.ErrUnsupportedFormat, format,
					strings.Join(output.AvailableFormatterNames(), ", "))
			}
			p, err := a.loadParams(configPath)
			if err != nil {
				return err
			}
			if retirementAge > 0 {
				p.Primary.RetirementAge = retirementAge
			}

			proj := calculation.NewPlanner(a.engine(workers)).Plan(p)

			if outDir == "-" {
				data, err := f.Format(proj, view)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if outDir == "" {
				outDir = a.cfg.OutputDir
			}
			filename, err := output.WriteFormatted(outDir, f, proj, view, output.Extension(f.Name()))
			if err != nil {
				return err
			}
			a.log.WithField("file", filename).WithField("run_id", proj.RunID).Info("report written")
			fmt.Fprintln(cmd.OutOrStdout(), filename)
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "settings document (.yaml or .json)")
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "report format, see 'networth formats'")
	cmd.Flags().StringVar(&viewName, "view", "monthly", "record view: monthly or yearly")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory, or - for stdout (default NETWORTH_OUTPUT_DIR)")
	cmd.Flags().IntVar(&retirementAge, "retirement-age", 0, "override the primary retirement age")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel safe-age candidates (default NETWORTH_WORKERS)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newSWRAgeCmd(a *app) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "swr-age",
		Short: "Print the age at which liquid assets reach the safe-withdrawal target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.loadParams(configPath)
			if err != nil {
				return err
			}
			age := a.engine(1).SWRAge(&p)
			fmt.Fprintln(cmd.OutOrStdout(), age.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "settings document (.yaml or .json)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newSafeAgeCmd(a *app) *cobra.Command {
	var configPath string
	var workers int
	cmd := &cobra.Command{
		Use:   "safe-age",
		Short: "Print the earliest retirement age that never runs out of money",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.loadParams(configPath)
			if err != nil {
				return err
			}
			age := a.engine(workers).SafeRetirementAge(&p)
			fmt.Fprintln(cmd.OutOrStdout(), age.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "settings document (.yaml or .json)")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel candidates per batch (default NETWORTH_WORKERS)")
	_ = cmd.MarkFlagRequired("config")
	return cmd
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List report formats and aliases",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "formats: %s\n", strings.Join(output.AvailableFormatterNames(), ", "))
			fmt.Fprintf(w, "aliases: %s\n", strings.Join(output.AvailableFormatAliases(), ", "))
		},
	}
}
