package main

import (
	"fmt"
	"os"

	"github.com/shirouto/dsprobe/loader"

	"github.com/spf13/cobra"
)

const targetsInfo = "path to the targets YAML file"

func main() {
	var rootCmd = &cobra.Command{
		Use:           "dsprobe",
		Short:         "Probe datasource connectivity with explicit connect timeouts",
		SilenceErrors: true,
	}

	var envFile, credentialsPath, targetsFile string
	var target targetFlags
	var precheck bool
	var ladder []int
	var httpPort string
	var interval, degradedAfter int
	var gzipResponses bool

	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to an env file to load before running")
	rootCmd.PersistentFlags().StringVar(&credentialsPath, "credentials", "", "path to the credentials YAML file")

	var probeCmd = &cobra.Command{
		Use:   "probe",
		Short: "Check that each target accepts connections and answers a trivial query",
		RunE: func(c *cobra.Command, args []string) error {
			loader.EnvFile = envFile
			loader.Environment()
			loader.Logger()

			targets, err := resolveTargets(targetsFile, credentialsPath, target)
			if err != nil {
				return err
			}
			return runProbe(targets, precheck)
		},
	}

	var sweepCmd = &cobra.Command{
		Use:   "sweep",
		Short: "Probe one target across a ladder of connect timeouts",
		RunE: func(c *cobra.Command, args []string) error {
			loader.EnvFile = envFile
			loader.Environment()
			loader.Logger()

			targets, err := resolveTargets(targetsFile, credentialsPath, target)
			if err != nil {
				return err
			}
			if len(targets) != 1 {
				return fmt.Errorf("sweep needs exactly one target, got %d", len(targets))
			}
			return runSweep(targets[0], ladder)
		},
	}

	var serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Probe targets on a schedule and expose health and metrics over HTTP",
		RunE: func(c *cobra.Command, args []string) error {
			loader.EnvFile = envFile

			targets, err := resolveTargets(targetsFile, credentialsPath, target)
			if err != nil {
				return err
			}
			return runServe(targets, httpPort, interval, degradedAfter, precheck, gzipResponses)
		},
	}

	var credentialsCmd = &cobra.Command{
		Use:   "credentials",
		Short: "Manage stored datasource credentials",
	}

	var credentialsSetCmd = &cobra.Command{
		Use:   "set <name> <value>",
		Short: "Store a credential under a name referenced as ${name} in targets files",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runCredentialsSet(credentialsPath, args[0], args[1])
		},
	}

	var credentialsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List stored credential names",
		RunE: func(c *cobra.Command, args []string) error {
			return runCredentialsList(credentialsPath)
		},
	}

	for _, cmd := range []*cobra.Command{probeCmd, sweepCmd, serveCmd} {
		cmd.Flags().StringVar(&targetsFile, "targets", "", targetsInfo)
		cmd.Flags().BoolVar(&precheck, "precheck", true, "check raw TCP reachability before opening the engine")
		target.register(cmd)
	}

	sweepCmd.Flags().IntSliceVar(&ladder, "ladder", nil, "connect timeouts in seconds to sweep, e.g. 1,2,5,10,30")

	serveCmd.Flags().StringVar(&httpPort, "port", "8080", "HTTP port for the monitoring endpoints")
	serveCmd.Flags().IntVar(&interval, "interval", 60, "seconds between probe rounds")
	serveCmd.Flags().IntVar(&degradedAfter, "degraded-after", 0, "seconds after which a valid probe reports degraded, 0 disables")
	serveCmd.Flags().BoolVar(&gzipResponses, "gzip", true, "compress HTTP responses")
	serveCmd.MarkFlagRequired("targets")

	credentialsCmd.AddCommand(credentialsSetCmd)
	credentialsCmd.AddCommand(credentialsListCmd)

	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(credentialsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
