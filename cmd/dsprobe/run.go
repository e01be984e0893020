package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shirouto/dsprobe/boot"
	"github.com/shirouto/dsprobe/config"
	"github.com/shirouto/dsprobe/credentials"
	"github.com/shirouto/dsprobe/frameworks"
	"github.com/shirouto/dsprobe/loader"
	"github.com/shirouto/dsprobe/monitoring"
	"github.com/shirouto/dsprobe/probe"

	"github.com/spf13/cobra"
)

// targetFlags describes a single target given on the command line instead
// of a targets file.
type targetFlags struct {
	Name     string
	Dialect  string
	Host     string
	Port     string
	Username string
	Password string
	Database string
	SSLMode  string
	Charset  string
	VHost    string
	Dsn      string
	Path     string
	Timeout  int
	Debug    bool
}

func (t *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.Name, "name", "", "target name, defaults to the dialect")
	cmd.Flags().StringVar(&t.Dialect, "dialect", "", "dialect: mysql, postgres, redshift, mssql, sqlite, redis, mongodb, amqp")
	cmd.Flags().StringVar(&t.Host, "host", "", "server host")
	cmd.Flags().StringVar(&t.Port, "port", "", "server port")
	cmd.Flags().StringVar(&t.Username, "username", "", "login user")
	cmd.Flags().StringVar(&t.Password, "password", "", "login password, may reference a stored credential as ${name}")
	cmd.Flags().StringVar(&t.Database, "database", "", "database name")
	cmd.Flags().StringVar(&t.SSLMode, "sslmode", "", "postgres and redshift sslmode")
	cmd.Flags().StringVar(&t.Charset, "charset", "", "mysql charset")
	cmd.Flags().StringVar(&t.VHost, "vhost", "", "amqp virtual host")
	cmd.Flags().StringVar(&t.Dsn, "dsn", "", "full connection string, for mongodb")
	cmd.Flags().StringVar(&t.Path, "path", "", "database file path, for sqlite")
	cmd.Flags().IntVar(&t.Timeout, "timeout", 0, "connect timeout in seconds, 0 uses the dialect default")
	cmd.Flags().BoolVar(&t.Debug, "debug", false, "log engine statements")
}

func (t *targetFlags) spec() config.TargetSpec {
	name := t.Name
	if name == "" {
		name = t.Dialect
	}
	return config.TargetSpec{
		Name:           name,
		Dialect:        t.Dialect,
		Host:           t.Host,
		Port:           t.Port,
		Username:       t.Username,
		Password:       t.Password,
		Database:       t.Database,
		SSLMode:        t.SSLMode,
		Charset:        t.Charset,
		VHost:          t.VHost,
		Dsn:            t.Dsn,
		Path:           t.Path,
		ConnectTimeout: t.Timeout,
		Debug:          t.Debug,
	}
}

// resolveTargets builds the target list from either the targets file or the
// single-target flags.
func resolveTargets(targetsFile, credentialsPath string, flags targetFlags) ([]probe.Target, error) {
	store, err := openStore(credentialsPath)
	if err != nil {
		return nil, err
	}

	if targetsFile != "" {
		if flags.Dialect != "" {
			return nil, fmt.Errorf("use either --targets or --dialect, not both")
		}
		return config.Load(targetsFile, store)
	}

	if flags.Dialect == "" {
		return nil, fmt.Errorf("either --targets or --dialect is required")
	}

	spec := flags.spec()
	if spec.Password, err = store.Substitute(spec.Password); err != nil {
		return nil, err
	}
	if spec.Dsn, err = store.Substitute(spec.Dsn); err != nil {
		return nil, err
	}

	cfg, err := config.Build(spec)
	if err != nil {
		return nil, err
	}
	return []probe.Target{{Name: spec.Name, Config: cfg}}, nil
}

func openStore(path string) (*credentials.Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".dsprobe", "credentials.yml")
	}
	store := credentials.NewStore(path)
	if err := store.Load(); err != nil {
		return nil, err
	}
	return store, nil
}

func runProbe(targets []probe.Target, precheck bool) error {
	runner := probe.NewRunner()
	runner.Precheck = precheck

	fmt.Println("Attempting to connect, this may take a moment...")

	results := runner.ProbeAll(context.Background(), targets)

	failed := 0
	for _, result := range results {
		if result.Valid {
			fmt.Printf("ok    %s (%s) in %s, attempts=%d\n",
				result.Target, result.Dialect, result.Duration.Round(time.Millisecond), result.Attempts)
			continue
		}
		failed++
		fmt.Printf("fail  %s (%s) after %s: %s\n",
			result.Target, result.Dialect, result.Duration.Round(time.Millisecond), result.Error)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d targets failed", failed, len(results))
	}
	return nil
}

func runSweep(target probe.Target, ladder []int) error {
	runner := probe.NewRunner()

	if len(ladder) == 0 {
		ladder = probe.DefaultLadder
	}

	results, err := runner.Sweep(context.Background(), target, ladder)
	if err != nil {
		return err
	}

	failed := 0
	for _, rung := range results {
		if rung.Result.Valid {
			fmt.Printf("timeout=%-3ds ok    in %s\n",
				rung.TimeoutSeconds, rung.Result.Duration.Round(time.Millisecond))
			continue
		}
		failed++
		fmt.Printf("timeout=%-3ds fail  after %s: %s\n",
			rung.TimeoutSeconds, rung.Result.Duration.Round(time.Millisecond), rung.Result.Error)
	}

	if failed == len(results) {
		return fmt.Errorf("target %s failed at every timeout", target.Name)
	}
	return nil
}

func runServe(targets []probe.Target, port string, intervalSeconds, degradedAfterSeconds int, precheck, gzipResponses bool) error {
	runner := probe.NewRunner()
	runner.Precheck = precheck

	scheduler := probe.NewScheduler(runner, time.Duration(intervalSeconds)*time.Second)
	scheduler.DegradedAfter = time.Duration(degradedAfterSeconds) * time.Second
	for _, target := range targets {
		scheduler.Add(target)
	}

	dashboard := monitoring.NewDashboard(runner, scheduler)
	frameworks.HttpConfig = &frameworks.HttpSettings{
		Port:    port,
		Gzip:    gzipResponses,
		Handler: monitoring.NewHandler(dashboard),
	}
	loader.InfoTargets = targets

	boot.OnInit()
	scheduler.Start()
	boot.AddStopper(scheduler.Stop)
	boot.OnMain()
	return nil
}

func runCredentialsSet(credentialsPath, name, value string) error {
	store, err := openStore(credentialsPath)
	if err != nil {
		return err
	}
	if err := store.Save(name, value); err != nil {
		return err
	}
	fmt.Printf("stored credential %q\n", name)
	return nil
}

func runCredentialsList(credentialsPath string) error {
	store, err := openStore(credentialsPath)
	if err != nil {
		return err
	}
	names := store.Names()
	if len(names) == 0 {
		fmt.Println("no stored credentials")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
