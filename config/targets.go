// Package config loads probe target definitions from a YAML file. Secrets
// are referenced as ${name} and resolved through the credentials store, so
// the targets file itself can be committed.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shirouto/dsprobe/credentials"
	"github.com/shirouto/dsprobe/probe"
	"github.com/shirouto/dsprobe/types"

	"gopkg.in/yaml.v3"
)

// TargetSpec is one target entry in the targets file.
type TargetSpec struct {
	Name           string `yaml:"name"`
	Dialect        string `yaml:"dialect"`
	Host           string `yaml:"host,omitempty"`
	Port           string `yaml:"port,omitempty"`
	Username       string `yaml:"username,omitempty"`
	Password       string `yaml:"password,omitempty"`
	Database       string `yaml:"database,omitempty"`
	SSLMode        string `yaml:"sslmode,omitempty"`
	Charset        string `yaml:"charset,omitempty"`
	VHost          string `yaml:"vhost,omitempty"`
	Dsn            string `yaml:"dsn,omitempty"`
	Path           string `yaml:"path,omitempty"`
	ConnectTimeout int    `yaml:"connect_timeout,omitempty"`
	Debug          bool   `yaml:"debug,omitempty"`
}

// File is the top-level targets file structure.
type File struct {
	Targets []TargetSpec `yaml:"targets"`
}

// Load reads the targets file and resolves credential references.
// A nil store skips substitution.
func Load(path string, store *credentials.Store) ([]probe.Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	targets := make([]probe.Target, 0, len(file.Targets))
	for i, spec := range file.Targets {
		if spec.Name == "" {
			return nil, fmt.Errorf("config: target %d has no name", i)
		}

		if store != nil {
			if spec.Password, err = store.Substitute(spec.Password); err != nil {
				return nil, fmt.Errorf("config: target %s: %w", spec.Name, err)
			}
			if spec.Dsn, err = store.Substitute(spec.Dsn); err != nil {
				return nil, fmt.Errorf("config: target %s: %w", spec.Name, err)
			}
		}

		cfg, err := Build(spec)
		if err != nil {
			return nil, err
		}

		targets = append(targets, probe.Target{Name: spec.Name, Config: cfg})
	}
	return targets, nil
}

// Build turns a target spec into its dialect configuration.
func Build(spec TargetSpec) (types.IEngineConfig, error) {
	switch types.Dialect(spec.Dialect) {
	case types.DialectMySQL:
		return &types.MySQL{
			Host:           spec.Host,
			Port:           spec.Port,
			Username:       spec.Username,
			Password:       spec.Password,
			Database:       spec.Database,
			Charset:        spec.Charset,
			ConnectTimeout: spec.ConnectTimeout,
			Debug:          spec.Debug,
		}, nil
	case types.DialectPostgres:
		return &types.Postgres{
			Host:           spec.Host,
			Port:           spec.Port,
			Username:       spec.Username,
			Password:       spec.Password,
			Database:       spec.Database,
			SSLMode:        spec.SSLMode,
			ConnectTimeout: spec.ConnectTimeout,
			Debug:          spec.Debug,
		}, nil
	case types.DialectRedshift:
		return &types.Redshift{
			Host:           spec.Host,
			Port:           spec.Port,
			Username:       spec.Username,
			Password:       spec.Password,
			Database:       spec.Database,
			SSLMode:        spec.SSLMode,
			ConnectTimeout: spec.ConnectTimeout,
			Debug:          spec.Debug,
		}, nil
	case types.DialectMSSQL:
		return &types.MSSQL{
			Host:           spec.Host,
			Port:           spec.Port,
			Username:       spec.Username,
			Password:       spec.Password,
			Database:       spec.Database,
			ConnectTimeout: spec.ConnectTimeout,
			Debug:          spec.Debug,
		}, nil
	case types.DialectSqLite:
		return &types.SqLite{
			Name:   spec.Name,
			DBPath: spec.Path,
			Debug:  spec.Debug,
		}, nil
	case types.DialectRedis:
		database := 0
		if spec.Database != "" {
			n, err := strconv.Atoi(spec.Database)
			if err != nil {
				return nil, fmt.Errorf("config: target %s: redis database must be a number: %w", spec.Name, err)
			}
			database = n
		}
		return &types.Redis{
			Host:           spec.Host,
			Port:           spec.Port,
			Username:       spec.Username,
			Password:       spec.Password,
			Database:       database,
			ConnectTimeout: spec.ConnectTimeout,
		}, nil
	case types.DialectMongoDB:
		return &types.MongoDB{
			Dsn:            spec.Dsn,
			Database:       spec.Database,
			ConnectTimeout: spec.ConnectTimeout,
		}, nil
	case types.DialectAMQP:
		return &types.AMQP{
			Host:           spec.Host,
			Port:           spec.Port,
			Username:       spec.Username,
			Password:       spec.Password,
			VHost:          spec.VHost,
			ConnectTimeout: spec.ConnectTimeout,
		}, nil
	default:
		return nil, fmt.Errorf("config: target %s: unsupported dialect %q", spec.Name, spec.Dialect)
	}
}
