package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/syssam/avrocompat"
	"github.com/syssam/avrocompat/adapter"
)

// Flag names.
const (
	configFlag  = "config"
	releaseFlag = "release"
	targetFlag  = "target"
	outFlag     = "out"
	javaFlag    = "java"
	jarFlag     = "jar"
	workersFlag = "workers"
)

// options holds the flag values shared by all subcommands.
type options struct {
	configPath string
	release    string
	target     string
	out        string
	java       string
	jar        string
	workers    int
	log        *logFlags

	logger *slog.Logger
	file   *fileConfig
	// extra is appended to the adapter options; tests use it to replace
	// the avro-tools binding.
	extra []adapter.Option
}

// settings is the merged result of the configuration file and the flags.
type settings struct {
	release avrocompat.Version
	target  avrocompat.Version
	out     string
	workers int
	adapter []adapter.Option
}

func newRootCommand(extra ...adapter.Option) *cobra.Command {
	o := &options{extra: extra}
	cmd := &cobra.Command{
		Use:   "avrocompat [sub-command]",
		Short: "Generate Java classes from Avro schemas that run across Avro releases",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			o.logger = o.log.logger(cmd.ErrOrStderr())
			if o.configPath == "" {
				return nil
			}
			cfg, err := loadConfig(o.configPath)
			if err != nil {
				return err
			}
			o.file = cfg
			return nil
		},
		SilenceUsage: true,
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&o.configPath, configFlag, "", "YAML configuration file")
	fs.StringVar(&o.release, releaseFlag, "1.7", "avro release whose code generator is used")
	fs.StringVar(&o.target, targetFlag, "", "oldest avro release the generated code must run on; empty keeps the generator output")
	fs.StringVarP(&o.out, outFlag, "o", "gen-src", "output directory")
	fs.StringVar(&o.java, javaFlag, "", "java executable (default: java on PATH)")
	fs.StringVar(&o.jar, jarFlag, "", "avro-tools jar of the release")
	fs.IntVar(&o.workers, workersFlag, runtime.GOMAXPROCS(0), "number of files patched and written in parallel")
	o.log = registerLogFlags(fs)

	cmd.AddCommand(newCompileCommand(o))
	cmd.AddCommand(newWatchCommand(o))
	return cmd
}

// resolve merges the configuration file with the flags. Flags set on the
// command line win.
func (o *options) resolve(cmd *cobra.Command) (*settings, error) {
	file := o.file
	if file == nil {
		file = &fileConfig{}
	}
	pick := func(flag, flagValue, fileValue string) string {
		if fileValue != "" && !cmd.Flags().Changed(flag) {
			return fileValue
		}
		return flagValue
	}

	release, err := avrocompat.ParseVersion(pick(releaseFlag, o.release, file.Release))
	if err != nil {
		return nil, err
	}
	s := &settings{
		release: release,
		out:     pick(outFlag, o.out, file.Out),
		workers: o.workers,
	}
	if target := pick(targetFlag, o.target, file.Target); target != "" {
		if s.target, err = avrocompat.ParseVersion(target); err != nil {
			return nil, err
		}
	}
	if file.Workers > 0 && !cmd.Flags().Changed(workersFlag) {
		s.workers = file.Workers
	}
	if s.workers < 1 {
		return nil, fmt.Errorf("--%s must be at least 1", workersFlag)
	}

	rc := adapter.Config{Java: file.Java}
	for key, c := range file.Releases {
		v, err := avrocompat.ParseVersion(key)
		if err != nil {
			return nil, fmt.Errorf("config releases: %w", err)
		}
		if v.Equal(release) {
			if err := adapter.WithConfig(c)(&rc); err != nil {
				return nil, err
			}
		}
	}
	rc.Java = pick(javaFlag, o.java, rc.Java)
	rc.CompilerJar = pick(jarFlag, o.jar, rc.CompilerJar)
	if rc.Workers == 0 {
		rc.Workers = s.workers
	}
	rc.Logger = o.logger

	s.adapter = append([]adapter.Option{adapter.WithConfig(rc)}, o.extra...)
	return s, nil
}
