// Command orcadec decodes legacy schematic and library container files
// and prints what it understood of them.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/danmuck/orcadec/internal/config"
	"github.com/danmuck/orcadec/internal/container"
	"github.com/danmuck/orcadec/internal/library"
	"github.com/danmuck/orcadec/internal/logging"
)

var (
	flagConfig   string
	flagVersion  string
	flagKeep     bool
	flagFailFast bool
)

func main() {
	root := &cobra.Command{
		Use:           "orcadec",
		Short:         "Decoder for legacy schematic and library container files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to a TOML run configuration")

	decodeCmd := &cobra.Command{
		Use:   "decode <file.dsn|file.olb>",
		Short: "Decode a container file and report its contents",
		Args:  cobra.ExactArgs(1),
		RunE:  runDecode,
	}
	decodeCmd.Flags().StringVar(&flagVersion, "format-version", "", "pin the file format version (A, B or C) instead of predicting it")
	decodeCmd.Flags().BoolVar(&flagKeep, "keep-workspace", false, "keep the extraction workspace on disk")
	decodeCmd.Flags().BoolVar(&flagFailFast, "fail-fast", false, "abort at the first stream that fails to decode")

	treeCmd := &cobra.Command{
		Use:   "tree <file.dsn|file.olb>",
		Short: "Print the container's stream tree without decoding",
		Args:  cobra.ExactArgs(1),
		RunE:  runTree,
	}

	root.AddCommand(decodeCmd, treeCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (config.RunConfig, zerolog.Logger, error) {
	log := logging.ConfigureRuntime()
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.RunConfig{}, log, err
	}
	if cfg.LogLevel != "" {
		if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
			log = log.Level(lvl)
		}
	}
	return cfg, log, nil
}

func runDecode(_ *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if flagVersion != "" {
		cfg.Version = flagVersion
	}
	cfg.KeepWorkspace = cfg.KeepWorkspace || flagKeep
	cfg.StopOnFirstError = cfg.StopOnFirstError || flagFailFast
	if err := config.Validate(cfg); err != nil {
		return err
	}

	lib, err := library.NewParser(cfg, log).Parse(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s: format version %s\n", lib.Source, lib.Version)
	fmt.Printf("  directories: %d\n", len(lib.Directories))
	fmt.Printf("  packages:    %d\n", len(lib.Packages))
	fmt.Printf("  pages:       %d\n", len(lib.Pages))
	fmt.Printf("  hierarchies: %d\n", len(lib.Hierarchies))
	if lib.Symbols != nil {
		fmt.Printf("  strings:     %d\n", len(lib.Symbols.Strings))
	}
	if lib.Failed > 0 {
		for _, se := range lib.Errors {
			fmt.Printf("  FAILED %s at offset 0x%08x: %v\n", se.Stream, se.Offset, se.Err)
		}
		return fmt.Errorf("%d of %d streams failed to decode", lib.Failed, lib.Parsed)
	}
	return nil
}

func runTree(_ *cobra.Command, args []string) error {
	_, log, err := loadConfig()
	if err != nil {
		return err
	}

	ex, err := container.Extract(args[0], log)
	if err != nil {
		return err
	}
	defer ex.Close()

	fmt.Print(ex.Tree())
	return nil
}
