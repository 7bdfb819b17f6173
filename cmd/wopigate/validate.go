package main

import (
	"flag"
	"fmt"

	"github.com/cloudgateways/wopigate/pkg/config"
)

// runValidate loads and validates a configuration, reporting keys the
// registry does not document. With -check-files it also verifies the
// referenced secret files and TLS material.
func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultConfigPath, "Site configuration file")
	defaultsPath := fs.String("defaults", "", "Defaults configuration file (optional)")
	checkFiles := fs.Bool("check-files", false, "Also check that referenced secret files and TLS material exist")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadWithDefaults(*defaultsPath, *configPath)
	if err != nil {
		return err
	}

	for _, key := range config.UnknownKeys(cfg.Raw) {
		fmt.Printf("warning: unknown configuration key %q\n", key)
	}

	if *checkFiles {
		if err := config.CheckFiles(cfg); err != nil {
			return err
		}
	}

	fmt.Printf("%s: OK (storagetype=%s, port=%d, loglevel=%s)\n",
		*configPath, cfg.General.StorageType, cfg.General.Port, cfg.General.LogLevel)
	return nil
}
