package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cloudgateways/wopigate/pkg/config"
)

// runShow prints the effective configuration after defaults, file merging
// and environment overrides.
func runShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultConfigPath, "Site configuration file")
	defaultsPath := fs.String("defaults", "", "Defaults configuration file (optional)")
	format := fs.String("format", "ini", "Output format: ini or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadWithDefaults(*defaultsPath, *configPath)
	if err != nil {
		return err
	}

	var out []byte
	switch *format {
	case "ini":
		out, err = config.EncodeINI(cfg)
	case "yaml":
		out, err = config.EncodeYAML(cfg)
	default:
		return fmt.Errorf("unknown format %q (expected ini or yaml)", *format)
	}
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(out)
	return err
}
