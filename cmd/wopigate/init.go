package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cloudgateways/wopigate/pkg/config"
)

// runInit writes a commented sample configuration generated from the key
// registry.
func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	out := fs.String("out", "wopiserver.conf", "Output file ('-' for stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *out == "-" {
		_, err := os.Stdout.WriteString(config.SampleConfig())
		return err
	}

	if err := config.WriteSampleConfig(*out); err != nil {
		return err
	}
	fmt.Printf("Sample configuration written to %s\n", *out)
	return nil
}
