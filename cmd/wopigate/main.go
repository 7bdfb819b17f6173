// Command wopigate is the operator tool around the WOPI bridge
// configuration: it validates and inspects configuration files, generates
// samples, mints access tokens from the configured secrets and watches a
// deployment for runtime changes.
package main

import (
	"fmt"
	"os"
)

func usage() {
	fmt.Fprintf(os.Stderr, `wopigate - WOPI bridge configuration toolkit

Usage:
  wopigate <command> [flags]

Commands:
  validate   Load and validate a configuration file
  show       Print the effective configuration (INI or YAML)
  init       Write a commented sample configuration file
  token      Mint or verify an access token with the configured secrets
  watch      Watch a configuration for runtime changes

Run 'wopigate <command> -h' for command flags.
`)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "show":
		err = runShow(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "token":
		err = runToken(os.Args[2:])
	case "watch":
		err = runWatch(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "wopigate: unknown command %q\n\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "wopigate %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}
