package main

import (
	"flag"
	"fmt"

	"github.com/cloudgateways/wopigate/pkg/config"
	"github.com/cloudgateways/wopigate/pkg/secret"
	"github.com/cloudgateways/wopigate/pkg/token"
)

// runToken mints or verifies access tokens using the secrets the
// configuration points at. Useful for wiring up a frontend or debugging a
// rejected session.
func runToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	configPath := fs.String("config", config.DefaultConfigPath, "Site configuration file")
	defaultsPath := fs.String("defaults", "", "Defaults configuration file (optional)")
	ruid := fs.String("ruid", "", "Remote user id")
	rgid := fs.String("rgid", "", "Remote group id")
	filename := fs.String("filename", "", "Full path of the file the token grants access to")
	canEdit := fs.Bool("canedit", false, "Grant an editable session")
	mtime := fs.Int64("mtime", 0, "File modification time observed at mint time")
	iop := fs.Bool("iop", false, "Use the IOP secret instead of the WOPI secret")
	verify := fs.String("verify", "", "Verify the given token instead of minting one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadWithDefaults(*defaultsPath, *configPath)
	if err != nil {
		return err
	}

	secrets, err := secret.LoadPair(cfg.Security.WOPISecretFile, cfg.Security.IOPSecretFile)
	if err != nil {
		return err
	}
	signing := secrets.WOPI
	if *iop {
		signing = secrets.IOP
	}

	if *verify != "" {
		claims, err := token.Verify(signing.Bytes(), *verify)
		if err != nil {
			return err
		}
		fmt.Printf("valid token: user=%s:%s filename=%q canedit=%v mtime=%d expires=%s\n",
			claims.RUID, claims.RGID, claims.Filename, claims.CanEdit, claims.MTime,
			claims.ExpiresAt.Time)
		return nil
	}

	if *filename == "" {
		return fmt.Errorf("-filename is required to mint a token")
	}

	minter, err := token.NewMinter(signing.Bytes(), cfg.TokenTTL())
	if err != nil {
		return err
	}
	minted, err := minter.Mint(*ruid, *rgid, *filename, *canEdit, *mtime)
	if err != nil {
		return err
	}
	fmt.Println(minted)
	return nil
}
