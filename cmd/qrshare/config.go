// cmd/qrshare/config.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/qrcodeshare/qrshare/internal/config"
)

// cmdConfig writes a default config file or prints the effective one.
func cmdConfig(a *app, args []string) error {
	if len(args) == 0 {
		return errors.New("config: expected init or show")
	}

	switch args[0] {
	case "init":
		fs := flag.NewFlagSet("config init", flag.ExitOnError)
		force := fs.Bool("force", false, "overwrite an existing file")
		_ = fs.Parse(args[1:])

		if _, err := os.Stat(a.cfgPath); err == nil && !*force {
			return fmt.Errorf("%s already exists (use -force to overwrite)", a.cfgPath)
		}
		cfg := &config.Config{}
		config.Normalize(cfg)
		if err := config.Save(a.cfgPath, cfg); err != nil {
			return err
		}
		fmt.Println(a.cfgPath)
		return nil

	case "show":
		if err := a.load(); err != nil {
			return err
		}
		shown := *a.cfg
		if shown.Identity.Auth != "" {
			shown.Identity.Auth = "********"
		}
		b, err := yaml.Marshal(&shown)
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n%s", a.cfgPath, b)
		return nil

	default:
		return fmt.Errorf("config: unknown subcommand %q", args[0])
	}
}
