// cmd/qrshare/follow.go
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/qrcodeshare/qrshare/internal/config"
)

// cmdFollow manages the named follow list and the current follow target.
func cmdFollow(a *app, args []string) error {
	if len(args) == 0 {
		return errors.New("follow: expected list, add, remove or use")
	}
	if err := a.load(); err != nil {
		return err
	}
	cfg := a.cfg

	switch args[0] {
	case "list":
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "\tID\tNAME")
		for _, e := range cfg.FollowList() {
			mark := ""
			if e.ID == cfg.Download.FollowUserID {
				mark = "*"
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\n", mark, e.ID, e.Name)
		}
		if id := cfg.Download.FollowUserID; id > 0 {
			if _, named := cfg.Download.FollowUsers[id]; !named {
				fmt.Fprintf(tw, "*\t%d\t%s\n", id, cfg.FollowName(id))
			}
		}
		return tw.Flush()

	case "add":
		if len(args) < 3 {
			return errors.New("follow add: expected <id> <name>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := cfg.AddFollow(id, strings.Join(args[2:], " ")); err != nil {
			return err
		}

	case "remove":
		if len(args) != 2 {
			return errors.New("follow remove: expected <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if !cfg.RemoveFollow(id) {
			return fmt.Errorf("follow remove: %d is not in the follow list", id)
		}

	case "use":
		if len(args) != 2 {
			return errors.New("follow use: expected <id>")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := cfg.UseFollow(id); err != nil {
			return err
		}

	default:
		return fmt.Errorf("follow: unknown subcommand %q", args[0])
	}

	return config.Save(a.cfgPath, cfg)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return id, nil
}
