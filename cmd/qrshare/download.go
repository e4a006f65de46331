// cmd/qrshare/download.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/qrcodeshare/qrshare/internal/connstatus"
	"github.com/qrcodeshare/qrshare/internal/display"
	"github.com/qrcodeshare/qrshare/internal/poller"
)

// cmdDownload follows one user's code until interrupted.
func cmdDownload(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	follow := fs.Int("follow", 0, "user id to follow (default: download.follow_user_id)")
	_ = fs.Parse(args)

	if err := a.load(); err != nil {
		return err
	}
	client, err := a.requireClient()
	if err != nil {
		return err
	}

	p, err := poller.Build(a.cfg, *follow, client, a.status)
	if err != nil {
		return fmt.Errorf("no follow target: use -follow or `qrshare follow use <id>`: %w", err)
	}
	followID := *follow
	if followID <= 0 {
		followID = a.cfg.Download.FollowUserID
	}

	stopExport, err := a.startStatusExport(ctx)
	if err != nil {
		return err
	}
	defer stopExport()

	con := display.NewConsole(os.Stdout)

	states, unsubscribe := a.status.Subscribe()
	defer unsubscribe()
	go showStates(ctx, con, states, a.cfg.Identity.ID)

	a.startMonitoring(ctx)
	defer a.status.StopPeriodicCheck()

	con.ShowStatus(fmt.Sprintf("following %d (%s)", followID, a.cfg.FollowName(followID)))
	con.ShowStatus(poller.MsgCheckingUser)
	if err := p.Preflight(ctx); err != nil {
		con.ShowStatus(p.Message())
		if errors.Is(err, poller.ErrTargetNotFound) {
			return fmt.Errorf("user %d: %w", followID, err)
		}
		return err
	}

	results := make(chan poller.PollResult, 1)
	runErr := make(chan error, 1)
	go func() { runErr <- p.Run(ctx, results) }()

	var last poller.Outcome
	for res := range results {
		switch res.Outcome {
		case poller.OutcomeUpdated:
			con.ShowCode(*res.Content, res.UpdateAt)
		case poller.OutcomeFailed:
			if res.Outcome != last || a.verbose {
				con.ShowStatus(res.Message)
			}
		case poller.OutcomeUnchanged:
			if a.verbose {
				con.ShowStatus(res.Message)
			}
		}
		last = res.Outcome
	}

	if err := <-runErr; err != nil {
		return err
	}
	log.Printf("download stopped (follow=%d)", followID)
	return nil
}

func showStates(ctx context.Context, con *display.Console, states <-chan connstatus.State, id string) {
	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-states:
			if !ok {
				return
			}
			con.ShowState(st, id)
		}
	}
}
