// cmd/qrshare/status.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/qrcodeshare/qrshare/internal/connstatus"
	"github.com/qrcodeshare/qrshare/internal/display"
)

// cmdStatus prints the connection badge once, or every transition with -watch.
func cmdStatus(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	watch := fs.Bool("watch", false, "keep checking and print every state change")
	_ = fs.Parse(args)

	if err := a.load(); err != nil {
		return err
	}
	con := display.NewConsole(os.Stdout)

	if !*watch {
		st := connstatus.Offline
		if a.client != nil {
			st = a.status.PerformCheck(ctx)
		}
		con.ShowState(st, a.cfg.Identity.ID)
		if st != connstatus.Online {
			return errOffline
		}
		return nil
	}

	stopExport, err := a.startStatusExport(ctx)
	if err != nil {
		return err
	}
	defer stopExport()

	states, unsubscribe := a.status.Subscribe()
	defer unsubscribe()

	a.startMonitoring(ctx)
	defer a.status.StopPeriodicCheck()

	for {
		select {
		case <-ctx.Done():
			return nil
		case st := <-states:
			con.ShowState(st, a.cfg.Identity.ID)
		}
	}
}
