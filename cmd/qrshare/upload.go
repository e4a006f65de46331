// cmd/qrshare/upload.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/qrcodeshare/qrshare/internal/display"
	"github.com/qrcodeshare/qrshare/internal/uploader"
)

const maxScanLine = 1 << 20

// cmdUpload publishes the joined args, or every stdin line as it arrives
// (a barcode scanner in keyboard mode ends each scan with a newline).
func cmdUpload(ctx context.Context, a *app, args []string) error {
	if err := a.load(); err != nil {
		return err
	}
	client, err := a.requireClient()
	if err != nil {
		return err
	}

	stopExport, err := a.startStatusExport(ctx)
	if err != nil {
		return err
	}
	defer stopExport()

	up := uploader.New(client, a.status)
	con := display.NewWriterConsole(os.Stdout)

	if len(args) > 0 {
		_, err := submit(ctx, up, con, strings.Join(args, " "))
		return err
	}

	return eachLine(ctx, os.Stdin, func(line string) {
		// a failed scan is reported and the next one is still accepted
		_, _ = submit(ctx, up, con, line)
	})
}

// eachLine calls fn for every line of r until r ends or ctx is done.
// The read happens on its own goroutine so a blocked read never holds up
// cancellation; that goroutine may outlive the call until r returns.
func eachLine(ctx context.Context, r io.Reader, fn func(string)) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxScanLine)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			fn(line)
		}
	}
}

func submit(ctx context.Context, up *uploader.Uploader, con *display.Console, content string) (uploader.Result, error) {
	res, err := up.Submit(ctx, content)
	switch {
	case err != nil:
		con.ShowStatus(fmt.Sprintf("upload failed: %v", err))
	case res.Skipped:
		// nothing new
	default:
		con.ShowStatus(fmt.Sprintf("uploaded (%d this session): %s", res.Count, res.Content))
	}
	return res, err
}
