// cmd/qrshare/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/qrcodeshare/qrshare/internal/config"
)

// errOffline makes `status` exit non-zero without an extra log line.
var errOffline = errors.New("server unreachable")

const usageText = `usage: qrshare [-config path] [-v] <command> [args]

commands:
  status [-watch]              check the server connection
  upload [content]             publish a code (args, or one per stdin line)
  download [-follow id]        follow a user's code until interrupted
  follow list                  show the follow list
  follow add <id> <name>       add or rename a follow list entry
  follow remove <id>           remove a follow list entry
  follow use <id>              set the current follow target
  config init [-force]         write a default config file
  config show                  print the effective config
  serve [-addr :8000] [-user id:auth]...
                               run an in-memory server for local testing
`

func usage() { fmt.Fprint(os.Stderr, usageText) }

func main() {
	log.SetFlags(log.LstdFlags)

	global := flag.NewFlagSet("qrshare", flag.ExitOnError)
	global.Usage = usage
	cfgPath := global.String("config", config.DefaultPath(), "config file")
	verbose := global.Bool("v", false, "log every request")
	_ = global.Parse(os.Args[1:])

	args := global.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		// first signal cancels ctx, a second one gets the default behaviour
		<-ctx.Done()
		stop()
	}()

	a := &app{cfgPath: *cfgPath, verbose: *verbose}

	var err error
	switch args[0] {
	case "status":
		err = cmdStatus(ctx, a, args[1:])
	case "upload":
		err = cmdUpload(ctx, a, args[1:])
	case "download":
		err = cmdDownload(ctx, a, args[1:])
	case "follow":
		err = cmdFollow(a, args[1:])
	case "config":
		err = cmdConfig(a, args[1:])
	case "serve":
		err = cmdServe(ctx, args[1:])
	case "help", "-h", "--help":
		usage()
		return
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		if !errors.Is(err, errOffline) {
			log.Printf("%s failed: %v", args[0], err)
		}
		os.Exit(1)
	}
}
