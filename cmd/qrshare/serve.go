// cmd/qrshare/serve.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/qrcodeshare/qrshare/internal/devserver"
)

// userFlags collects repeated -user id:auth values.
type userFlags map[int]string

func (u userFlags) String() string {
	parts := make([]string, 0, len(u))
	for id := range u {
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ",")
}

func (u userFlags) Set(v string) error {
	idStr, auth, ok := strings.Cut(v, ":")
	if !ok || auth == "" {
		return fmt.Errorf("expected id:auth, got %q", v)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid user id %q", idStr)
	}
	u[id] = auth
	return nil
}

// cmdServe runs the in-memory server until ctx is done.
func cmdServe(ctx context.Context, args []string) error {
	users := userFlags{}
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8000", "listen address")
	fs.Var(users, "user", "register a user as id:auth (repeatable)")
	_ = fs.Parse(args)

	if len(users) == 0 {
		users[40001] = "a1"
		users[40002] = "a2"
	}

	srv := &http.Server{
		Addr:              *addr,
		Handler:           devserver.New(users).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("dev server listening on %s (users=%s)", *addr, users)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
