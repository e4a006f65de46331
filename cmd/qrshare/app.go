// cmd/qrshare/app.go
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/qrcodeshare/qrshare/internal/api"
	"github.com/qrcodeshare/qrshare/internal/config"
	"github.com/qrcodeshare/qrshare/internal/connstatus"
	"github.com/qrcodeshare/qrshare/internal/writer"
)

const userAgent = "qrshare-cli/1"

// app carries what every command shares: config, API client, connection state.
type app struct {
	cfgPath string
	verbose bool

	cfg    *config.Config
	client *api.Client // nil when no host is configured
	status *connstatus.Manager
}

// load reads and validates the config, then wires client and manager.
func (a *app) load() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	a.cfg = cfg

	var checker connstatus.Checker
	if cfg.Server.Host != "" {
		c, err := api.New(api.Config{
			BaseURL:   cfg.Server.Host,
			Timeout:   cfg.Timeout(),
			ID:        cfg.Identity.ID,
			Auth:      cfg.Identity.Auth,
			UserAgent: userAgent,
			Debug:     a.verbose,
		})
		if err != nil {
			return err
		}
		a.client = c
		checker = c
	}

	a.status = connstatus.New(checker, connstatus.Config{CheckPeriod: cfg.CheckPeriod()})
	return nil
}

// requireClient fails when host or identity are missing.
func (a *app) requireClient() (*api.Client, error) {
	if a.client == nil {
		return nil, fmt.Errorf("no server configured: set server.host in %s", a.cfgPath)
	}
	if a.cfg.Identity.ID == "" {
		return nil, fmt.Errorf("no identity configured: set identity.id in %s", a.cfgPath)
	}
	return a.client, nil
}

// startMonitoring runs the immediate and periodic connection checks once
// host, id and auth are all configured. Without a host the state is Offline.
func (a *app) startMonitoring(ctx context.Context) {
	if a.cfg.Server.Host == "" {
		a.status.SetDisconnected()
		return
	}
	if !a.cfg.Configured() {
		return
	}
	a.status.CheckNow(ctx)
	a.status.StartPeriodicCheck(ctx)
}

// startStatusExport mirrors the connection state to Modbus when configured.
// The returned func stops the mirror and closes the connection.
func (a *app) startStatusExport(ctx context.Context) (func(), error) {
	if !a.cfg.StatusExport.Enabled() {
		return func() {}, nil
	}

	sw, closeWriter, err := writer.Build(a.cfg.StatusExport)
	if err != nil {
		return nil, fmt.Errorf("status export: %w", err)
	}

	mctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		writer.Mirror(mctx, a.status, sw)
	}()
	log.Printf("status export started (endpoint=%s slot=%d)", a.cfg.StatusExport.Endpoint, *a.cfg.StatusExport.StatusSlot)

	return func() {
		cancel()
		<-done
		if err := closeWriter(); err != nil {
			log.Printf("status export close failed: %v", err)
		}
	}, nil
}
