// internal/writer/modbus/client.go

// Package modbus writes the status block to a Modbus TCP server.
package modbus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

const defaultIdleTimeout = time.Minute

// RegisterClient owns one TCP connection to a status panel.
// Writes are serialized since the unit id lives on the shared handler.
// The connection is dialed lazily and dropped after a failed write.
type RegisterClient struct {
	mu      sync.Mutex
	addr    string
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

type Config struct {
	Address     string
	Timeout     time.Duration
	IdleTimeout time.Duration // 0 means one minute
}

func Dial(cfg Config) (*RegisterClient, error) {
	if cfg.Address == "" {
		return nil, errors.New("status modbus: address required")
	}

	h := modbus.NewTCPClientHandler(cfg.Address)
	h.Timeout = cfg.Timeout
	h.IdleTimeout = cfg.IdleTimeout
	if h.IdleTimeout <= 0 {
		h.IdleTimeout = defaultIdleTimeout
	}

	return &RegisterClient{
		addr:    cfg.Address,
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

// Close releases the connection. The client may be used again afterwards.
func (c *RegisterClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// WriteRegisters stores regs at addr using FC 16.
func (c *RegisterClient) WriteRegisters(unitID uint8, addr uint16, regs []uint16) error {
	if len(regs) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = unitID
	if _, err := c.client.WriteMultipleRegisters(addr, uint16(len(regs)), bigEndian(regs)); err != nil {
		_ = c.handler.Close()
		return fmt.Errorf("status modbus %s unit=%d addr=%d: %w", c.addr, unitID, addr, err)
	}
	return nil
}

func bigEndian(regs []uint16) []byte {
	out := make([]byte, 2*len(regs))
	for i, r := range regs {
		binary.BigEndian.PutUint16(out[2*i:], r)
	}
	return out
}
