// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package nvme drives the MMIO register state machine of an NVMe
// controller claimed via VFIO: mapping BAR0, standing up the admin
// submission/completion queue pair, and walking the CC.EN / CSTS.RDY /
// CSTS.SHST bring-up and bring-down sequence. It does not build or submit
// NVMe commands.
package nvme

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/dswarbrick/vfionvme/utils"
	"github.com/dswarbrick/vfionvme/vfio"
)

var (
	// ErrAlreadyEnabled is returned by EnableController when CC.EN is
	// already set.
	ErrAlreadyEnabled = errors.New("nvme: controller already enabled")

	// ErrAlreadyDisabled is returned by DisableController when CC.EN is
	// already clear.
	ErrAlreadyDisabled = errors.New("nvme: controller already disabled")

	// ErrTimeout is returned when a poll loop exhausts its iteration
	// budget without observing the awaited state.
	ErrTimeout = errors.New("nvme: timed out waiting for controller state transition")

	// ErrMMIO wraps an mmap/munmap failure on the device's BAR0 region
	// or an admin queue DMA buffer.
	ErrMMIO = errors.New("nvme: mmio mapping error")
)

// Default admin queue depths, matching the original's fixed values.
const (
	DefaultSubmissionQueueDepth = 32
	DefaultCompletionQueueDepth = 16
)

// fallbackWaitIterations reproduces the original's literal 100-iteration
// (1s) poll bound, used when CAP.TO is unavailable or zero.
const fallbackWaitIterations = 100

// waitStepIterationsPerTO is the number of 10ms poll steps per CAP.TO unit
// (500ms / 10ms).
const waitStepIterationsPerTO = 50

// Controller owns an NVMe controller's BAR0 MMIO mapping and its admin
// submission/completion queue pair. Not safe for concurrent use from
// multiple goroutines — register access and queue state are owned by a
// single caller.
type Controller struct {
	device *vfio.Device
	mmio   []byte
	asq    []byte
	acq    []byte

	asqDepth uint16
	acqDepth uint16
	capTO    uint8 // CAP.TO, 500ms units, cached at construction
}

// Option configures NewController.
type Option func(*controllerOptions)

type controllerOptions struct {
	asqDepth, acqDepth uint16
}

// WithAdminQueueDepths overrides the default admin submission/completion
// queue depths.
func WithAdminQueueDepths(sq, cq uint16) Option {
	return func(o *controllerOptions) {
		o.asqDepth = sq
		o.acqDepth = cq
	}
}

// NewController maps device's BAR0 (VFIO region index 0), allocates the
// admin submission and completion queue DMA buffers, and programs
// AQA/ASQ/ACQ in that order.
func NewController(device *vfio.Device, opts ...Option) (*Controller, error) {
	o := controllerOptions{
		asqDepth: DefaultSubmissionQueueDepth,
		acqDepth: DefaultCompletionQueueDepth,
	}
	for _, opt := range opts {
		opt(&o)
	}

	region, err := device.GetRegionInfo(0)
	if err != nil {
		return nil, fmt.Errorf("nvme: bar0 region info: %w", err)
	}

	mmio, err := unix.Mmap(device.Fd(), int64(region.Offset), int(region.Size),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap bar0: %v", ErrMMIO, err)
	}
	if len(mmio) < registerFileLength {
		unix.Munmap(mmio)
		return nil, ErrRegisterFile
	}
	slog.Info("mapped controller bar0", "size", utils.FormatBytes(region.Size))

	c := &Controller{device: device, mmio: mmio, asqDepth: o.asqDepth, acqDepth: o.acqDepth}

	capabilities, err := c.GetCapabilities()
	if err != nil {
		unix.Munmap(mmio)
		return nil, fmt.Errorf("nvme: cap register: %w", err)
	}
	c.capTO = capabilities.TO

	if c.asq, err = allocAligned4K(int(o.asqDepth) * SQEntrySize); err != nil {
		unix.Munmap(mmio)
		return nil, err
	}
	if c.acq, err = allocAligned4K(int(o.acqDepth) * CQEntrySize); err != nil {
		unix.Munmap(c.asq)
		unix.Munmap(mmio)
		return nil, err
	}

	aqa := (uint32(o.acqDepth-1) << 16) | uint32(o.asqDepth-1)
	c.writeReg32(offAQA, aqa)
	c.writeReg64(offASQ, addrOf(c.asq))
	c.writeReg64(offACQ, addrOf(c.acq))

	return c, nil
}

// allocAligned4K returns a page-aligned (and hence 4 KiB-aligned) buffer
// suitable for use as an admin queue DMA target. An anonymous private
// mapping is always page-aligned, which is a cheaper way to get aligned
// memory from the Go runtime than hand-rolling alignment arithmetic over
// a heap allocation.
func allocAligned4K(size int) ([]byte, error) {
	if size <= 0 {
		size = unix.Getpagesize()
	}
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("%w: alloc dma buffer: %v", ErrMMIO, err)
	}
	return buf, nil
}

func addrOf(b []byte) uint64 {
	if len(b) == 0 {
		return 0
	}
	return uint64(uintptr(unsafe.Pointer(&b[0])))
}

func (c *Controller) readReg32(off int) uint32 {
	return binary.LittleEndian.Uint32(c.mmio[off : off+4])
}

func (c *Controller) writeReg32(off int, v uint32) {
	binary.LittleEndian.PutUint32(c.mmio[off:off+4], v)
}

func (c *Controller) readReg64(off int) uint64 {
	return binary.LittleEndian.Uint64(c.mmio[off : off+8])
}

func (c *Controller) writeReg64(off int, v uint64) {
	binary.LittleEndian.PutUint64(c.mmio[off:off+8], v)
}

// GetCapabilities decodes the CAP register.
func (c *Controller) GetCapabilities() (Capabilities, error) {
	return decodeCapabilities(c.readReg64(offCAP))
}

// GetVersion decodes the VS register.
func (c *Controller) GetVersion() Version {
	return decodeVersion(c.readReg32(offVS))
}

func (c *Controller) getControllerConfiguration() (ControllerConfiguration, error) {
	return decodeControllerConfiguration(c.readReg32(offCC))
}

func (c *Controller) writeControllerConfiguration(cfg ControllerConfiguration) {
	c.writeReg32(offCC, encodeControllerConfiguration(cfg))
}

// GetControllerStatus decodes the CSTS register.
func (c *Controller) GetControllerStatus() (ControllerStatus, error) {
	return decodeControllerStatus(c.readReg32(offCSTS))
}

// EnableController sets CC.EN, with IOCQES and IOSQES both fixed at 4.
func (c *Controller) EnableController() error {
	cfg, err := c.getControllerConfiguration()
	if err != nil {
		return err
	}
	if cfg.EN {
		return ErrAlreadyEnabled
	}
	cfg.IOCQES = 4
	cfg.IOSQES = 4
	cfg.EN = true
	c.writeControllerConfiguration(cfg)
	return nil
}

// DisableController clears CC.EN.
func (c *Controller) DisableController() error {
	cfg, err := c.getControllerConfiguration()
	if err != nil {
		return err
	}
	if !cfg.EN {
		return ErrAlreadyDisabled
	}
	cfg.EN = false
	c.writeControllerConfiguration(cfg)
	return nil
}

// ShutdownController requests a normal controller shutdown via CC.SHN.
func (c *Controller) ShutdownController() error {
	cfg, err := c.getControllerConfiguration()
	if err != nil {
		return err
	}
	cfg.SHN = ShutdownNormal
	c.writeControllerConfiguration(cfg)
	return nil
}

// waitIterations bounds a 10ms poll loop by CAP.TO (500ms units); a zero
// CAP.TO falls back to the original's literal 100-iteration/1s bound.
func (c *Controller) waitIterations() int {
	if c.capTO == 0 {
		return fallbackWaitIterations
	}
	return int(c.capTO) * waitStepIterationsPerTO
}

func (c *Controller) pollControllerStatus(timeoutMsg string, done func(ControllerStatus) bool) error {
	for i := 0; i < c.waitIterations(); i++ {
		status, err := c.GetControllerStatus()
		if err != nil {
			return err
		}
		if done(status) {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("%w: %s", ErrTimeout, timeoutMsg)
}

// WaitForControllerReady polls CSTS.RDY until set.
func (c *Controller) WaitForControllerReady() error {
	return c.pollControllerStatus("controller ready", func(s ControllerStatus) bool { return s.RDY })
}

// WaitForControllerStop polls CSTS.RDY until clear.
func (c *Controller) WaitForControllerStop() error {
	return c.pollControllerStatus("controller stop", func(s ControllerStatus) bool { return !s.RDY })
}

// WaitForControllerShutdown polls CSTS.SHST until ShutdownStatusComplete.
func (c *Controller) WaitForControllerShutdown() error {
	return c.pollControllerStatus("controller shutdown", func(s ControllerStatus) bool {
		return s.SHST == ShutdownStatusComplete
	})
}

// Close unmaps BAR0 and frees both admin queue DMA buffers. Safe to call
// once; the caller is expected to defer it immediately after
// NewController succeeds.
func (c *Controller) Close() error {
	var errs []error
	if c.asq != nil {
		if err := unix.Munmap(c.asq); err != nil {
			errs = append(errs, fmt.Errorf("%w: unmap asq: %v", ErrMMIO, err))
		}
	}
	if c.acq != nil {
		if err := unix.Munmap(c.acq); err != nil {
			errs = append(errs, fmt.Errorf("%w: unmap acq: %v", ErrMMIO, err))
		}
	}
	if c.mmio != nil {
		if err := unix.Munmap(c.mmio); err != nil {
			errs = append(errs, fmt.Errorf("%w: unmap bar0: %v", ErrMMIO, err))
		}
	}
	return errors.Join(errs...)
}
