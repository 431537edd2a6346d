// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package nvme

import (
	"encoding/binary"
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQCQEntrySizes(t *testing.T) {
	assert.Equal(t, uintptr(64), unsafe.Sizeof(SQEntry{}))
	assert.Equal(t, uintptr(16), unsafe.Sizeof(CQEntry{}))
	assert.EqualValues(t, unsafe.Sizeof(SQEntry{}), SQEntrySize)
	assert.EqualValues(t, unsafe.Sizeof(CQEntry{}), CQEntrySize)
}

func TestAQAEncoding(t *testing.T) {
	aqa := (uint32(DefaultCompletionQueueDepth-1) << 16) | uint32(DefaultSubmissionQueueDepth-1)
	assert.Equal(t, uint32(0x000F001F), aqa)
}

func TestDoorbellOffset(t *testing.T) {
	assert.Equal(t, uintptr(0x1000), DoorbellOffset(0, 0))
	assert.Equal(t, uintptr(0x1008), DoorbellOffset(1, 0))
	assert.Equal(t, uintptr(0x1010), DoorbellOffset(1, 1))
}

func TestVersionString(t *testing.T) {
	v := decodeVersion(0x00010400)
	assert.Equal(t, "1.4.0", v.String())
}

func newFakeController(capTO uint8) *Controller {
	regs := make([]byte, registerFileLength)
	cap := uint64(capTO) << 24
	binary.LittleEndian.PutUint64(regs[offCAP:offCAP+8], cap)
	return &Controller{
		mmio:     regs,
		asqDepth: DefaultSubmissionQueueDepth,
		acqDepth: DefaultCompletionQueueDepth,
		capTO:    capTO,
	}
}

func (c *Controller) setRDY(rdy bool) {
	csts, _ := decodeControllerStatus(c.readReg32(offCSTS))
	csts.RDY = rdy
	c.writeReg32(offCSTS, encodeControllerStatusForTest(csts))
}

// encodeControllerStatusForTest exists only for the fake register file in
// tests; production code never needs to write CSTS.
func encodeControllerStatusForTest(s ControllerStatus) uint32 {
	v := uint32(0)
	if s.PP {
		v |= 1 << 5
	}
	if s.NSSRO {
		v |= 1 << 4
	}
	v |= uint32(s.SHST) << 2
	if s.CFS {
		v |= 1 << 1
	}
	if s.RDY {
		v |= 1 << 0
	}
	return v
}

func TestEnableControllerSetsQueueEntrySizesAndEN(t *testing.T) {
	c := newFakeController(0)

	require.NoError(t, c.EnableController())

	cfg, err := c.getControllerConfiguration()
	require.NoError(t, err)
	assert.True(t, cfg.EN)
	assert.EqualValues(t, 4, cfg.IOCQES)
	assert.EqualValues(t, 4, cfg.IOSQES)
}

func TestEnableControllerTwiceFails(t *testing.T) {
	c := newFakeController(0)
	require.NoError(t, c.EnableController())
	err := c.EnableController()
	assert.ErrorIs(t, err, ErrAlreadyEnabled)
}

func TestDisableControllerWithoutEnableFails(t *testing.T) {
	c := newFakeController(0)
	err := c.DisableController()
	assert.ErrorIs(t, err, ErrAlreadyDisabled)
}

func TestDisableControllerAfterEnable(t *testing.T) {
	c := newFakeController(0)
	require.NoError(t, c.EnableController())
	require.NoError(t, c.DisableController())

	cfg, err := c.getControllerConfiguration()
	require.NoError(t, err)
	assert.False(t, cfg.EN)
}

func TestWaitForControllerReadyReturnsImmediatelyWhenAlreadyReady(t *testing.T) {
	c := newFakeController(0)
	c.setRDY(true)
	assert.NoError(t, c.WaitForControllerReady())
}

func TestWaitForControllerReadyTimesOut(t *testing.T) {
	c := newFakeController(1) // CAP.TO=1 -> 50 iterations * 10ms = 500ms
	err := c.WaitForControllerReady()
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestWaitForControllerStopReturnsImmediatelyWhenAlreadyStopped(t *testing.T) {
	c := newFakeController(0)
	assert.NoError(t, c.WaitForControllerStop())
}

func TestShutdownControllerSetsSHN(t *testing.T) {
	c := newFakeController(0)
	require.NoError(t, c.ShutdownController())

	cfg, err := c.getControllerConfiguration()
	require.NoError(t, err)
	assert.Equal(t, ShutdownNormal, cfg.SHN)
}

func TestWaitForControllerShutdownObservesComplete(t *testing.T) {
	c := newFakeController(0)
	csts, _ := decodeControllerStatus(c.readReg32(offCSTS))
	csts.SHST = ShutdownStatusComplete
	c.writeReg32(offCSTS, encodeControllerStatusForTest(csts))
	assert.NoError(t, c.WaitForControllerShutdown())
}

func TestWaitIterationsFallsBackTo100WhenTOIsZero(t *testing.T) {
	c := newFakeController(0)
	assert.Equal(t, 100, c.waitIterations())
}

func TestWaitIterationsDerivedFromCapTO(t *testing.T) {
	c := newFakeController(2)
	assert.Equal(t, 100, c.waitIterations())
}
