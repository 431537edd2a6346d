// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package vfio

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Container owns the /dev/vfio/vfio container fd and the groups attached
// to it. A container fd is shared by every bound group; attach/detach
// must be externally serialized by the caller.
type Container struct {
	fd     int
	groups []*Group
}

// NewContainer opens /dev/vfio/vfio, verifies the API version, and checks
// for IOMMU Type1v2 support.
func NewContainer() (*Container, error) {
	fd, err := unix.Open("/dev/vfio/vfio", unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open /dev/vfio/vfio: %v", ErrIO, err)
	}

	c := &Container{fd: fd}
	if err := c.check(); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return c, nil
}

func (c *Container) check() error {
	version, err := ioctlInt(c.fd, iocGetAPIVersion, 0)
	if err != nil {
		return err
	}
	if version != VFIOAPIVersionExpected {
		return fmt.Errorf("%w: got %d, want %d", ErrAPIMismatch, version, VFIOAPIVersionExpected)
	}

	supported, err := ioctlInt(c.fd, iocCheckExtension, uintptr(VFIOIOMMUTypeV1v2))
	if err != nil {
		return err
	}
	if supported == 0 {
		return ErrUnsupported
	}
	return nil
}

// Fd returns the container's raw file descriptor.
func (c *Container) Fd() int {
	return c.fd
}

// AddGroup opens /dev/vfio/{id}, verifies viability, binds the group to
// this container, and sets the container's IOMMU type. The IOMMU type is
// set only after a group has attached, matching the original's ordering.
func (c *Container) AddGroup(id uint32) (*Group, error) {
	group, err := newGroup(c, id)
	if err != nil {
		return nil, err
	}
	c.groups = append(c.groups, group)
	return group, nil
}

// Close closes the container fd. Caller must close groups/devices first.
func (c *Container) Close() error {
	return unix.Close(c.fd)
}
