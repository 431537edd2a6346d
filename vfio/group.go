// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package vfio

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/dswarbrick/vfionvme/pciaddr"
)

// Group owns one /dev/vfio/{id} group fd and the devices claimed within
// it. A group belongs to exactly one container.
type Group struct {
	fd      int
	id      uint32
	devices []*Device
}

func newGroup(container *Container, id uint32) (*Group, error) {
	fd, err := unix.Open(fmt.Sprintf("/dev/vfio/%d", id), unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open /dev/vfio/%d: %v", ErrIO, id, err)
	}

	g := &Group{fd: fd, id: id}
	if err := g.init(container); err != nil {
		unix.Close(fd)
		return nil, err
	}
	return g, nil
}

func (g *Group) init(container *Container) error {
	status, err := g.Status()
	if err != nil {
		return err
	}
	if status.Flags&GroupStatusViable == 0 {
		return ErrNotViable
	}

	containerFd := int32(container.fd)
	buf := make([]byte, 4)
	// VFIO_GROUP_SET_CONTAINER takes a pointer to the container fd.
	*(*int32)(ptr(buf)) = containerFd
	if err := ioctlPtr(g.fd, iocGroupSetContainer, buf); err != nil {
		return err
	}

	status, err = g.Status()
	if err != nil {
		return err
	}
	if status.Flags&GroupStatusContainerSet == 0 {
		return ErrSetContainerFailed
	}

	if _, err := ioctlInt(container.fd, iocSetIOMMU, uintptr(VFIOIOMMUTypeV1v2)); err != nil {
		return err
	}
	return nil
}

// Status re-reads the group's status flags via VFIO_GROUP_GET_STATUS.
func (g *Group) Status() (GroupStatus, error) {
	buf := groupStatus{Argsz: groupStatusSize}.bytes()
	if err := ioctlPtr(g.fd, iocGroupGetStatus, buf); err != nil {
		return GroupStatus{}, err
	}
	s := groupStatusFromBytes(buf)
	return GroupStatus{Flags: s.Flags}, nil
}

// ID returns the group's IOMMU group number.
func (g *Group) ID() uint32 {
	return g.id
}

// GroupIDFromAddress resolves a PCI address to its IOMMU group number via
// /sys/bus/pci/devices/{addr}/iommu_group.
func GroupIDFromAddress(addr pciaddr.Address) (uint32, error) {
	link := fmt.Sprintf("/sys/bus/pci/devices/%s/iommu_group", addr.String())
	resolved, err := os.Readlink(link)
	if err != nil {
		return 0, fmt.Errorf("%w: readlink %s: %v", ErrIO, link, err)
	}
	return parseGroupIDFromSymlinkTarget(resolved)
}

// parseGroupIDFromSymlinkTarget parses the numeric basename of an
// iommu_group symlink target, e.g. "../../../kernel/iommu_groups/42".
func parseGroupIDFromSymlinkTarget(resolved string) (uint32, error) {
	base := resolved
	for i := len(resolved) - 1; i >= 0; i-- {
		if resolved[i] == '/' {
			base = resolved[i+1:]
			break
		}
	}

	var id uint32
	if _, err := fmt.Sscanf(base, "%d", &id); err != nil {
		return 0, fmt.Errorf("%w: parsing iommu_group basename %q: %v", ErrIO, base, err)
	}
	return id, nil
}

// AddDevice claims a PCI device within this group via
// VFIO_GROUP_GET_DEVICE_FD.
func (g *Group) AddDevice(addr pciaddr.Address) (*Device, error) {
	d, err := newDevice(g, addr)
	if err != nil {
		return nil, err
	}
	g.devices = append(g.devices, d)
	return d, nil
}

// GetDevice returns a previously added device by address.
func (g *Group) GetDevice(addr pciaddr.Address) (*Device, error) {
	for _, d := range g.devices {
		if d.address == addr {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrDeviceNotFound, addr.String())
}

// Close closes the group fd. Caller must close devices first.
func (g *Group) Close() error {
	return unix.Close(g.fd)
}
