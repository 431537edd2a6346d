// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

package vfio

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/dswarbrick/vfionvme/pciaddr"
)

// Device is a single PCI function claimed from a Group via
// VFIO_GROUP_GET_DEVICE_FD. A device belongs to exactly one group.
type Device struct {
	fd      int
	address pciaddr.Address
	groupID uint32
}

func newDevice(group *Group, addr pciaddr.Address) (*Device, error) {
	bdf := append([]byte(addr.String()), 0)
	fd, err := ioctlInt(group.fd, iocGroupGetDeviceFD, uintptr(ptr(bdf)))
	if err != nil {
		return nil, fmt.Errorf("%w: get device fd for %s: %v", ErrIO, addr.String(), err)
	}
	return &Device{fd: fd, address: addr, groupID: group.id}, nil
}

// Fd returns the device's raw file descriptor, usable for mmap/pread.
func (d *Device) Fd() int {
	return d.fd
}

// Address returns the device's PCI BDF.
func (d *Device) Address() pciaddr.Address {
	return d.address
}

// GetDeviceInfo issues VFIO_DEVICE_GET_INFO.
func (d *Device) GetDeviceInfo() (DeviceInfo, error) {
	buf := deviceInfoBytes(deviceInfoSize)
	if err := ioctlPtr(d.fd, iocDeviceGetInfo, buf); err != nil {
		return DeviceInfo{}, err
	}
	return deviceInfoFromBytes(buf), nil
}

// GetRegionInfo issues VFIO_DEVICE_GET_REGION_INFO for the given region
// index. By convention index 7 is PCI config space and index 0 is BAR0.
// index must be < 9.
func (d *Device) GetRegionInfo(index uint32) (RegionInfo, error) {
	if index >= 9 {
		return RegionInfo{}, fmt.Errorf("%w: %d", ErrBadRegionIndex, index)
	}
	buf := regionInfoBytes(regionInfoSize, index)
	if err := ioctlPtr(d.fd, iocDeviceGetRegionInfo, buf); err != nil {
		return RegionInfo{}, err
	}
	return regionInfoFromBytes(buf), nil
}

// Close closes the device fd.
func (d *Device) Close() error {
	return unix.Close(d.fd)
}
