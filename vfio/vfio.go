// Copyright 2017-18 Daniel Swarbrick. All rights reserved.
// Use of this source code is governed by a GPL license that can be found in the LICENSE file.

// Package vfio binds the Linux VFIO framework: opening a container, adding
// an IOMMU group, and claiming a PCI device within it.
package vfio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

func ptr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}

// ioctl numbers, per linux/vfio.h: (0x3B << 8) | (100 + N).
const (
	vfioType = uint(0x3B) << 8

	iocGetAPIVersion       = vfioType | 100
	iocCheckExtension      = vfioType | 101
	iocSetIOMMU            = vfioType | 102
	iocGroupGetStatus      = vfioType | 103
	iocGroupSetContainer   = vfioType | 104
	iocGroupGetDeviceFD    = vfioType | 106
	iocDeviceGetInfo       = vfioType | 107
	iocDeviceGetRegionInfo = vfioType | 108
)

// VFIOAPIVersionExpected is the only VFIO API version this package speaks.
const VFIOAPIVersionExpected = 0

// VFIOIOMMUTypeV1v2 is the IOMMU type this package requires containers to
// support.
const VFIOIOMMUTypeV1v2 = 3

var (
	// ErrIO wraps an errno returned by a VFIO ioctl, mmap, or file
	// operation.
	ErrIO = errors.New("vfio: io error")

	// ErrAPIMismatch is returned when the container's VFIO API version
	// is not VFIOAPIVersionExpected.
	ErrAPIMismatch = errors.New("vfio: api version mismatch")

	// ErrUnsupported is returned when the container lacks IOMMU Type1v2
	// support.
	ErrUnsupported = errors.New("vfio: IOMMU Type1v2 not supported")

	// ErrNotViable is returned when a group's status lacks the Viable
	// flag.
	ErrNotViable = errors.New("vfio: group not viable")

	// ErrSetContainerFailed is returned when a group's status lacks the
	// ContainerSet flag after the set-container ioctl.
	ErrSetContainerFailed = errors.New("vfio: failed to set container on group")

	// ErrBadRegionIndex is returned for a region index >= 9.
	ErrBadRegionIndex = errors.New("vfio: region index out of range")

	// ErrDeviceNotFound is returned by Group.GetDevice for an address
	// the group hasn't added.
	ErrDeviceNotFound = errors.New("vfio: device not found in group")
)

func ioctlPtr(fd int, cmd uint, buf []byte) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(cmd), uintptr(ptr(buf)))
	if errno != 0 {
		return fmt.Errorf("%w: %v", ErrIO, errno)
	}
	return nil
}

func ioctlInt(fd int, cmd uint, arg uintptr) (int, error) {
	ret, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(cmd), arg)
	if errno != 0 {
		return 0, fmt.Errorf("%w: %v", ErrIO, errno)
	}
	return int(ret), nil
}

// GroupStatusViable reports a VFIO group's status flags: VIABLE (bit0)
// and CONTAINER_SET (bit1), treated as native-endian masks per the
// original's own endianness caveat rather than a bit-position struct.
const (
	GroupStatusViable       uint32 = 1 << 0
	GroupStatusContainerSet uint32 = 1 << 1
)

// GroupStatus is the result of VFIO_GROUP_GET_STATUS.
type GroupStatus struct {
	Flags uint32
}

type groupStatus struct {
	Argsz uint32
	Flags uint32
}

const groupStatusSize = 8

func (s groupStatus) bytes() []byte {
	b := make([]byte, groupStatusSize)
	binary.LittleEndian.PutUint32(b[0:4], s.Argsz)
	binary.LittleEndian.PutUint32(b[4:8], s.Flags)
	return b
}

func groupStatusFromBytes(b []byte) groupStatus {
	return groupStatus{
		Argsz: binary.LittleEndian.Uint32(b[0:4]),
		Flags: binary.LittleEndian.Uint32(b[4:8]),
	}
}

// DeviceInfoFlags, per linux/vfio.h: bit0=RESET, 1=PCI, 2=PLATFORM,
// 3=AMBA, 4=CCW, 5=AP, 6=FSL_MC, 7=CAPS, 8=CDX.
const (
	DeviceInfoReset    uint32 = 1 << 0
	DeviceInfoPCI      uint32 = 1 << 1
	DeviceInfoPlatform uint32 = 1 << 2
	DeviceInfoAMBA     uint32 = 1 << 3
	DeviceInfoCCW      uint32 = 1 << 4
	DeviceInfoAP       uint32 = 1 << 5
	DeviceInfoFslMC    uint32 = 1 << 6
	DeviceInfoCaps     uint32 = 1 << 7
	DeviceInfoCDX      uint32 = 1 << 8
)

// DeviceInfo is the result of VFIO_DEVICE_GET_INFO.
type DeviceInfo struct {
	Flags      uint32
	NumRegions uint32
	NumIRQs    uint32
	CapOffset  uint32
}

const deviceInfoSize = 24

func deviceInfoBytes(argsz uint32) []byte {
	b := make([]byte, deviceInfoSize)
	binary.LittleEndian.PutUint32(b[0:4], argsz)
	return b
}

func deviceInfoFromBytes(b []byte) DeviceInfo {
	return DeviceInfo{
		Flags:      binary.LittleEndian.Uint32(b[4:8]),
		NumRegions: binary.LittleEndian.Uint32(b[8:12]),
		NumIRQs:    binary.LittleEndian.Uint32(b[12:16]),
		CapOffset:  binary.LittleEndian.Uint32(b[16:20]),
	}
}

// RegionInfoFlags, per linux/vfio.h: bit0=READ, 1=WRITE, 2=MMAP, 3=CAPS.
const (
	RegionInfoRead  uint32 = 1 << 0
	RegionInfoWrite uint32 = 1 << 1
	RegionInfoMmap  uint32 = 1 << 2
	RegionInfoCaps  uint32 = 1 << 3
)

// RegionInfo is the result of VFIO_DEVICE_GET_REGION_INFO.
type RegionInfo struct {
	Flags     uint32
	Index     uint32
	CapOffset uint32
	Size      uint64
	Offset    uint64
}

const regionInfoSize = 32

func regionInfoBytes(argsz, index uint32) []byte {
	b := make([]byte, regionInfoSize)
	binary.LittleEndian.PutUint32(b[0:4], argsz)
	binary.LittleEndian.PutUint32(b[8:12], index)
	return b
}

func regionInfoFromBytes(b []byte) RegionInfo {
	return RegionInfo{
		Flags:     binary.LittleEndian.Uint32(b[4:8]),
		Index:     binary.LittleEndian.Uint32(b[8:12]),
		CapOffset: binary.LittleEndian.Uint32(b[12:16]),
		Size:      binary.LittleEndian.Uint64(b[16:24]),
		Offset:    binary.LittleEndian.Uint64(b[24:32]),
	}
}
