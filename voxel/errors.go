package voxel

import "errors"

var (
	ErrIndexOutOfRange    = errors.New("voxel: index out of range")
	ErrInvalidSize        = errors.New("voxel: invalid chunk size")
	ErrInvalidKind        = errors.New("voxel: invalid kind")
	ErrInvalidMesh        = errors.New("voxel: invalid mesh")
	ErrBadMagic           = errors.New("voxel: bad magic")
	ErrUnsupportedVersion = errors.New("voxel: unsupported version")
	ErrCorrupt            = errors.New("voxel: corrupt data")
)
