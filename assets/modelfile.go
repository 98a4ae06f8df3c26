package assets

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	glbMagic      = 0x46546C67 // "glTF"
	glbVersion    = 2
	glbHeaderSize = 12
)

var (
	ErrNotRegular   = errors.New("not a regular file")
	ErrEmpty        = errors.New("empty file")
	ErrBadGLBHeader = errors.New("bad GLB header")
)

// CheckModelFile is a FetchFunc for model files that the decoder reads from
// disk itself. It runs on a worker, so missing, empty and truncated files
// fail without touching the render thread. For .glb files the container
// header is validated: magic, version 2, and a declared length that matches
// the file size. It returns no bytes.
func CheckModelFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, ErrNotRegular
	}
	if info.Size() == 0 {
		return nil, ErrEmpty
	}

	if !strings.EqualFold(filepath.Ext(path), ".glb") {
		return nil, nil
	}

	var header [glbHeaderSize]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadGLBHeader, err)
	}
	magic := binary.LittleEndian.Uint32(header[0:4])
	version := binary.LittleEndian.Uint32(header[4:8])
	length := binary.LittleEndian.Uint32(header[8:12])

	switch {
	case magic != glbMagic:
		return nil, fmt.Errorf("%w: magic %#x", ErrBadGLBHeader, magic)
	case version != glbVersion:
		return nil, fmt.Errorf("%w: version %d", ErrBadGLBHeader, version)
	case int64(length) != info.Size():
		return nil, fmt.Errorf("%w: declares %d bytes, file has %d", ErrBadGLBHeader, length, info.Size())
	}
	return nil, nil
}
