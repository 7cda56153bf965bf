package abi

import "github.com/TyedeeGit/dsk/errors"

// CopySectionFromArray packs elements [start, end) of src, an array of
// elemSize-byte elements, at the position.
func (s *Seeker) CopySectionFromArray(src *Buffer, elemSize, start, end uint64) error {
	if src.IsNil() {
		return errors.NullPointer(errors.PhasePack, "source array")
	}
	if elemSize == 0 {
		return errors.BadSize(errors.PhasePack, 0, src.Size())
	}
	count := src.Size() / elemSize
	if start > end || end > count {
		return errors.BadIndex(errors.PhasePack, start, end, count)
	}
	return s.put(errors.PhasePack, src.data[start*elemSize:end*elemSize])
}
