package owedit

import (
	"github.com/owedit/owedit/bank"
	"github.com/owedit/owedit/checksum"
)

// Export serializes every dirty map, sheet and palette back into the ROM
// image at the offsets they were decoded from, recomputes the header
// checksum and marks the session clean. Bytes outside the edited structures
// are left untouched, so an export with no edits changes nothing.
func (e *Editor) Export() error {
	s := e.session

	if !s.Dirty() {
		return nil
	}

	for _, id := range s.DirtyMaps() {
		m, err := s.OpenMap(id)
		if err != nil {
			return err
		}
		if err := m.WriteTo(e.img); err != nil {
			return err
		}
		e.logger.Printf("exported area %#02x\n", id)
	}

	for _, id := range s.DirtySheets() {
		sh, err := s.OpenSheet(id)
		if err != nil {
			return err
		}
		if err := sh.WriteTo(e.img); err != nil {
			return err
		}
		e.logger.Printf("exported sheet %#02x\n", id)
	}

	for _, slot := range s.DirtyPalettes() {
		p, err := s.Palette(slot)
		if err != nil {
			return err
		}
		if err := bank.WritePalette(e.img, slot, p); err != nil {
			return err
		}
		e.logger.Printf("exported palette %d\n", slot)
	}

	if err := checksum.Fix(e.img); err != nil {
		return err
	}

	s.MarkClean()

	return nil
}

// Save exports any pending edits and writes the ROM image to path.
func (e *Editor) Save(path string) error {
	if err := e.Export(); err != nil {
		return err
	}
	return writeFile(path, e.img.Bytes())
}
