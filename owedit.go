/*
Package owedit is a library for editing the overworld map and graphics data
stored inside a SNES ROM image.

It decodes packed tilemaps, tile graphics and palettes into an editable
in-memory model, routes brush edits through an undo/redo session and encodes
the result back into a byte-exact ROM image.
*/
package owedit

import (
	"io"
	"log"
	"os"

	"github.com/owedit/owedit/edit"
	"github.com/owedit/owedit/project"
	"github.com/owedit/owedit/rom"
)

// Editor ties together a loaded ROM image, the editing session decoded from
// it and the project store remembering state across editor runs.
type Editor struct {
	img     *rom.Image
	session *edit.Session
	store   *project.Store
	logger  *log.Logger
}

// New loads the ROM at path and returns an Editor for it. The store may be
// nil when no persistence is wanted; a nil logger discards all output.
func New(path string, store *project.Store, logger *log.Logger, options ...rom.Option) (*Editor, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	img, err := rom.Open(path, options...)
	if err != nil {
		return nil, err
	}

	logger.Printf("loaded %q: %s layout, CRC %08X\n", img.Title(), img.Layout(), img.CRC32())

	e := &Editor{
		img:     img,
		session: edit.NewSession(img, logger),
		store:   store,
		logger:  logger,
	}

	if store != nil {
		if err := store.RememberROM(img.CRC32(), img.Title()); err != nil {
			return nil, err
		}

		areas, err := store.OpenAreas(img.CRC32())
		if err != nil {
			return nil, err
		}
		for _, id := range areas {
			if _, err := e.session.OpenMap(id); err != nil {
				logger.Printf("cannot reopen area %#02x: %v\n", id, err)
			}
		}
	}

	return e, nil
}

// Session returns the editor's editing session.
func (e *Editor) Session() *edit.Session {
	return e.session
}

// Image returns the loaded ROM image.
func (e *Editor) Image() *rom.Image {
	return e.img
}

// Close persists the set of open areas for the next editor run.
func (e *Editor) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.SaveOpenAreas(e.img.CRC32(), e.session.OpenAreas())
}

func writeFile(path string, b []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := f.Write(b); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
