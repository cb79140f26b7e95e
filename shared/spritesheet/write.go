package spritesheet

import (
	"encoding/json"
	"io"

	"github.com/automoto/gifsprite/shared/fileout"
	"github.com/disintegration/imaging"
)

// MetaSuffix is appended to the sheet path to name the descriptor file.
const MetaSuffix = ".mcmeta"

// EncodePNG writes the sheet as an RGBA PNG.
func (s *Sheet) EncodePNG(w io.Writer) error {
	return imaging.Encode(w, s.Image, imaging.PNG)
}

// Encode writes the descriptor as indented JSON.
func (d Descriptor) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Write stores the sheet at path and the descriptor at path+MetaSuffix.
// Neither file is created unless both encode successfully.
func Write(path string, s *Sheet, d Descriptor) error {
	return fileout.WriteAll(
		fileout.Artifact{Path: path, Write: s.EncodePNG},
		fileout.Artifact{Path: path + MetaSuffix, Write: d.Encode},
	)
}
