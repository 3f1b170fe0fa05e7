package mxf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Extract walks r end-to-end, writing one output file per KeyType
// encountered (Data, Video, System, TimecodeComponent, Audio; Unknown
// keys are skipped), named "<BaseName><suffix>.raw" under OutDir.
func Extract(r io.ReadSeeker, opts Options) error {
	w, err := NewWalker(r)
	if err != nil {
		return err
	}
	files := make(map[KeyType]*os.File)
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	for {
		h, err := w.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		typ := ClassifyKey(h.Key)
		if typ == Unknown {
			if err := w.SkipValue(h); err != nil {
				return err
			}
			continue
		}
		value, err := w.ReadValue(h)
		if err != nil {
			return err
		}
		f, ok := files[typ]
		if !ok {
			path := filepath.Join(opts.OutDir, opts.BaseName+typ.Suffix()+".raw")
			f, err = os.Create(path)
			if err != nil {
				return err
			}
			files[typ] = f
		}
		if _, err := f.Write(value); err != nil {
			return err
		}
	}
}

// Demux walks r end-to-end, writing one output file per distinct 16-byte
// key observed. Filenames are "<BaseName>_<keyid><ext>"; keyid is either
// the 32-char hex key or, when opts.UseNames is set, its classified type
// name. ext is ".raw", or ".klv" (which also prepends the original key
// and BER length bytes) when opts.KLVMode is set.
func Demux(r io.ReadSeeker, opts Options) error {
	w, err := NewWalker(r)
	if err != nil {
		return err
	}
	files := make(map[Key]*os.File)
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	for {
		h, err := w.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		value, err := w.ReadValue(h)
		if err != nil {
			return err
		}
		f, ok := files[h.Key]
		if !ok {
			keyID := h.Key.String()
			if opts.UseNames {
				typ := ClassifyKey(h.Key)
				keyID = typ.String()
				if typ == Unknown {
					// Distinct unclassified keys would otherwise all
					// resolve to the same "Unknown" filename and
					// overwrite each other; give each one a
					// collision-free suffix.
					keyID = keyID + "_" + uuid.NewString()
				}
			}
			ext := ".raw"
			if opts.KLVMode {
				ext = ".klv"
			}
			path := filepath.Join(opts.OutDir, fmt.Sprintf("%s_%s%s", opts.BaseName, keyID, ext))
			f, err = os.Create(path)
			if err != nil {
				return err
			}
			files[h.Key] = f
		}
		if opts.KLVMode {
			if _, err := f.Write(h.Key[:]); err != nil {
				return err
			}
			if _, err := f.Write(h.LengthBytes); err != nil {
				return err
			}
		}
		if _, err := f.Write(value); err != nil {
			return err
		}
	}
}
