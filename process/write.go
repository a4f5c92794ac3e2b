package process

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EncodeDocument writes the document as indented JSON with a trailing
// newline. Output is byte-stable for a given document.
func EncodeDocument(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding document. %w", err)
	}
	return nil
}

func WriteDocument(path string, doc Document) error {
	dir := filepath.Dir(path)
	if dir != "." {
		err := os.MkdirAll(dir, os.ModePerm)
		if err != nil {
			return fmt.Errorf("couldn't create dir structure %s. %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, os.ModePerm)
	if err != nil {
		return fmt.Errorf("opening file for write %s. %w", path, err)
	}
	defer f.Close()

	if err := EncodeDocument(f, doc); err != nil {
		return fmt.Errorf("writing document %s. %w", path, err)
	}
	return nil
}
