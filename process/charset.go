package process

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// charsetReader honors the encoding declared in the export's prologue.
// Exports are UTF-8 in practice; very old instances wrote latin-1.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return input, nil
	case "iso-8859-1", "latin1", "windows-1252":
		return &latin1Reader{r: bufio.NewReader(input)}, nil
	}
	return nil, fmt.Errorf("unsupported charset %s", charset)
}

// latin1Reader transcodes ISO-8859-1 bytes to UTF-8. Each source byte maps to
// one or two output bytes, so a byte may be held over between reads.
type latin1Reader struct {
	r          io.ByteReader
	pending    byte
	hasPending bool
}

func (l *latin1Reader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		if l.hasPending {
			p[n] = l.pending
			l.hasPending = false
			n++
			continue
		}
		b, err := l.r.ReadByte()
		if err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}
		if b < 0x80 {
			p[n] = b
			n++
			continue
		}
		p[n] = 0xC0 | b>>6
		n++
		l.pending = 0x80 | b&0x3F
		l.hasPending = true
	}
	return n, nil
}
