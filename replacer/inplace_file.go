package replacer

import (
	"fmt"
	"io"
	"os"
)

// ReplaceInFile rewrites a single old/new byte pair directly inside an
// open, writable file without reading it fully into memory first, the
// streaming single-pattern analogue of automaton.ReplaceInPlace for data
// that lives on disk rather than in a caller-owned buffer. It is grounded
// on gosed's original file-level ReplaceIn: a byte-at-a-time scan tracking
// a partial-match cursor, writing through a small read-ahead buffer
// whenever new is longer than original so the bytes about to be
// overwritten are preserved first. Unlike that original, this version
// takes the writable *os.File's openness on faith from the caller rather
// than probing f.Fd() against open-mode flag constants, which compare
// unrelated integer spaces and can never distinguish read-only from
// read-write file descriptors.
func ReplaceInFile(f *os.File, original, new []byte) error {
	switch {
	case len(original) == 0:
		return fmt.Errorf("replacer: empty search parameter disallowed")
	case f == nil:
		return fmt.Errorf("replacer: cannot use nil file")
	}

	fStat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("replacer: stat: %w", err)
	}
	if fStat.IsDir() {
		return fmt.Errorf("replacer: cannot replace strings in a directory")
	}

	in := make([]byte, 1)
	var readBuffer []byte
	matchIndex := 0
	newLen := int64(0)
	readDone := false

	doRead := func(b []byte, index int64, appendOnly bool) (int, error) {
		if readDone {
			if appendOnly {
				return 0, nil
			}
			if len(readBuffer) == 0 {
				return 0, io.EOF
			}
			n := copy(b, readBuffer)
			readBuffer = readBuffer[n:]
			return n, nil
		}

		n, err := f.ReadAt(b, index)
		if err != nil {
			readDone = true
		}
		if appendOnly {
			return n, nil
		}
		readBuffer = append(readBuffer, b[:n]...)
		if n < len(b) && len(b) <= len(readBuffer) {
			n = len(b)
		} else if n < len(b) {
			n = len(readBuffer)
		}
		copy(b, readBuffer[:n])
		readBuffer = readBuffer[n:]
		if n != 0 {
			return n, nil
		}
		return n, err
	}

	var ri, wi int64
	for {
		if _, err := doRead(in, ri, false); err != nil {
			break
		}
		ri++

		switch {
		case in[0] == original[matchIndex]:
			matchIndex++
			if matchIndex == len(original) {
				if len(new) > len(original) {
					ahead := make([]byte, len(new)-len(original))
					n, _ := doRead(ahead, ri, true)
					ri += int64(n)
					readBuffer = append(readBuffer, ahead[:n]...)
				}
				if _, err := f.WriteAt(new, wi); err != nil {
					return fmt.Errorf("replacer: write: %w", err)
				}
				matchIndex = 0
				newLen += int64(len(new))
				wi += int64(len(new))
			}
		case matchIndex != 0:
			n, err := f.WriteAt(original[:matchIndex], wi)
			if err != nil {
				return fmt.Errorf("replacer: write: %w", err)
			}
			wi += int64(n)
			newLen += int64(n)
			if in[0] == original[0] {
				matchIndex = 1
			} else {
				if _, err := f.WriteAt(in, wi); err != nil {
					return fmt.Errorf("replacer: write: %w", err)
				}
				wi++
				newLen++
				matchIndex = 0
			}
		default:
			if _, err := f.WriteAt(in, wi); err != nil {
				return fmt.Errorf("replacer: write: %w", err)
			}
			wi++
			newLen++
		}
	}

	if err := f.Truncate(newLen); err != nil {
		return fmt.Errorf("replacer: truncate: %w", err)
	}
	return nil
}
