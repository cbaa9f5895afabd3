// Header management for the log file.
//
// The header is exactly 128 bytes, padded with spaces and terminated
// with a newline. It carries crash-recovery state and the configured
// hash algorithm so both survive process restarts.
package indexstore

import (
	"bytes"
	"os"

	json "github.com/goccy/go-json"
)

// HeaderSize is the fixed size of the header in bytes.
const HeaderSize = 128

// Header contains log metadata stored at the start of the file.
type Header struct {
	Version   int   `json:"_v"`   // 1=current
	Error     int   `json:"_e"`   // 0=clean, 1=dirty (crash indicator)
	Algorithm int   `json:"_alg"` // hash algorithm, see hash.go
	Timestamp int64 `json:"_ts"`  // unix milliseconds when last written
}

func readHeader(f *os.File) (*Header, error) {
	buf := make([]byte, HeaderSize)
	if _, err := f.ReadAt(buf, 0); err != nil {
		return nil, err
	}

	var hdr Header
	if err := json.Unmarshal(bytes.TrimSpace(buf), &hdr); err != nil {
		return nil, ErrCorruptHeader
	}
	return &hdr, nil
}

// dirty sets or clears the dirty flag at its fixed offset in the header.
// The _e field sits at byte offset 13: {"_v":1,"_e":X
const dirtyBytePos = 13

func dirty(w *os.File, v bool) error {
	b := byte('0')
	if v {
		b = '1'
	}
	_, err := w.WriteAt([]byte{b}, dirtyBytePos)
	return err
}

func (h *Header) encode() ([]byte, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}

	padLen := HeaderSize - len(data) - 1
	if padLen < 0 {
		return nil, ErrCorruptHeader
	}

	buf := make([]byte, HeaderSize)
	copy(buf, data)
	for i := len(data); i < HeaderSize-1; i++ {
		buf[i] = ' '
	}
	buf[HeaderSize-1] = '\n'

	return buf, nil
}
