// Compression for the stored content blob.
//
// A record's content is kept on disk only so the postings index can be
// rebuilt after a restart; it is never exposed to callers. It is
// Zstd-compressed for size, then Ascii85-encoded to produce a printable
// string for a JSON value; the only characters the JSON encoder still
// escapes are '"' and '\', which are part of the Ascii85 alphabet. This
// avoids the 33% overhead of base64 while remaining newline-free
// (critical for the line-delimited log format).
package indexstore

import (
	"bytes"
	"encoding/ascii85"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// Shared encoder/decoder — both are documented as safe for concurrent use.
// Allocated once at init because zstd encoder/decoder construction is
// expensive (internal state tables, dictionaries). Creating one per call
// would dominate the cost of compressing small documents.
//
// SpeedFastest is deliberate: compression runs on every Upsert (hot path)
// while decompression runs only during log replay on Open (cold path).
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)
)

func compressContent(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	compressed := zstdEncoder.EncodeAll(data, nil)

	var encoded bytes.Buffer
	enc := ascii85.NewEncoder(&encoded)
	// bytes.Buffer.Write never errors; enc.Close flushes trailing padding.
	_, _ = enc.Write(compressed)
	_ = enc.Close()

	return encoded.String()
}

func decompressContent(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, nil
	}

	dec := ascii85.NewDecoder(bytes.NewReader([]byte(encoded)))
	compressed, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: ascii85: %w", ErrDecompress, err)
	}

	out, err := zstdDecoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrDecompress, err)
	}
	return out, nil
}
