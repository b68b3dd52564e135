package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/hupe1980/agentmemory/core"
)

// Format selects the snapshot encoding.
type Format string

const (
	// FormatStructured encodes snapshots as indented JSON.
	FormatStructured Format = "structured"

	// FormatBinary encodes snapshots as compact CBOR.
	FormatBinary Format = "binary"
)

const (
	dirPermissions  = 0750
	filePermissions = 0600
)

// Valid reports whether f names a supported encoding.
func (f Format) Valid() bool {
	return f == FormatStructured || f == FormatBinary
}

// Ext returns the snapshot file extension for the format, including the dot.
func (f Format) Ext() string {
	if f == FormatBinary {
		return ".cbor"
	}
	return ".json"
}

// ParseFormat resolves a format name. Only the two canonical names are
// accepted; anything else yields ErrUnsupportedFormat.
func ParseFormat(name string) (Format, error) {
	f := Format(name)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	return f, nil
}

// The CBOR modes are built once from static options, so construction cannot
// fail at runtime.
var (
	cborEnc = mustEncMode()
	cborDec = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.EncOptions{
		Time:    cbor.TimeRFC3339Nano,
		TimeTag: cbor.EncTagRequired,
	}.EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
		IntDec:         cbor.IntDecConvertSigned,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

// Codec reads and writes store snapshots in one fixed format. A codec is
// stateless beyond its format and safe for concurrent use.
type Codec struct {
	format Format
}

// NewCodec returns a codec for the given format. Unsupported formats are
// rejected immediately rather than on first use.
func NewCodec(format Format) (*Codec, error) {
	if !format.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return &Codec{format: format}, nil
}

// Format returns the encoding this codec was built for.
func (c *Codec) Format() Format {
	return c.format
}

// EncodeEpisodic serializes an episodic snapshot.
func (c *Codec) EncodeEpisodic(snap core.EpisodicSnapshot) ([]byte, error) {
	return c.marshal(snap)
}

// DecodeEpisodic deserializes an episodic snapshot.
func (c *Codec) DecodeEpisodic(data []byte) (core.EpisodicSnapshot, error) {
	var snap core.EpisodicSnapshot
	if err := c.unmarshal(data, &snap); err != nil {
		return core.EpisodicSnapshot{}, err
	}
	return snap, nil
}

// EncodeSemantic serializes a semantic snapshot.
func (c *Codec) EncodeSemantic(snap core.SemanticSnapshot) ([]byte, error) {
	return c.marshal(snap)
}

// DecodeSemantic deserializes a semantic snapshot.
func (c *Codec) DecodeSemantic(data []byte) (core.SemanticSnapshot, error) {
	var snap core.SemanticSnapshot
	if err := c.unmarshal(data, &snap); err != nil {
		return core.SemanticSnapshot{}, err
	}
	return snap, nil
}

// SaveEpisodic writes an episodic snapshot to path, creating parent
// directories as needed.
func (c *Codec) SaveEpisodic(path string, snap core.EpisodicSnapshot) error {
	data, err := c.marshal(snap)
	if err != nil {
		return fmt.Errorf("persist: failed to encode episodic snapshot: %w", err)
	}
	return writeFileAtomic(path, data)
}

// LoadEpisodic reads an episodic snapshot from path. A missing file is not
// an error: found is false and the snapshot is zero. A file that exists but
// cannot be read or decoded is always surfaced as an error.
func (c *Codec) LoadEpisodic(path string) (snap core.EpisodicSnapshot, found bool, err error) {
	data, found, err := readFile(path)
	if err != nil || !found {
		return core.EpisodicSnapshot{}, found, err
	}
	snap, err = c.DecodeEpisodic(data)
	if err != nil {
		return core.EpisodicSnapshot{}, true, fmt.Errorf("persist: failed to decode episodic snapshot %s: %w", path, err)
	}
	return snap, true, nil
}

// SaveSemantic writes a semantic snapshot to path, creating parent
// directories as needed.
func (c *Codec) SaveSemantic(path string, snap core.SemanticSnapshot) error {
	data, err := c.marshal(snap)
	if err != nil {
		return fmt.Errorf("persist: failed to encode semantic snapshot: %w", err)
	}
	return writeFileAtomic(path, data)
}

// LoadSemantic reads a semantic snapshot from path with the same
// absence/corruption split as LoadEpisodic.
func (c *Codec) LoadSemantic(path string) (snap core.SemanticSnapshot, found bool, err error) {
	data, found, err := readFile(path)
	if err != nil || !found {
		return core.SemanticSnapshot{}, found, err
	}
	snap, err = c.DecodeSemantic(data)
	if err != nil {
		return core.SemanticSnapshot{}, true, fmt.Errorf("persist: failed to decode semantic snapshot %s: %w", path, err)
	}
	return snap, true, nil
}

func (c *Codec) marshal(v any) ([]byte, error) {
	switch c.format {
	case FormatStructured:
		return json.MarshalIndent(v, "", "  ")
	case FormatBinary:
		return cborEnc.Marshal(v)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, c.format)
	}
}

func (c *Codec) unmarshal(data []byte, v any) error {
	switch c.format {
	case FormatStructured:
		return json.Unmarshal(data, v)
	case FormatBinary:
		return cborDec.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, c.format)
	}
}

// writeFileAtomic writes data via a temp file plus rename so readers never
// observe a partial snapshot.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("persist: failed to create directory %s: %w", dir, err)
	}
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, filePermissions); err != nil {
		return fmt.Errorf("persist: failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("persist: failed to rename temp file: %w", err)
	}
	return nil
}

func readFile(path string) (data []byte, found bool, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("persist: failed to read snapshot %s: %w", path, err)
	}
	return data, true, nil
}
