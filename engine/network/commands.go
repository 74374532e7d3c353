package network

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// RecordKind identifies a replay record
type RecordKind uint8

const (
	RecStep  RecordKind = iota // Engine.Step(T, DT)
	RecReset                   // Engine.Reset(), DT unused
)

func (k RecordKind) String() string {
	switch k {
	case RecStep:
		return "step"
	case RecReset:
		return "reset"
	}
	return fmt.Sprintf("RecordKind(%d)", uint8(k))
}

// FrameRecord is one host action applied to the engine. Replaying the
// records in order against an engine built from the same seed and config
// reproduces the run exactly.
type FrameRecord struct {
	Seq  uint64
	Kind RecordKind
	T    float64
	DT   float64
}

// recordSize is the encoded size of a FrameRecord
const recordSize = 8 + 1 + 8 + 8

// Encode writes a record to binary
func (c *FrameRecord) Encode(w io.Writer) error {
	var buf [recordSize]byte
	binary.LittleEndian.PutUint64(buf[0:], c.Seq)
	buf[8] = byte(c.Kind)
	binary.LittleEndian.PutUint64(buf[9:], math.Float64bits(c.T))
	binary.LittleEndian.PutUint64(buf[17:], math.Float64bits(c.DT))
	_, err := w.Write(buf[:])
	return err
}

// Decode reads a record from binary. A clean end of input is io.EOF; a
// partial record is io.ErrUnexpectedEOF.
func (c *FrameRecord) Decode(r io.Reader) error {
	var buf [recordSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	c.Seq = binary.LittleEndian.Uint64(buf[0:])
	c.Kind = RecordKind(buf[8])
	if c.Kind > RecReset {
		return fmt.Errorf("record %d: unknown kind %d", c.Seq, buf[8])
	}
	c.T = math.Float64frombits(binary.LittleEndian.Uint64(buf[9:]))
	c.DT = math.Float64frombits(binary.LittleEndian.Uint64(buf[17:]))
	return nil
}
