package network

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/1siamBot/fountain/engine/particles"
)

const (
	replayMagic   = "FNTR"
	ReplayVersion = 1
)

var (
	ErrNotReplay     = errors.New("replay: bad magic")
	ErrReplayVersion = errors.New("replay: unsupported version")
)

// replayHeader is the fixed-size file prefix. Everything needed to rebuild
// the engine lives here; the records that follow only carry host actions.
type replayHeader struct {
	Magic          [4]byte
	Version        uint16
	Seed           int64
	MaxParticles   uint32
	LifeSpan       float64
	ParticleSize   float64
	Gravity        float64
	Velocity       float64
	Friction       float64
	FountainHeight float64
	FountainRadius float64
	GlowWobble     uint8
}

// Replay records and plays back the frames an engine was stepped with
type Replay struct {
	Seed      int64
	Config    particles.Config
	Records   []FrameRecord
	Truncated bool // the file ended inside a record

	file   *os.File
	writer *bufio.Writer
	seq    uint64
}

// NewReplayRecorder creates a replay file for recording. The engine being
// recorded must use particles.NewSource(seed) and the default slot finder.
func NewReplayRecorder(path string, seed int64, cfg particles.Config) (*Replay, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r := &Replay{
		Seed:   seed,
		Config: cfg,
		file:   f,
		writer: bufio.NewWriter(f),
	}
	if err := writeHeader(r.writer, seed, cfg); err != nil {
		f.Close()
		return nil, fmt.Errorf("replay %s: %w", path, err)
	}
	return r, nil
}

// RecordFrame appends a step record
func (r *Replay) RecordFrame(t, dt float64) error {
	return r.Record(FrameRecord{Kind: RecStep, T: t, DT: dt})
}

// RecordReset appends a reset record
func (r *Replay) RecordReset(t float64) error {
	return r.Record(FrameRecord{Kind: RecReset, T: t})
}

// Record numbers rec and writes it to the replay file
func (r *Replay) Record(rec FrameRecord) error {
	rec.Seq = r.seq
	r.seq++
	r.Records = append(r.Records, rec)
	return rec.Encode(r.writer)
}

// Close flushes and closes the replay file
func (r *Replay) Close() error {
	var err error
	if r.writer != nil {
		err = r.writer.Flush()
		r.writer = nil
	}
	if r.file != nil {
		if cerr := r.file.Close(); err == nil {
			err = cerr
		}
		r.file = nil
	}
	return err
}

// LoadReplay loads a replay file
func LoadReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	replay, err := ReadReplay(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", path, err)
	}
	return replay, nil
}

// ReadReplay decodes a header and all records from rd. A trailing partial
// record is dropped and reported through Truncated.
func ReadReplay(rd io.Reader) (*Replay, error) {
	seed, cfg, err := readHeader(rd)
	if err != nil {
		return nil, err
	}
	replay := &Replay{Seed: seed, Config: cfg}
	for {
		var rec FrameRecord
		err := rec.Decode(rd)
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			replay.Truncated = true
			break
		}
		if err != nil {
			return nil, err
		}
		replay.Records = append(replay.Records, rec)
	}
	return replay, nil
}

// Duration is the simulated time covered by the recorded steps.
func (r *Replay) Duration() float64 {
	for i := len(r.Records) - 1; i >= 0; i-- {
		if r.Records[i].Kind == RecStep {
			return r.Records[i].T
		}
	}
	return 0
}

// NewEngine builds an engine matching the one that was recorded.
func (r *Replay) NewEngine() (*particles.Engine, error) {
	return particles.New(r.Config, particles.WithSource(particles.NewSource(r.Seed)))
}

// Play re-applies every record to eng in order. visit, when non-nil, sees
// each record with the step's result and can stop playback by returning
// false. Play returns the number of records applied.
func (r *Replay) Play(eng *particles.Engine, visit func(FrameRecord, particles.StepResult) bool) int {
	for i, rec := range r.Records {
		var res particles.StepResult
		switch rec.Kind {
		case RecStep:
			res = eng.Step(rec.T, rec.DT)
		case RecReset:
			eng.Reset()
		}
		if visit != nil && !visit(rec, res) {
			return i + 1
		}
	}
	return len(r.Records)
}

func writeHeader(w io.Writer, seed int64, cfg particles.Config) error {
	h := replayHeader{
		Version:        ReplayVersion,
		Seed:           seed,
		MaxParticles:   uint32(cfg.MaxParticles),
		LifeSpan:       cfg.LifeSpan,
		ParticleSize:   cfg.ParticleSize,
		Gravity:        cfg.Gravity,
		Velocity:       cfg.Velocity,
		Friction:       cfg.Friction,
		FountainHeight: cfg.FountainHeight,
		FountainRadius: cfg.FountainRadius,
	}
	copy(h.Magic[:], replayMagic)
	if cfg.GlowWobble {
		h.GlowWobble = 1
	}
	return binary.Write(w, binary.LittleEndian, &h)
}

func readHeader(rd io.Reader) (int64, particles.Config, error) {
	var h replayHeader
	if err := binary.Read(rd, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, particles.Config{}, ErrNotReplay
		}
		return 0, particles.Config{}, err
	}
	if string(h.Magic[:]) != replayMagic {
		return 0, particles.Config{}, ErrNotReplay
	}
	if h.Version != ReplayVersion {
		return 0, particles.Config{}, fmt.Errorf("%w: %d", ErrReplayVersion, h.Version)
	}
	cfg := particles.Config{
		MaxParticles:   int(h.MaxParticles),
		LifeSpan:       h.LifeSpan,
		ParticleSize:   h.ParticleSize,
		Gravity:        h.Gravity,
		Velocity:       h.Velocity,
		Friction:       h.Friction,
		FountainHeight: h.FountainHeight,
		FountainRadius: h.FountainRadius,
		GlowWobble:     h.GlowWobble != 0,
	}
	return h.Seed, cfg, nil
}

// ReplaySummary totals a replay's steps.
type ReplaySummary struct {
	Steps, Resets     int
	Duration          float64
	Spawned, Skipped  int
	Died              int
	LedgeBounces      int
	FloorBounces      int
	FinalActive, Peak int
	Truncated         bool
}

// Summarize plays the replay on a fresh engine and totals the results.
func (r *Replay) Summarize() (ReplaySummary, error) {
	eng, err := r.NewEngine()
	if err != nil {
		return ReplaySummary{}, err
	}
	s := ReplaySummary{Duration: r.Duration(), Truncated: r.Truncated}
	r.Play(eng, func(rec FrameRecord, res particles.StepResult) bool {
		if rec.Kind == RecReset {
			s.Resets++
			s.FinalActive = 0
			return true
		}
		s.Steps++
		s.Spawned += res.Spawned
		s.Skipped += res.Skipped
		s.Died += res.Died
		s.LedgeBounces += res.LedgeBounces
		s.FloorBounces += res.FloorBounces
		s.FinalActive = res.Active
		if res.Active > s.Peak {
			s.Peak = res.Active
		}
		return true
	})
	return s, nil
}
