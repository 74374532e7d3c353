package network

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/1siamBot/fountain/engine/particles"
)

// ServerInfo tells a stream viewer what it is looking at, so it can draw
// the ledge and floor and size particles before the first frame arrives.
type ServerInfo struct {
	Name           string  `json:"name"`
	Version        int     `json:"version"`
	Seed           int64   `json:"seed"`
	Capacity       int     `json:"capacity"`
	LifeSpan       float64 `json:"life_span"`
	ParticleSize   float64 `json:"particle_size"`
	FountainHeight float64 `json:"fountain_height"`
	FountainRadius float64 `json:"fountain_radius"`
	IntervalMS     int64   `json:"interval_ms"`
	MaxPerFrame    int     `json:"max_per_frame"` // 0 = every active particle
	Clients        int     `json:"clients"`
}

// NewServerInfo describes a stream of cfg's fountain.
func NewServerInfo(name string, seed int64, cfg particles.Config, interval time.Duration, maxPerFrame int) ServerInfo {
	return ServerInfo{
		Name:           name,
		Version:        ReplayVersion,
		Seed:           seed,
		Capacity:       cfg.MaxParticles,
		LifeSpan:       cfg.LifeSpan,
		ParticleSize:   cfg.ParticleSize,
		FountainHeight: cfg.FountainHeight,
		FountainRadius: cfg.FountainRadius,
		IntervalMS:     interval.Milliseconds(),
		MaxPerFrame:    maxPerFrame,
	}
}

// Marshal returns JSON of the info
func (i ServerInfo) Marshal() ([]byte, error) {
	return json.Marshal(i)
}

// InfoHandler serves info with the hub's live client count.
func (h *Hub) InfoHandler(info ServerInfo) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := info
		info.Clients = h.ClientCount()
		data, err := info.Marshal()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}
}
