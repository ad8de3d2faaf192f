// Package registry keeps track of the devices seen during a scan.
package registry

import (
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Device is the accumulated view of one advertiser.
type Device struct {
	Addr      string    `json:"addr"`
	Name      string    `json:"name,omitempty"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
	Count     uint64    `json:"count"`
	LastRSSI  int       `json:"lastRssi"`
	BestRSSI  int       `json:"bestRssi"`
}

// Registry is a concurrent-safe device table keyed by normalized address.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]*Device
}

func New() *Registry {
	return &Registry{
		devices: make(map[string]*Device),
	}
}

// Observe folds one advertisement into the table. The last non-empty name
// wins; BestRSSI keeps the strongest signal seen.
func (r *Registry) Observe(addr string, rssi int, name string, at time.Time) {
	key := strings.ToLower(addr)

	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.devices[key]
	if !ok {
		d = &Device{
			Addr:      key,
			FirstSeen: at,
			BestRSSI:  rssi,
		}
		r.devices[key] = d
	}

	d.LastSeen = at
	d.Count++
	d.LastRSSI = rssi
	if rssi > d.BestRSSI {
		d.BestRSSI = rssi
	}
	if name != "" {
		d.Name = name
	}
}

// Len returns the number of distinct devices seen.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}

// Snapshot returns the devices sorted by address.
func (r *Registry) Snapshot() []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Device, 0, len(r.devices))
	for _, d := range r.devices {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	return out
}

// Save writes the table to a JSON file.
func (r *Registry) Save(path string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out, err := jsoniter.Marshal(r.devices)
	if err != nil {
		return errors.Wrap(err, "encode registry")
	}

	return os.WriteFile(path, out, 0644)
}

// Load merges a previously saved table into this one. A missing file is not
// an error: the registry starts empty.
func (r *Registry) Load(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	in, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var loaded map[string]*Device
	if err := jsoniter.Unmarshal(in, &loaded); err != nil {
		return errors.Wrap(err, "decode registry")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, d := range loaded {
		have, ok := r.devices[key]
		if !ok {
			r.devices[key] = d
			continue
		}

		// keep the freshest view, widen the time span and totals
		if d.FirstSeen.Before(have.FirstSeen) {
			have.FirstSeen = d.FirstSeen
		}
		if d.LastSeen.After(have.LastSeen) {
			have.LastSeen = d.LastSeen
			have.LastRSSI = d.LastRSSI
			if d.Name != "" {
				have.Name = d.Name
			}
		}
		have.Count += d.Count
		if d.BestRSSI > have.BestRSSI {
			have.BestRSSI = d.BestRSSI
		}
	}
	return nil
}
