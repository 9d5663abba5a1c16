package overlay

import (
	"fmt"
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/mobile-next/floatdim/utils"
)

// Registry tracks the running overlay of each device. A device has at most
// one overlay; once the registry is full the least recently used overlay is
// stopped to make room.
type Registry struct {
	mu       sync.Mutex
	overlays *lru.Cache[string, *Overlay]
}

// NewRegistry creates a registry holding up to size overlays.
func NewRegistry(size int) (*Registry, error) {
	cache, err := lru.NewWithEvict[string, *Overlay](size, func(deviceID string, o *Overlay) {
		if err := o.Stop(); err != nil {
			utils.WithField("device", deviceID).Warnf("error stopping overlay %s: %v", o.ID(), err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay registry: %w", err)
	}
	return &Registry{overlays: cache}, nil
}

// Register adds a running overlay for deviceID. It fails when the device
// already has a running overlay.
func (r *Registry) Register(deviceID string, o *Overlay) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.overlays.Peek(deviceID); ok {
		if existing.State().Running {
			return fmt.Errorf("%w: device %s has overlay %s", ErrAlreadyRunning, deviceID, existing.ID())
		}
		r.overlays.Remove(deviceID)
	}
	r.overlays.Add(deviceID, o)
	return nil
}

// Get returns the overlay for deviceID and marks it recently used.
func (r *Registry) Get(deviceID string) (*Overlay, error) {
	o, ok := r.overlays.Get(deviceID)
	if !ok {
		return nil, fmt.Errorf("%w: no overlay for device %s", ErrNotFound, deviceID)
	}
	return o, nil
}

// Remove stops and forgets the overlay for deviceID.
func (r *Registry) Remove(deviceID string) bool {
	return r.overlays.Remove(deviceID)
}

// Devices lists the device ids with a registered overlay, sorted.
func (r *Registry) Devices() []string {
	ids := r.overlays.Keys()
	sort.Strings(ids)
	return ids
}

// Resize changes the capacity, stopping the least recently used overlays
// that no longer fit.
func (r *Registry) Resize(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("registry size must be positive, got %d", size)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlays.Resize(size), nil
}

func (r *Registry) Len() int {
	return r.overlays.Len()
}

// CleanupAll stops every registered overlay.
func (r *Registry) CleanupAll() {
	if r.overlays.Len() == 0 {
		return
	}
	r.overlays.Purge()
}
