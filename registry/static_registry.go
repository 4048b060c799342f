package registry

import (
	"context"
	"sort"
	"sync"
)

// StaticRegistry keeps instances in memory. It backs clients that talk to a
// fixed set of authoring instances, most often the single local one.
// TTLs are ignored.
type StaticRegistry struct {
	mu       sync.RWMutex
	services map[string]map[string]ServiceInstance
	watchers map[string][]chan []ServiceInstance
}

func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{
		services: make(map[string]map[string]ServiceInstance),
		watchers: make(map[string][]chan []ServiceInstance),
	}
}

// NewStaticRegistryFor returns a registry pre-populated with the given addresses.
func NewStaticRegistryFor(serviceName string, addrs ...string) *StaticRegistry {
	r := NewStaticRegistry()
	for _, addr := range addrs {
		r.add(serviceName, ServiceInstance{Addr: addr, Weight: 1})
	}
	return r
}

func (r *StaticRegistry) Register(ctx context.Context, serviceName string, instance ServiceInstance, ttl int64) error {
	r.add(serviceName, instance)
	r.notify(serviceName)
	return nil
}

func (r *StaticRegistry) Deregister(ctx context.Context, serviceName string, addr string) error {
	r.mu.Lock()
	delete(r.services[serviceName], addr)
	r.mu.Unlock()
	r.notify(serviceName)
	return nil
}

// Discover returns the instances sorted by address so balancers see a stable order.
func (r *StaticRegistry) Discover(ctx context.Context, serviceName string) ([]ServiceInstance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(serviceName), nil
}

// Watch emits the instance list after every Register or Deregister until ctx ends.
// A slow reader only ever sees the latest list.
func (r *StaticRegistry) Watch(ctx context.Context, serviceName string) <-chan []ServiceInstance {
	ch := make(chan []ServiceInstance, 1)
	r.mu.Lock()
	r.watchers[serviceName] = append(r.watchers[serviceName], ch)
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.mu.Lock()
		defer r.mu.Unlock()
		ws := r.watchers[serviceName]
		for i, w := range ws {
			if w == ch {
				r.watchers[serviceName] = append(ws[:i], ws[i+1:]...)
				break
			}
		}
		close(ch)
	}()
	return ch
}

func (r *StaticRegistry) add(serviceName string, instance ServiceInstance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.services[serviceName] == nil {
		r.services[serviceName] = make(map[string]ServiceInstance)
	}
	r.services[serviceName][instance.Addr] = instance
}

func (r *StaticRegistry) notify(serviceName string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	instances := r.snapshot(serviceName)
	for _, ch := range r.watchers[serviceName] {
		// drop a stale pending list so the newest one fits
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- instances:
		default:
		}
	}
}

func (r *StaticRegistry) snapshot(serviceName string) []ServiceInstance {
	instances := make([]ServiceInstance, 0, len(r.services[serviceName]))
	for _, inst := range r.services[serviceName] {
		instances = append(instances, inst)
	}
	sort.Slice(instances, func(i, j int) bool {
		return instances[i].Addr < instances[j].Addr
	})
	return instances
}
