package loadbalance

import (
	"fmt"
	"hash/crc32"
	"sort"
	"strings"
	"sync"

	"waapi-go/registry"
)

// ConsistentHashBalancer maps keys to instances using a hash ring.
// The same key always maps to the same instance until the ring changes, and
// adding or removing an instance only moves the keys that hashed next to it.
//
// Each real instance gets replicas virtual nodes on the ring so a handful of
// instances still spread evenly.
type ConsistentHashBalancer struct {
	key      string // Key used by Pick, usually the client id
	replicas int    // Virtual nodes per real instance

	mu        sync.Mutex
	signature string                              // Addresses the ring was built from
	ring      []uint32                            // Sorted hash values on the ring
	nodes     map[uint32]registry.ServiceInstance // Hash value → instance
}

// NewConsistentHashBalancer creates a hash ring with 100 virtual nodes per
// instance. Pick routes by key.
func NewConsistentHashBalancer(key string) *ConsistentHashBalancer {
	return &ConsistentHashBalancer{
		key:      key,
		replicas: 100,
		nodes:    make(map[uint32]registry.ServiceInstance),
	}
}

// Add places an instance onto the hash ring.
func (b *ConsistentHashBalancer) Add(instance registry.ServiceInstance) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.add(instance)
	b.sortRing()
}

func (b *ConsistentHashBalancer) add(instance registry.ServiceInstance) {
	for i := 0; i < b.replicas; i++ {
		hash := crc32.ChecksumIEEE([]byte(fmt.Sprintf("%s#%d", instance.Addr, i)))
		b.ring = append(b.ring, hash)
		b.nodes[hash] = instance
	}
}

func (b *ConsistentHashBalancer) sortRing() {
	sort.Slice(b.ring, func(i, j int) bool {
		return b.ring[i] < b.ring[j]
	})
}

// Pick rebuilds the ring when the instance set changed, then returns the
// instance owning the balancer's key.
func (b *ConsistentHashBalancer) Pick(instances []registry.ServiceInstance) (*registry.ServiceInstance, error) {
	if len(instances) == 0 {
		return nil, ErrNoInstances
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if sig := signature(instances); sig != b.signature {
		b.ring = b.ring[:0]
		b.nodes = make(map[uint32]registry.ServiceInstance, len(instances)*b.replicas)
		for _, inst := range instances {
			b.add(inst)
		}
		b.sortRing()
		b.signature = sig
	}

	inst, err := b.lookup(b.key)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// PickKey returns the instance owning key on the current ring.
func (b *ConsistentHashBalancer) PickKey(key string) (*registry.ServiceInstance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	inst, err := b.lookup(key)
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// lookup binary-searches for the first node >= hash(key), wrapping around to
// the first node past the end of the ring.
func (b *ConsistentHashBalancer) lookup(key string) (registry.ServiceInstance, error) {
	if len(b.ring) == 0 {
		return registry.ServiceInstance{}, ErrNoInstances
	}
	hash := crc32.ChecksumIEEE([]byte(key))
	idx := sort.Search(len(b.ring), func(i int) bool {
		return b.ring[i] >= hash
	})
	if idx == len(b.ring) {
		idx = 0
	}
	return b.nodes[b.ring[idx]], nil
}

func (b *ConsistentHashBalancer) Name() string {
	return "ConsistentHash"
}

func signature(instances []registry.ServiceInstance) string {
	addrs := make([]string, len(instances))
	for i, inst := range instances {
		addrs[i] = inst.Addr
	}
	sort.Strings(addrs)
	return strings.Join(addrs, "|")
}
