// Package loadbalance picks which authoring instance serves a call.
//
// Three strategies are implemented:
//   - RoundRobin:      spread independent calls evenly
//   - WeightedRandom:  instances on machines of different capacity
//   - ConsistentHash:  keep one client on one instance, so undo groups,
//     transports and registered game objects stay where they were created
package loadbalance

import (
	"errors"

	"waapi-go/registry"
)

// ErrNoInstances is returned when the registry has no instance to pick from.
var ErrNoInstances = errors.New("no waapi instances available")

// Balancer is the interface for load balancing strategies.
// The client calls Pick() before each call to select a target instance.
type Balancer interface {
	// Pick selects one instance from the available list.
	// Called on every call, must be goroutine-safe.
	Pick(instances []registry.ServiceInstance) (*registry.ServiceInstance, error)

	// Name returns the strategy name (for logging/debugging).
	Name() string
}

// New returns the balancer registered under name: "roundrobin", "weighted"
// or "hash". Hash balancers route by key.
func New(name string, key string) (Balancer, error) {
	switch name {
	case "roundrobin", "round_robin":
		return &RoundRobinBalancer{}, nil
	case "weighted", "weighted_random":
		return &WeightedRandomBalancer{}, nil
	case "hash", "consistent_hash", "":
		return NewConsistentHashBalancer(key), nil
	default:
		return nil, errors.New("unknown balancer: " + name)
	}
}
