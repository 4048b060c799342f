package loadbalance

import (
	"math/rand"

	"waapi-go/registry"
)

type WeightedRandomBalancer struct{}

// Pick chooses an instance with probability proportional to its weight.
// Weights below 1 count as 1 so unweighted instances stay reachable.
func (b *WeightedRandomBalancer) Pick(instances []registry.ServiceInstance) (*registry.ServiceInstance, error) {
	if len(instances) == 0 {
		return nil, ErrNoInstances
	}

	totalWeight := 0
	for _, v := range instances {
		totalWeight += weight(v)
	}

	r := rand.Intn(totalWeight)
	for i := range instances {
		r -= weight(instances[i])
		if r < 0 {
			return &instances[i], nil
		}
	}

	return &instances[len(instances)-1], nil
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}

func weight(inst registry.ServiceInstance) int {
	if inst.Weight < 1 {
		return 1
	}
	return inst.Weight
}
