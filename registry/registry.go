package registry

import "context"

// DefaultService is the service name Wwise authoring instances are registered under.
const DefaultService = "wwise-authoring"

// ServiceInstance is one reachable WAAPI endpoint.
type ServiceInstance struct {
	Addr    string // Endpoint URL, e.g. "ws://10.0.0.5:8080/waapi" or "http://10.0.0.5:8090/waapi"
	Weight  int    // Weight for load balancing
	Version string // Authoring application version, informational
}

type Registry interface {
	Register(ctx context.Context, serviceName string, instance ServiceInstance, ttl int64) error
	Deregister(ctx context.Context, serviceName string, addr string) error
	Discover(ctx context.Context, serviceName string) ([]ServiceInstance, error)
	Watch(ctx context.Context, serviceName string) <-chan []ServiceInstance
}
