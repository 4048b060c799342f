// Package client is the WAAPI client handle the bindings forward to.
//
// A call travels:
//
//	Call → middleware chain → registry.Discover → balancer.Pick
//	     → per-address transport.Pool → transport.Call
//
// With the default hash balancer every call of one Client lands on the same
// authoring instance, which keeps undo groups and playback transports valid.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"waapi-go/config"
	"waapi-go/loadbalance"
	"waapi-go/logger"
	"waapi-go/message"
	"waapi-go/middleware"
	"waapi-go/registry"
	"waapi-go/transport"
)

// ErrSubscribeUnsupported is returned by Subscribe when the picked instance
// is reached over HTTP, which cannot deliver events.
var ErrSubscribeUnsupported = errors.New("waapi instance does not support subscriptions")

type Client struct {
	registry registry.Registry
	balancer loadbalance.Balancer
	service  string
	dial     transport.Dialer
	poolSize int
	logger   *zap.Logger
	invoke   middleware.CallFunc // middleware(...(send))
	owned    []io.Closer         // closed with the client

	mu     sync.Mutex
	pools  map[string]*transport.Pool // instance address → pool
	closed bool
}

// Option configures a Client.
type Option func(*options)

type options struct {
	middlewares []middleware.Middleware
	logger      *zap.Logger
	poolSize    int
	service     string
	realm       string
	dialer      transport.Dialer
	affinityKey string
}

// WithMiddleware appends middlewares; the first added is outermost.
func WithMiddleware(mws ...middleware.Middleware) Option {
	return func(o *options) { o.middlewares = append(o.middlewares, mws...) }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPoolSize sets how many transports are kept per instance.
func WithPoolSize(n int) Option {
	return func(o *options) { o.poolSize = n }
}

// WithService sets the registry service name instances are discovered under.
func WithService(name string) Option {
	return func(o *options) { o.service = name }
}

// WithRealm sets the WAMP realm joined by WebSocket transports.
func WithRealm(realm string) Option {
	return func(o *options) { o.realm = realm }
}

// WithDialer replaces the transport dialer.
func WithDialer(d transport.Dialer) Option {
	return func(o *options) { o.dialer = d }
}

// WithAffinityKey sets the key the default hash balancer routes by. Clients
// sharing a key share an instance.
func WithAffinityKey(key string) Option {
	return func(o *options) { o.affinityKey = key }
}

// New creates a client discovering instances in reg and choosing between them
// with bal. A nil bal selects a consistent hash balancer keyed by the
// affinity key (a fresh uuid unless WithAffinityKey is given).
// No connection is opened until the first call.
func New(reg registry.Registry, bal loadbalance.Balancer, opts ...Option) *Client {
	o := options{
		poolSize: config.DefaultPoolSize,
		service:  registry.DefaultService,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.affinityKey == "" {
		o.affinityKey = uuid.NewString()
	}
	if bal == nil {
		bal = loadbalance.NewConsistentHashBalancer(o.affinityKey)
	}
	if o.dialer == nil {
		o.dialer = transport.NewDialer(transport.Options{Realm: o.realm, Logger: o.logger})
	}

	c := &Client{
		registry: reg,
		balancer: bal,
		service:  o.service,
		dial:     o.dialer,
		poolSize: o.poolSize,
		logger:   o.logger,
		pools:    make(map[string]*transport.Pool),
	}
	c.invoke = middleware.Chain(o.middlewares...)(c.send)
	return c
}

// Dial creates a client for the single instance at url and connects to it.
func Dial(ctx context.Context, url string, opts ...Option) (*Client, error) {
	o := options{service: registry.DefaultService}
	for _, opt := range opts {
		opt(&o)
	}
	c := New(registry.NewStaticRegistryFor(o.service, url), nil, opts...)
	if err := c.Connect(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// FromConfig creates a client from cfg: etcd discovery when endpoints are
// set, otherwise the instance at cfg.URL. Calls are logged, and bounded by
// cfg.Timeout and cfg.RateLimit when those are set.
func FromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var (
		reg   registry.Registry
		owned []io.Closer
	)
	if len(cfg.Etcd.Endpoints) > 0 {
		etcdReg, err := registry.NewEtcdRegistry(cfg.Etcd.Endpoints, log)
		if err != nil {
			return nil, err
		}
		reg = etcdReg
		owned = append(owned, etcdReg)
	} else {
		reg = registry.NewStaticRegistryFor(cfg.Service, cfg.URL)
	}

	key := uuid.NewString()
	bal, err := loadbalance.New(cfg.Balancer, key)
	if err != nil {
		closeAll(owned)
		return nil, err
	}

	mws := []middleware.Middleware{middleware.LoggingMiddleware(log)}
	if cfg.RateLimit > 0 {
		mws = append(mws, middleware.RateLimitMiddleware(cfg.RateLimit, cfg.RateBurst))
	}
	if cfg.Timeout > 0 {
		mws = append(mws, middleware.TimeoutMiddleware(cfg.Timeout))
	}

	base := []Option{
		WithLogger(log),
		WithService(cfg.Service),
		WithRealm(cfg.Realm),
		WithPoolSize(cfg.PoolSize),
		WithAffinityKey(key),
		WithMiddleware(mws...),
	}
	c := New(reg, bal, append(base, opts...)...)
	c.owned = owned
	return c, nil
}

// NewDefault creates a client from config.Load("") and connects it. It is
// the zero-argument constructor the bindings use when given no handle.
// The connect is bounded by cfg.Timeout when set, otherwise only by the
// transport's handshake timeout.
func NewDefault() (*Client, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	c, err := FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	ctx := context.Background()
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}
	if err := c.Connect(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// Connect opens a transport to the instance this client routes to, so
// connection failures surface before the first call.
func (c *Client) Connect(ctx context.Context) error {
	pool, _, err := c.route(ctx)
	if err != nil {
		return err
	}
	t, err := pool.Get(ctx)
	if err != nil {
		return err
	}
	pool.Put(t)
	return nil
}

// Call runs one WAAPI procedure and returns its keyword result. Remote
// failures are returned as *message.Error.
func (c *Client) Call(ctx context.Context, uri string, args map[string]any, options map[string]any) (map[string]any, error) {
	resp, err := c.invoke(ctx, &message.Request{URI: uri, Options: options, Args: args})
	if err != nil {
		return nil, err
	}
	return resp.Result, nil
}

// send is the innermost CallFunc.
func (c *Client) send(ctx context.Context, req *message.Request) (*message.Response, error) {
	pool, _, err := c.route(ctx)
	if err != nil {
		return nil, err
	}
	t, err := pool.Get(ctx)
	if err != nil {
		return nil, err
	}
	defer pool.Put(t)
	return t.Call(ctx, req)
}

// Subscribe delivers events published on topic to handler until the returned
// subscription is cancelled or the connection drops.
func (c *Client) Subscribe(ctx context.Context, topic string, options map[string]any, handler transport.EventHandler) (*transport.Subscription, error) {
	pool, inst, err := c.route(ctx)
	if err != nil {
		return nil, err
	}
	t, err := pool.Get(ctx)
	if err != nil {
		return nil, err
	}
	// WAMP transports are shared; the subscription outlives the borrow.
	defer pool.Put(t)

	sub, ok := t.(transport.Subscriber)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSubscribeUnsupported, inst.Addr)
	}
	return sub.Subscribe(ctx, topic, options, handler)
}

// route discovers the service's instances and returns the pool of the one
// the balancer picks.
func (c *Client) route(ctx context.Context) (*transport.Pool, *registry.ServiceInstance, error) {
	instances, err := c.registry.Discover(ctx, c.service)
	if err != nil {
		return nil, nil, fmt.Errorf("discover %s: %w", c.service, err)
	}
	inst, err := c.balancer.Pick(instances)
	if err != nil {
		return nil, nil, err
	}
	pool, err := c.pool(inst.Addr)
	if err != nil {
		return nil, nil, err
	}
	return pool, inst, nil
}

func (c *Client) pool(addr string) (*transport.Pool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, transport.ErrClosed
	}
	p, ok := c.pools[addr]
	if !ok {
		c.logger.Debug("new transport pool", zap.String("addr", addr), zap.Int("size", c.poolSize))
		p = transport.NewPool(addr, c.poolSize, c.dial)
		c.pools[addr] = p
	}
	return p, nil
}

// Close closes every pooled transport and resources the client created.
// Calls after Close fail with transport.ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	pools := c.pools
	c.pools = nil
	c.mu.Unlock()

	for _, p := range pools {
		p.Close()
	}
	return closeAll(c.owned)
}

func closeAll(cs []io.Closer) error {
	var errs []error
	for _, cl := range cs {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
