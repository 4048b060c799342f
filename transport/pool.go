package transport

import (
	"context"
	"sync"
)

// Pool is a lazily-filled borrow/return pool of transports to one address.
//
// The idle channel holds at most maxConns entries. A nil entry marks a slot
// freed by a discarded transport, so a Get blocked at capacity wakes up and
// dials a replacement.
type Pool struct {
	mu       sync.Mutex
	idle     chan Transport
	addr     string
	maxConns int
	curConns int // transports created and not yet discarded
	closed   bool
	dial     Dialer
}

// NewPool creates an empty pool. Transports are dialed on demand.
func NewPool(addr string, maxConns int, dial Dialer) *Pool {
	if maxConns < 1 {
		maxConns = 1
	}
	return &Pool{
		idle:     make(chan Transport, maxConns),
		addr:     addr,
		maxConns: maxConns,
		dial:     dial,
	}
}

// Get borrows a transport.
// Strategy:
//  1. Reuse an idle transport if one is healthy
//  2. Otherwise dial a new one while under maxConns
//  3. At capacity, block until one is returned or ctx ends
func (p *Pool) Get(ctx context.Context) (Transport, error) {
	for {
		select {
		case t := <-p.idle:
			if t == nil || !p.usable(t) {
				continue
			}
			return t, nil
		default:
		}

		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return nil, ErrClosed
		}
		if p.curConns < p.maxConns {
			p.curConns++
			p.mu.Unlock()
			t, err := p.dial(ctx, p.addr)
			if err != nil {
				p.release()
				return nil, err
			}
			return t, nil
		}
		p.mu.Unlock()

		select {
		case t := <-p.idle:
			if t == nil || !p.usable(t) {
				continue
			}
			return t, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Put returns a borrowed transport. Broken transports are closed and their
// slot is freed.
func (p *Pool) Put(t Transport) {
	if !p.usable(t) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		select {
		case p.idle <- t:
			return
		default:
		}
	}
	t.Close()
	p.curConns--
}

// usable reports whether t is healthy, discarding it otherwise.
func (p *Pool) usable(t Transport) bool {
	if t.Err() == nil {
		return true
	}
	t.Close()
	p.release()
	return false
}

func (p *Pool) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.curConns--
	if !p.closed {
		select {
		case p.idle <- nil:
		default:
		}
	}
}

// Len returns the number of live transports, idle or borrowed.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.curConns
}

// Close closes idle transports; borrowed ones are closed when returned.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	for {
		select {
		case t := <-p.idle:
			if t != nil {
				t.Close()
				p.curConns--
			}
		default:
			return nil
		}
	}
}
