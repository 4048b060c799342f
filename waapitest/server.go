// Package waapitest provides test doubles for code that talks to WAAPI.
//
// Server is an in-process fake authoring instance answering on both the WAMP
// WebSocket endpoint and the HTTP endpoint:
//
//	GET  /waapi (Upgrade)  → HELLO/WELCOME, then CALL/SUBSCRIBE/UNSUBSCRIBE/GOODBYE
//	POST /waapi            → {"uri", "options", "args"} → result or error envelope
//
// Calls flow through the same middleware chain type the client uses:
//
//	decode → Middleware Chain → dispatch (handler lookup) → encode → write
//
// Recorder is a fake client handle that records calls instead of sending them.
package waapitest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"waapi-go/codec"
	"waapi-go/message"
	"waapi-go/middleware"
	"waapi-go/protocol"
)

// HandlerFunc serves one WAAPI procedure. Returning a *message.Error sends
// that error URI to the caller; any other error becomes wamp.error.runtime_error.
type HandlerFunc func(ctx context.Context, args map[string]any) (map[string]any, error)

// Server is a fake WAAPI endpoint.
type Server struct {
	Realm          string        // Realm accepted in HELLO, protocol.DefaultRealm by default
	SubscribeDelay time.Duration // held before answering SUBSCRIBE, zero by default

	mu          sync.Mutex
	handlers    map[string]HandlerFunc  // "ak.wwise.core.getInfo" → handler
	middlewares []middleware.Middleware // applied in order
	handler     middleware.CallFunc     // middleware(...(dispatch)), built by Start
	sessions    map[*session]struct{}   // live WAMP sessions
	calls       []message.Request       // every request that reached dispatch
	httpServer  *httptest.Server        // nil until Start
	codec       codec.Codec             // wamp.2.json / application/json
	upgrader    websocket.Upgrader      // accepts the codec's subprotocol only
	wg          sync.WaitGroup          // in-flight calls, for Shutdown
	shutdown    atomic.Bool             // set once Shutdown starts
	nextSession atomic.Uint64           // WAMP session ids
	nextSub     atomic.Uint64           // WAMP subscription ids
	nextPub     atomic.Uint64           // WAMP publication ids
}

type session struct {
	id      uint64
	conn    *websocket.Conn
	writeMu sync.Mutex // one writer per websocket connection

	subMu  sync.Mutex
	topics map[string]uint64 // topic → subscription id
}

// NewServer creates a server with no procedures.
func NewServer() *Server {
	c := codec.Default()
	return &Server{
		Realm:    protocol.DefaultRealm,
		handlers: make(map[string]HandlerFunc),
		sessions: make(map[*session]struct{}),
		codec:    c,
		upgrader: websocket.Upgrader{Subprotocols: []string{c.Subprotocol()}},
	}
}

// Handle registers h for uri, replacing any previous handler.
func (s *Server) Handle(uri string, h HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[uri] = h
}

// Register binds every handler-shaped method of rcvr under prefix.
// See scanNamespace for the accepted method signature.
func (s *Server) Register(prefix string, rcvr any) error {
	handlers, err := scanNamespace(prefix, rcvr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for uri, h := range handlers {
		s.handlers[uri] = h
	}
	return nil
}

// Use registers a middleware. Middlewares apply in the order added and must
// be registered before Start.
func (s *Server) Use(mw middleware.Middleware) {
	s.middlewares = append(s.middlewares, mw)
}

// Start begins serving on a loopback port.
func (s *Server) Start() {
	s.handler = middleware.Chain(s.middlewares...)(s.dispatch)

	router := mux.NewRouter()
	router.HandleFunc("/waapi", s.handleHTTP).Methods(http.MethodPost)
	router.HandleFunc("/waapi", s.handleWebSocket).Methods(http.MethodGet)
	s.httpServer = httptest.NewServer(router)
}

// WAMPURL returns the WebSocket endpoint, e.g. ws://127.0.0.1:51234/waapi.
func (s *Server) WAMPURL() string {
	return "ws" + strings.TrimPrefix(s.httpServer.URL, "http") + "/waapi"
}

// HTTPURL returns the HTTP endpoint, e.g. http://127.0.0.1:51234/waapi.
func (s *Server) HTTPURL() string {
	return s.httpServer.URL + "/waapi"
}

// Calls returns a copy of every request dispatched so far.
func (s *Server) Calls() []message.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]message.Request(nil), s.calls...)
}

// Sessions returns the number of live WAMP sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Subscriptions returns the number of topic subscriptions held by all
// live sessions.
func (s *Server) Subscriptions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for sess := range s.sessions {
		sess.subMu.Lock()
		n += len(sess.topics)
		sess.subMu.Unlock()
	}
	return n
}

// Publish sends an EVENT for topic to every session subscribed to it and
// returns how many sessions received it.
func (s *Server) Publish(topic string, kwargs map[string]any) int {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	delivered := 0
	for _, sess := range sessions {
		sess.subMu.Lock()
		subID, ok := sess.topics[topic]
		sess.subMu.Unlock()
		if !ok {
			continue
		}
		err := s.write(sess, &protocol.Event{
			Subscription: subID,
			Publication:  s.nextPub.Add(1),
			Kwargs:       kwargs,
		})
		if err == nil {
			delivered++
		}
	}
	return delivered
}

// Shutdown performs graceful shutdown:
//  1. Set the shutdown flag so new calls are refused
//  2. Say GOODBYE to every WAMP session and close it
//  3. Wait for in-flight calls to finish (with timeout)
//  4. Close the listener
func (s *Server) Shutdown(timeout time.Duration) error {
	s.shutdown.Store(true)

	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()
	for _, sess := range sessions {
		s.write(sess, &protocol.Goodbye{Reason: protocol.ReasonCloseNormal})
		sess.conn.Close()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-time.After(timeout):
		err = fmt.Errorf("timeout waiting for ongoing calls to finish")
	}
	if s.httpServer != nil {
		s.httpServer.Close()
	}
	return err
}

// dispatch is the innermost handler: it records the request and runs the
// procedure registered for its URI.
func (s *Server) dispatch(ctx context.Context, req *message.Request) (*message.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, *req)
	h, ok := s.handlers[req.URI]
	s.mu.Unlock()

	if !ok {
		return nil, &message.Error{
			URI:     message.URINoSuchProcedure,
			Message: "The procedure does not exist.",
			Details: map[string]any{"procedureUri": req.URI},
		}
	}

	result, err := h(ctx, req.Args)
	if err != nil {
		return nil, err
	}
	return &message.Response{URI: req.URI, Result: result}, nil
}

// serve runs one call through the middleware chain.
func (s *Server) serve(ctx context.Context, req *message.Request) (*message.Response, error) {
	if s.shutdown.Load() {
		return nil, &message.Error{URI: message.URICanceled, Message: "server shutting down"}
	}
	s.wg.Add(1)
	defer s.wg.Done()
	return s.handler(ctx, req)
}

func (s *Server) handleHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req message.Request
	if err := s.codec.Decode(body, &req); err != nil || req.URI == "" {
		s.writeHTTPError(w, &message.Error{URI: message.URIInvalidArguments, Message: "malformed request body"})
		return
	}

	resp, err := s.serve(r.Context(), &req)
	if err != nil {
		s.writeHTTPError(w, asRemoteError(err))
		return
	}

	result := resp.Result
	if result == nil {
		result = map[string]any{}
	}
	data, err := s.codec.Encode(result)
	if err != nil {
		s.writeHTTPError(w, asRemoteError(err))
		return
	}
	w.Header().Set("Content-Type", s.codec.ContentType())
	w.Write(data)
}

func (s *Server) writeHTTPError(w http.ResponseWriter, e *message.Error) {
	status := http.StatusBadRequest
	if e.URI == message.URIRuntimeError {
		status = http.StatusInternalServerError
	}
	data, _ := s.codec.Encode(e)
	w.Header().Set("Content-Type", s.codec.ContentType())
	w.WriteHeader(status)
	w.Write(data)
}

// handleWebSocket runs one WAMP session. A single goroutine reads frames;
// each CALL is served on its own goroutine so a slow procedure does not
// block the session.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sess := &session{conn: conn, topics: make(map[string]uint64)}
	if !s.welcome(sess) {
		return
	}

	s.mu.Lock()
	s.sessions[sess] = struct{}{}
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.sessions, sess)
		s.mu.Unlock()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		m, err := protocol.Decode(s.codec, data)
		if err != nil {
			continue
		}

		switch msg := m.(type) {
		case *protocol.Call:
			go s.handleCall(sess, msg)
		case *protocol.Subscribe:
			s.handleSubscribe(sess, msg)
		case *protocol.Unsubscribe:
			s.handleUnsubscribe(sess, msg)
		case *protocol.Goodbye:
			s.write(sess, &protocol.Goodbye{Reason: protocol.ReasonGoodbyeAndOut})
			return
		}
	}
}

// welcome reads HELLO and answers WELCOME, or ABORT for a foreign realm.
func (s *Server) welcome(sess *session) bool {
	_, data, err := sess.conn.ReadMessage()
	if err != nil {
		return false
	}
	m, err := protocol.Decode(s.codec, data)
	if err != nil {
		return false
	}
	hello, ok := m.(*protocol.Hello)
	if !ok {
		return false
	}
	if hello.Realm != s.Realm {
		s.write(sess, &protocol.Abort{Reason: protocol.ReasonNoSuchRealm})
		return false
	}

	sess.id = s.nextSession.Add(1)
	return s.write(sess, &protocol.Welcome{
		Session: sess.id,
		Details: map[string]any{"roles": map[string]any{"dealer": map[string]any{}, "broker": map[string]any{}}},
	}) == nil
}

func (s *Server) handleCall(sess *session, call *protocol.Call) {
	req := &message.Request{URI: call.Procedure, Options: call.Options, Args: call.Kwargs}
	resp, err := s.serve(context.Background(), req)
	if err != nil {
		e := asRemoteError(err)
		s.write(sess, &protocol.Error{
			RequestType: protocol.CodeCall,
			Request:     call.Request,
			URI:         e.URI,
			Kwargs:      e.Kwargs(),
		})
		return
	}
	s.write(sess, &protocol.Result{Request: call.Request, Kwargs: resp.Result})
}

func (s *Server) handleSubscribe(sess *session, sub *protocol.Subscribe) {
	if s.SubscribeDelay > 0 {
		time.Sleep(s.SubscribeDelay)
	}
	sess.subMu.Lock()
	id, ok := sess.topics[sub.Topic]
	if !ok {
		id = s.nextSub.Add(1)
		sess.topics[sub.Topic] = id
	}
	sess.subMu.Unlock()
	s.write(sess, &protocol.Subscribed{Request: sub.Request, Subscription: id})
}

func (s *Server) handleUnsubscribe(sess *session, unsub *protocol.Unsubscribe) {
	sess.subMu.Lock()
	found := false
	for topic, id := range sess.topics {
		if id == unsub.Subscription {
			delete(sess.topics, topic)
			found = true
			break
		}
	}
	sess.subMu.Unlock()

	if !found {
		s.write(sess, &protocol.Error{
			RequestType: protocol.CodeUnsubscribe,
			Request:     unsub.Request,
			URI:         "wamp.error.no_such_subscription",
		})
		return
	}
	s.write(sess, &protocol.Unsubscribed{Request: unsub.Request})
}

// write encodes and sends one frame under the session's write lock.
func (s *Server) write(sess *session, m protocol.Message) error {
	data, err := protocol.Encode(s.codec, m)
	if err != nil {
		return err
	}
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	return sess.conn.WriteMessage(websocket.TextMessage, data)
}

func asRemoteError(err error) *message.Error {
	var remote *message.Error
	if errors.As(err, &remote) {
		return remote
	}
	return &message.Error{URI: message.URIRuntimeError, Message: err.Error()}
}
