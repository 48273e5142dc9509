// Package mpv talks to a running mpv player over its JSON IPC socket and adapts
// it to the metadata, playback surface and transition signals the rate
// controller needs.
package mpv

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
)

// ErrUnavailable is returned when mpv reports a property that has no value yet
var ErrUnavailable = errors.New("property unavailable")

// ErrClosed is returned for requests on a closed connection
var ErrClosed = errors.New("mpv connection closed")

// Event is an asynchronous message from mpv, either a named event like
// "file-loaded" or a "property-change" for an observed property
type Event struct {
	Name     string          `json:"event"`
	ID       int64           `json:"id,omitempty"`
	Property string          `json:"name,omitempty"`
	Data     json.RawMessage `json:"data,omitempty"`
}

// message is any line mpv writes, a reply carries request_id, an event carries event
type message struct {
	Event
	Error     string `json:"error"`
	RequestID int64  `json:"request_id"`
}

type request struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

type reply struct {
	data json.RawMessage
	err  error
}

// Client is a connection to the mpv IPC socket, safe for concurrent use
type Client struct {
	conn    net.Conn
	timeout time.Duration
	lastID  atomic.Int64

	wmu sync.Mutex // serializes writes
	enc *json.Encoder

	mu      sync.Mutex
	pending map[int64]chan reply

	qmu   sync.Mutex
	queue []Event // read but not yet delivered, in arrival order
	eof   bool    // reader finished, nothing more will be queued
	wake  chan struct{}

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// DialOpts holds connection parameters
type DialOpts struct {
	Timeout   time.Duration // per-request timeout
	Retries   int           // dial attempts while the socket is not there yet
	BaseDelay time.Duration
}

// Dial connects to the socket, retrying while mpv is starting up
func Dial(ctx context.Context, path string, opts DialOpts) (*Client, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.Retries <= 0 {
		opts.Retries = 10
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = 100 * time.Millisecond
	}

	var conn net.Conn
	dialer := net.Dialer{Timeout: opts.Timeout}
	retrier := repeater.NewBackoff(opts.Retries, opts.BaseDelay, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		c, err := dialer.DialContext(ctx, "unix", path)
		if err != nil {
			lgr.Printf("[DEBUG] mpv socket %s not ready: %v", path, err)
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dial mpv socket %s: %w", path, err)
	}
	lgr.Printf("[INFO] connected to mpv at %s", path)
	return newClient(conn, opts), nil
}

func newClient(conn net.Conn, opts DialOpts) *Client {
	c := &Client{
		conn:    conn,
		timeout: opts.Timeout,
		enc:     json.NewEncoder(conn),
		pending: make(map[int64]chan reply),
		wake:    make(chan struct{}, 1),
		events:  make(chan Event),
		done:    make(chan struct{}),
	}
	go c.readLoop()
	go c.pump()
	return c
}

// Events returns the stream of asynchronous mpv events, closed when the connection ends
func (c *Client) Events() <-chan Event {
	return c.events
}

// Done is closed when the connection is gone
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close closes the connection
func (c *Client) Close() error {
	err := c.conn.Close()
	c.shutdown()
	return err
}

// Command sends a raw command and waits for its reply
func (c *Client) Command(ctx context.Context, args ...any) (json.RawMessage, error) {
	id := c.lastID.Add(1)
	ch := make(chan reply, 1)

	c.mu.Lock()
	if c.pending == nil {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.pending[id] = ch
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	c.wmu.Lock()
	err := c.enc.Encode(request{Command: args, RequestID: id})
	c.wmu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("send %v: %w", args[0], err)
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		if r.err != nil {
			return nil, fmt.Errorf("%v: %w", args[0], r.err)
		}
		return r.data, nil
	case <-timer.C:
		return nil, fmt.Errorf("%v: timeout after %v", args[0], c.timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.done:
		return nil, ErrClosed
	}
}

// GetProperty reads a property into v
func (c *Client) GetProperty(ctx context.Context, name string, v any) error {
	data, err := c.Command(ctx, "get_property", name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// SetProperty writes a property
func (c *Client) SetProperty(ctx context.Context, name string, v any) error {
	_, err := c.Command(ctx, "set_property", name, v)
	return err
}

// ObserveProperty subscribes to property-change events tagged with id
func (c *Client) ObserveProperty(ctx context.Context, id int64, name string) error {
	_, err := c.Command(ctx, "observe_property", id, name)
	return err
}

func (c *Client) readLoop() {
	defer c.shutdown()
	defer c.finish()
	scanner := bufio.NewScanner(c.conn)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024) // metadata and chapter lists can be large
	for scanner.Scan() {
		var msg message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			lgr.Printf("[WARN] bad mpv message %q: %v", scanner.Text(), err)
			continue
		}
		if msg.Name != "" {
			c.deliverEvent(msg.Event)
			continue
		}
		c.deliverReply(msg)
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		lgr.Printf("[WARN] mpv connection read failed: %v", err)
	}
}

// deliverEvent queues an event without blocking the reader, replies must keep flowing.
// A property change replaces an undelivered change of the same property queued after
// the last named event, so a slow consumer sees the latest value and never loses a
// start-file or file-loaded.
func (c *Client) deliverEvent(ev Event) {
	c.qmu.Lock()
	defer c.qmu.Unlock()
	defer c.signal()

	if ev.Name == "property-change" {
		for i := len(c.queue) - 1; i >= 0 && c.queue[i].Name == "property-change"; i-- {
			if c.queue[i].ID == ev.ID {
				c.queue[i] = ev
				return
			}
		}
	}
	c.queue = append(c.queue, ev)
}

// finish marks the end of input, pump closes events once the queue is drained
func (c *Client) finish() {
	c.qmu.Lock()
	c.eof = true
	c.qmu.Unlock()
	c.signal()
}

func (c *Client) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// pump hands queued events to the consumer in order
func (c *Client) pump() {
	defer close(c.events)
	for {
		ev, ok := c.next()
		if !ok {
			return
		}
		select {
		case c.events <- ev:
		case <-c.done:
			return
		}
	}
}

// next waits for a queued event, false once the reader is done and the queue is empty
func (c *Client) next() (Event, bool) {
	for {
		c.qmu.Lock()
		if len(c.queue) > 0 {
			ev := c.queue[0]
			c.queue = c.queue[1:]
			c.qmu.Unlock()
			return ev, true
		}
		eof := c.eof
		c.qmu.Unlock()
		if eof {
			return Event{}, false
		}
		<-c.wake
	}
}

func (c *Client) deliverReply(msg message) {
	c.mu.Lock()
	ch, ok := c.pending[msg.RequestID]
	c.mu.Unlock()
	if !ok {
		return // reply for a request that already timed out
	}
	r := reply{data: msg.Data}
	switch msg.Error {
	case "success":
	case "property unavailable":
		r.err = ErrUnavailable
	default:
		r.err = errors.New(msg.Error)
	}
	ch <- r
}

func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.pending = nil
		c.mu.Unlock()
		close(c.done)
	})
}
