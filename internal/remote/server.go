// Package remote exposes the playback store over a websocket: every client
// receives a JSON snapshot on each state change and may send control
// commands.
package remote

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/llehouerou/tflash/internal/briefing"
	"github.com/llehouerou/tflash/internal/playback"
)

const (
	writeTimeout = 5 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 25 * time.Second
	maxMessage   = 1024
)

// Options tunes the server.
type Options struct {
	CommandRate  float64 // commands per second per client
	CommandBurst int
	Lookup       Lookup // nil means the static catalog
	Logger       *log.Logger
}

// Server fans playback snapshots out to websocket clients.
type Server struct {
	svc      playback.Service
	opts     Options
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	latest  []byte
	closed  bool
	unsub   func()
}

// New creates a server observing svc. Close releases the subscription and
// disconnects every client.
func New(svc playback.Service, opts Options) *Server {
	if opts.CommandRate <= 0 {
		opts.CommandRate = 20
	}
	if opts.CommandBurst <= 0 {
		opts.CommandBurst = 10
	}
	if opts.Lookup == nil {
		opts.Lookup = briefing.Find
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	s := &Server{
		svc:     svc,
		opts:    opts,
		logger:  opts.Logger.WithPrefix("remote"),
		clients: make(map[*client]struct{}),
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}
	s.unsub = svc.Subscribe(s.broadcast)
	return s
}

// checkOrigin allows native clients (no Origin), same-host pages and
// localhost.
func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Host == r.Host {
		return true
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// Handler serves /ws (websocket) and /state (current snapshot as JSON).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/state", s.serveState)
	return mux
}

// ListenAndServe serves on addr until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("listening", "addr", ln.Addr().String())
	err = srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) serveState(w http.ResponseWriter, _ *http.Request) {
	data, err := json.Marshal(NewSnapshot(s.svc.Snapshot()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("upgrade failed", "err", err)
		return
	}

	c := newClient(conn, rate.NewLimiter(rate.Limit(s.opts.CommandRate), s.opts.CommandBurst))

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.clients[c] = struct{}{}
	latest := s.latest
	s.mu.Unlock()

	if latest == nil {
		latest, _ = json.Marshal(NewSnapshot(s.svc.Snapshot()))
	}
	c.offer(latest)
	s.logger.Debug("client connected", "addr", conn.RemoteAddr(), "clients", s.clientCount())

	go c.writeLoop(s.logger)
	s.readLoop(c)

	s.remove(c)
	c.close()
	s.logger.Debug("client disconnected", "addr", conn.RemoteAddr())
}

func (s *Server) readLoop(c *client) {
	c.conn.SetReadLimit(maxMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("read error", "err", err)
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongTimeout))

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.reply(ErrorReply{Type: TypeError, Message: "malformed command"})
			continue
		}
		if !c.limiter.Allow() {
			c.reply(ErrorReply{Type: TypeError, Command: cmd.Cmd, Message: "rate limited"})
			continue
		}
		if err := Apply(s.svc, s.opts.Lookup, cmd); err != nil {
			s.logger.Debug("command failed", "cmd", cmd.Cmd, "err", err)
			c.reply(ErrorReply{Type: TypeError, Command: cmd.Cmd, Message: err.Error()})
		}
	}
}

// broadcast runs on the playback subscription.
func (s *Server) broadcast(st playback.State) {
	data, err := json.Marshal(NewSnapshot(st))
	if err != nil {
		s.logger.Warn("encode snapshot", "err", err)
		return
	}

	s.mu.Lock()
	s.latest = data
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()

	for _, c := range clients {
		c.offer(data)
	}
}

func (s *Server) remove(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}

func (s *Server) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Close stops observing the service and disconnects every client.
func (s *Server) Close() error {
	s.unsub()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	clients := s.clients
	s.clients = make(map[*client]struct{})
	s.mu.Unlock()

	for c := range clients {
		c.close()
	}
	return nil
}

// client is one websocket connection. States go through a one-slot mailbox
// that keeps only the newest snapshot; replies are queued.
type client struct {
	conn    *websocket.Conn
	limiter *rate.Limiter

	states  chan []byte
	replies chan []byte
	done    chan struct{}
	once    sync.Once
}

func newClient(conn *websocket.Conn, limiter *rate.Limiter) *client {
	return &client{
		conn:    conn,
		limiter: limiter,
		states:  make(chan []byte, 1),
		replies: make(chan []byte, 8),
		done:    make(chan struct{}),
	}
}

func (c *client) offer(data []byte) {
	for {
		select {
		case c.states <- data:
			return
		default:
		}
		select {
		case <-c.states:
		default:
		}
	}
}

func (c *client) reply(r ErrorReply) {
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	select {
	case c.replies <- data:
	default:
		// slow reader; replies are advisory
	}
}

func (c *client) writeLoop(logger *log.Logger) {
	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		var (
			data []byte
			err  error
		)
		select {
		case <-c.done:
			return
		case data = <-c.states:
		case data = <-c.replies:
		case <-ping.C:
			err = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))
		}
		if data != nil {
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err = c.conn.WriteMessage(websocket.TextMessage, data)
		}
		if err != nil {
			if !strings.Contains(err.Error(), "use of closed network connection") {
				logger.Debug("write error", "err", err)
			}
			c.close()
			return
		}
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.conn.Close()
	})
}
