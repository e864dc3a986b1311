package network

import (
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
)

// ErrServerFull is returned when MaxSessions peers are connected
var ErrServerFull = errors.New("max sessions reached")

// Peer is one websocket connection
// Writes go through a bounded queue drained by writeLoop; a full queue
// drops frames rather than stalling the session goroutine
type Peer struct {
	ID       string
	Addr     string
	LastSeen atomic.Int64 // UnixNano

	conn  *websocket.Conn
	codec Codec
	cfg   *Config

	sendCh    chan []byte
	closeCh   chan struct{}
	closeOnce sync.Once

	dropped atomic.Int64
}

func newPeer(id string, conn *websocket.Conn, codec Codec, cfg *Config) *Peer {
	p := &Peer{
		ID:      id,
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		codec:   codec,
		cfg:     cfg,
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
	p.LastSeen.Store(time.Now().UnixNano())
	return p
}

// Send encodes and queues msg
// Returns false if the peer is closed, encoding failed or the queue is full
func (p *Peer) Send(msg *Message) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}

	data, err := p.codec.Marshal(msg)
	if err != nil {
		log.Printf("[network] %s encode %s: %v", p.ID, msg.Type, err)
		return false
	}
	select {
	case p.sendCh <- data:
		return true
	default:
		p.dropped.Add(1)
		return false
	}
}

// Done is closed once the peer disconnects
func (p *Peer) Done() <-chan struct{} { return p.closeCh }

// Dropped returns the number of messages lost to a full queue
func (p *Peer) Dropped() int64 { return p.dropped.Load() }

// Close initiates shutdown
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		p.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(p.cfg.WriteTimeout))
		p.conn.Close()
	})
}

// readLoop decodes commands until the connection fails
// Malformed frames are answered with an error result and otherwise ignored
func (p *Peer) readLoop(handler func(Command)) {
	defer p.Close()

	p.conn.SetReadLimit(p.cfg.ReadLimit)
	p.conn.SetReadDeadline(time.Now().Add(p.cfg.DisconnectTimeout))
	p.conn.SetPongHandler(func(string) error {
		p.LastSeen.Store(time.Now().UnixNano())
		return p.conn.SetReadDeadline(time.Now().Add(p.cfg.DisconnectTimeout))
	})

	for {
		frameType, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[network] %s read: %v", p.ID, err)
			}
			return
		}
		p.LastSeen.Store(time.Now().UnixNano())
		p.conn.SetReadDeadline(time.Now().Add(p.cfg.DisconnectTimeout))

		cmd, err := DecodeCommand(frameType, data)
		if err != nil {
			p.Send(&Message{Type: MsgResult, Seq: cmd.Seq, Result: &Result{Error: err.Error()}})
			continue
		}
		handler(cmd)
	}
}

// writeLoop sends queued messages and keeps the connection alive with pings
func (p *Peer) writeLoop() {
	defer p.Close()

	ping := time.NewTicker(p.cfg.HeartbeatInterval)
	defer ping.Stop()

	for {
		select {
		case <-p.closeCh:
			return
		case data := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
			if err := p.conn.WriteMessage(p.codec.FrameType(), data); err != nil {
				return
			}
		case <-ping.C:
			p.conn.SetWriteDeadline(time.Now().Add(p.cfg.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// PeerManager tracks live connections
type PeerManager struct {
	mu       sync.RWMutex
	peers    map[string]*Peer
	maxPeers int
}

// NewPeerManager creates a peer manager
func NewPeerManager(maxPeers int) *PeerManager {
	return &PeerManager{
		peers:    make(map[string]*Peer),
		maxPeers: maxPeers,
	}
}

// Add registers p and starts its I/O loops
func (pm *PeerManager) Add(p *Peer, handler func(Command)) error {
	pm.mu.Lock()
	if len(pm.peers) >= pm.maxPeers {
		pm.mu.Unlock()
		return ErrServerFull
	}
	pm.peers[p.ID] = p
	pm.mu.Unlock()

	core.Go(func() { p.readLoop(handler) })
	core.Go(p.writeLoop)
	core.Go(func() {
		<-p.closeCh
		pm.mu.Lock()
		delete(pm.peers, p.ID)
		pm.mu.Unlock()
	})
	return nil
}

// Get retrieves a peer by id
func (pm *PeerManager) Get(id string) (*Peer, bool) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	p, ok := pm.peers[id]
	return p, ok
}

// Count returns the connected peer count
func (pm *PeerManager) Count() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Close disconnects all peers
func (pm *PeerManager) Close() {
	pm.mu.RLock()
	peers := make([]*Peer, 0, len(pm.peers))
	for _, p := range pm.peers {
		peers = append(peers, p)
	}
	pm.mu.RUnlock()

	for _, p := range peers {
		p.Close()
	}
}
