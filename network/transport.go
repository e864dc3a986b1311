package network

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/core"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/game"
	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/storage"
)

// maxSlotLength bounds client supplied slot names
const maxSlotLength = 64

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	r.HandleFunc("/saves", s.handleSaves).Methods(http.MethodGet)
	r.HandleFunc("/saves/{slot}", s.handleSave).Methods(http.MethodGet)
	r.HandleFunc("/saves/{slot}/history", s.handleHistory).Methods(http.MethodGet)
	return r
}

// validSlot accepts short names of letters, digits, '-' and '_'
func validSlot(slot string) bool {
	if slot == "" || len(slot) > maxSlotLength {
		return false
	}
	for _, c := range slot {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}

// handleWS upgrades the request and starts a session
// ?slot= resumes or creates a named save; ?codec= picks json or msgpack
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	codecName := q.Get("codec")
	if codecName == "" {
		codecName = s.config.Codec
	}
	codec, err := CodecFor(codecName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	slot := q.Get("slot")
	if slot != "" && !validSlot(slot) {
		http.Error(w, "invalid slot", http.StatusBadRequest)
		return
	}
	if s.peers.Count() >= s.config.MaxSessions {
		s.statRejected.Add(1)
		http.Error(w, ErrServerFull.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[network] upgrade: %v", err)
		return
	}

	id := uuid.NewString()
	if slot == "" {
		slot = "session-" + id
	}
	saver := storage.NewSaver(s.store)
	saver.Start()
	sess := game.New(game.Config{
		ID:          id,
		FieldWidth:  s.config.FieldWidth,
		FieldHeight: s.config.FieldHeight,
		Slot:        slot,
		Store:       saver,
		Registry:    s.registry,
	})

	resumed := false
	switch data, err := s.store.Load(r.Context(), slot); {
	case err == nil:
		sess.Load(data)
		resumed = true
	case !errors.Is(err, storage.ErrNotFound):
		log.Printf("[network] %s load %q: %v", id, slot, err)
	}

	peer := newPeer(id, conn, codec, s.config)
	run := newRunner(peer, sess, saver, s.config)
	peer.Send(&Message{Type: MsgHello, Hello: &Hello{Session: id, Slot: slot, Resumed: resumed}})

	if err := s.peers.Add(peer, func(cmd Command) {
		s.statCommands.Add(1)
		run.enqueue(cmd)
	}); err != nil {
		s.statRejected.Add(1)
		peer.Close()
		saver.Stop()
		return
	}
	s.statConnections.Add(1)
	log.Printf("[network] %s connected from %s slot=%s codec=%s", id, peer.Addr, slot, codec.Name())

	s.runners.Add(1)
	core.Go(func() {
		defer s.runners.Done()
		run.run(s.ctx)
		log.Printf("[network] %s disconnected", id)
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"peers":   s.peers.Count(),
		"metrics": s.registry.Snapshot(),
	})
}

func (s *Server) handleSaves(w http.ResponseWriter, r *http.Request) {
	slots, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if slots == nil {
		slots = []storage.Slot{}
	}
	writeJSON(w, http.StatusOK, slots)
}

// handleSave returns the stored document verbatim
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	slot := mux.Vars(r)["slot"]
	if !validSlot(slot) {
		http.Error(w, "invalid slot", http.StatusBadRequest)
		return
	}
	data, err := s.store.Load(r.Context(), slot)
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	slot := mux.Vars(r)["slot"]
	h, ok := s.store.(storage.Historian)
	if !ok || !validSlot(slot) {
		http.NotFound(w, r)
		return
	}
	snaps, err := h.History(r.Context(), slot)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if snaps == nil {
		snaps = []storage.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[network] write json: %v", err)
	}
}
