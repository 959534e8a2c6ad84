package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/trie"
	"github.com/kumarlokesh/sysd/exercises/rune-trie/internal/wordset"
)

// maxSnapshotSize caps the body accepted by PUT /snapshot/{root}
const maxSnapshotSize = 16 << 20

// Server exposes a word set over HTTP. The set is not safe for concurrent
// use, so every handler goes through mu: lookups share the read lock and
// insert/remove take the write lock.
type Server struct {
	mu     sync.RWMutex
	words  *wordset.Set
	server *http.Server
}

// NewServer creates a new API server for set
func NewServer(addr string, set *wordset.Set) *Server {
	s := &Server{
		words: set,
	}

	r := mux.NewRouter()
	r.Use(logRequests)

	r.HandleFunc("/words", s.listWords).Methods(http.MethodGet)
	r.HandleFunc("/words/{word:.+}", s.putWord).Methods(http.MethodPut)
	r.HandleFunc("/words/{word:.+}", s.getWord).Methods(http.MethodGet)
	r.HandleFunc("/words/{word:.+}", s.deleteWord).Methods(http.MethodDelete)
	r.HandleFunc("/stats", s.stats).Methods(http.MethodGet)
	r.HandleFunc("/snapshot/{root}", s.snapshot).Methods(http.MethodGet)
	r.HandleFunc("/snapshot/{root}", s.restore).Methods(http.MethodPut)

	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens on the configured address and serves until ctx is cancelled,
// then shuts the server down gracefully.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	log.Info().Str("addr", listener.Addr().String()).Msg("Server listening")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("server error: %w", err)
		}
		close(errChan)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("Shutting down server")
	return s.server.Shutdown(ctx)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("Handled request")
	})
}

func (s *Server) respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Error().Err(err).Msg("Failed to encode response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respond(w, status, ErrorResponse{Error: err.Error()})
}

// listWords handles GET /words?prefix=
func (s *Server) listWords(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")

	s.mu.RLock()
	words := s.words.Complete(prefix)
	s.mu.RUnlock()

	if words == nil {
		words = []string{}
	}
	s.respond(w, http.StatusOK, WordsResponse{Prefix: prefix, Words: words})
}

func (s *Server) putWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]

	s.mu.Lock()
	added, err := s.words.Insert(word)
	s.mu.Unlock()

	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
		log.Info().Str("word", word).Msg("Word added")
	}
	s.respond(w, status, WordResponse{Word: word, Found: true, Added: added})
}

func (s *Server) getWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]

	s.mu.RLock()
	found := s.words.Contains(word)
	s.mu.RUnlock()

	if !found {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("word %q not found", word))
		return
	}
	s.respond(w, http.StatusOK, WordResponse{Word: word, Found: true})
}

func (s *Server) deleteWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]

	s.mu.Lock()
	removed := s.words.Remove(word)
	s.mu.Unlock()

	if !removed {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("word %q not found", word))
		return
	}
	log.Info().Str("word", word).Msg("Word removed")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	resp := StatsResponse{
		Words: s.words.Len(),
		Nodes: s.words.Size(),
		Roots: s.words.Roots(),
	}
	s.mu.RUnlock()

	s.respond(w, http.StatusOK, resp)
}

func rootKey(r *http.Request) (rune, error) {
	root := mux.Vars(r)["root"]
	if !utf8.ValidString(root) || utf8.RuneCountInString(root) != 1 {
		return 0, fmt.Errorf("root must be a single character, got %q", root)
	}
	key, _ := utf8.DecodeRuneInString(root)
	return key, nil
}

// snapshot handles GET /snapshot/{root} and returns the binary encoding of
// the trie for one leading rune.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) {
	key, err := rootKey(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	root := string(key)

	s.mu.RLock()
	var data []byte
	t := s.words.Root(key)
	if t != nil {
		data, err = t.MarshalBinary()
	}
	s.mu.RUnlock()

	switch {
	case t == nil:
		s.respondError(w, http.StatusNotFound, fmt.Errorf("no words start with %q", root))
	case err != nil:
		s.respondError(w, http.StatusInternalServerError, err)
	default:
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

// restore handles PUT /snapshot/{root}: the body is a binary trie encoding
// that replaces the trie for that leading rune.
func (s *Server) restore(w http.ResponseWriter, r *http.Request) {
	key, err := rootKey(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotSize))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("failed to read request body: %w", err))
		return
	}
	t, err := trie.Decode(data)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	if t.Key() != key {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("snapshot is rooted at %q, not %q", t.Key(), key))
		return
	}

	s.mu.Lock()
	words := s.words.Restore(t)
	resp := StatsResponse{
		Words: s.words.Len(),
		Nodes: s.words.Size(),
		Roots: s.words.Roots(),
	}
	s.mu.Unlock()

	log.Info().Str("root", string(key)).Int("words", words).Msg("Snapshot restored")
	s.respond(w, http.StatusOK, resp)
}
