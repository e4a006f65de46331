// internal/devserver/server.go

// Package devserver is an in-memory implementation of the code sharing
// server contract, meant for local testing of the client.
package devserver

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type code struct {
	content  *string
	updateAt int64
}

// Server holds users (id => auth) and their current codes.
type Server struct {
	mu    sync.Mutex
	users map[int]string
	codes map[int]code
	now   func() time.Time
}

// New creates a server seeded with users.
func New(users map[int]string) *Server {
	s := &Server{
		users: make(map[int]string, len(users)),
		codes: make(map[int]code),
		now:   time.Now,
	}
	for id, auth := range users {
		s.users[id] = auth
	}
	return s
}

// AddUser registers or replaces a user.
func (s *Server) AddUser(id int, auth string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = auth
}

// SetCode stores content for id as if it had been uploaded at the given time.
func (s *Server) SetCode(id int, content string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := content
	s.codes[id] = code{content: &c, updateAt: at.Unix()}
}

// Router returns the HTTP handler for the contract.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.testConnection).Methods(http.MethodGet)
	r.HandleFunc("/code/get", s.getCode).Methods(http.MethodGet)
	r.HandleFunc("/code/patch", s.patchCode).Methods(http.MethodPatch)
	r.HandleFunc("/user/get", s.getUser).Methods(http.MethodGet)
	return r
}

func (s *Server) testConnection(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r); !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getCode(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r); !ok {
		return
	}
	follow, err := strconv.Atoi(r.URL.Query().Get("follow_user_id"))
	if err != nil {
		http.Error(w, "invalid follow_user_id", http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	_, exists := s.users[follow]
	c, has := s.codes[follow]
	s.mu.Unlock()

	if !exists {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}

	out := map[string]any{"content": nil, "update_at": nil}
	if has {
		out["content"] = c.content
		out["update_at"] = c.updateAt
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) patchCode(w http.ResponseWriter, r *http.Request) {
	id, ok := s.authorize(w, r)
	if !ok {
		return
	}

	var body struct {
		Content *string `json:"content"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	s.codes[id] = code{content: body.Content, updateAt: s.now().Unix()}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authorize(w, r); !ok {
		return
	}
	check, err := strconv.Atoi(r.URL.Query().Get("check_id"))
	if err != nil {
		http.Error(w, "invalid check_id", http.StatusUnprocessableEntity)
		return
	}

	s.mu.Lock()
	_, exists := s.users[check]
	s.mu.Unlock()

	if !exists {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"id": check})
}

// authorize checks the id/auth query credentials.
func (s *Server) authorize(w http.ResponseWriter, r *http.Request) (int, bool) {
	q := r.URL.Query()
	id, err := strconv.Atoi(q.Get("id"))
	if err != nil {
		http.Error(w, "forbidden", http.StatusForbidden)
		return 0, false
	}

	s.mu.Lock()
	auth, ok := s.users[id]
	s.mu.Unlock()

	if !ok || auth != q.Get("auth") {
		http.Error(w, "forbidden", http.StatusForbidden)
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
