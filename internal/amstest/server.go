package amstest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Server is an in-memory stand-in for the AMS, identity and HR services. It
// reproduces the CollectionSource contract the console consumes: paged GET
// with X-Total-Count/X-Total-Pages headers, unpaginated GET, POST/PUT/DELETE
// and {errors:{field:[...]}} validation bodies. Package tests drive it via
// httptest; cmd/amsmock serves it for local development.
type Server struct {
	mu          sync.Mutex
	collections map[string][]map[string]interface{}
	required    map[string][]string
	failures    map[string]int
	nextID      int64
	secret      string
	router      *chi.Mux
}

// NewServer creates an empty fake service.
func NewServer() *Server {
	s := &Server{
		collections: map[string][]map[string]interface{}{},
		required:    map[string][]string{},
		failures:    map[string]int{},
		nextID:      1,
		secret:      "amstest-secret",
	}

	r := chi.NewRouter()
	r.Post("/auth/login", s.login)
	r.Route("/{collection}", func(r chi.Router) {
		r.Get("/", s.list)
		r.Post("/", s.create)
		r.Get("/{id}", s.get)
		r.Put("/{id}", s.update)
		r.Delete("/{id}", s.remove)
	})
	s.router = r
	return s
}

// Handler returns the service's router.
func (s *Server) Handler() http.Handler { return s.router }

// Seed inserts rows into a collection, assigning ids where missing.
// Collection names are the URL path without the leading slash.
func (s *Server) Seed(collection string, rows ...map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		if _, ok := row["id"]; !ok {
			row["id"] = s.nextID
			s.nextID++
		} else if id := toID(row["id"]); id >= s.nextID {
			s.nextID = id + 1
		}
		s.collections[collection] = append(s.collections[collection], row)
	}
}

// Require sets the non-empty string fields POST/PUT validate for a
// collection. The default is "name".
func (s *Server) Require(collection string, fields ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.required[collection] = fields
}

// FailWith makes every request against a collection answer with status
// until Restore is called. Used to exercise failure isolation.
func (s *Server) FailWith(collection string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[collection] = status
}

// Restore clears a forced failure.
func (s *Server) Restore(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, collection)
}

// Rows returns a copy of a collection's current rows, ordered by id.
func (s *Server) Rows(collection string) []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]map[string]interface{}, len(s.collections[collection]))
	copy(rows, s.collections[collection])
	sort.Slice(rows, func(i, j int) bool { return toID(rows[i]["id"]) < toID(rows[j]["id"]) })
	return rows
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	coll := chi.URLParam(r, "collection")

	s.mu.Lock()
	if status, ok := s.failures[coll]; ok {
		s.mu.Unlock()
		writeJSON(w, status, map[string]string{"title": coll + " unavailable"})
		return
	}
	rows := make([]map[string]interface{}, len(s.collections[coll]))
	copy(rows, s.collections[coll])
	s.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool { return toID(rows[i]["id"]) < toID(rows[j]["id"]) })

	q := r.URL.Query()
	if search := strings.TrimSpace(q.Get("search")); search != "" {
		filtered := rows[:0:0]
		for _, row := range rows {
			if rowMatches(row, search) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if page > 0 && pageSize > 0 {
		total := len(rows)
		totalPages := (total + pageSize - 1) / pageSize
		if totalPages < 1 {
			totalPages = 1
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		w.Header().Set("X-Total-Pages", strconv.Itoa(totalPages))

		start := (page - 1) * pageSize
		if start > total {
			start = total
		}
		end := start + pageSize
		if end > total {
			end = total
		}
		rows = rows[start:end]
	}

	if rows == nil {
		rows = []map[string]interface{}{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	coll := chi.URLParam(r, "collection")
	id := toID(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.collections[coll] {
		if toID(row["id"]) == id {
			writeJSON(w, http.StatusOK, row)
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	coll := chi.URLParam(r, "collection")

	var in map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if errs := s.validate(coll, in); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	s.mu.Lock()
	in["id"] = s.nextID
	s.nextID++
	s.collections[coll] = append(s.collections[coll], in)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, in)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	coll := chi.URLParam(r, "collection")
	id := toID(chi.URLParam(r, "id"))

	var in map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if errs := s.validate(coll, in); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, row := range s.collections[coll] {
		if toID(row["id"]) == id {
			in["id"] = row["id"]
			s.collections[coll][i] = in
			writeJSON(w, http.StatusOK, in)
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	coll := chi.URLParam(r, "collection")
	id := toID(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, row := range s.collections[coll] {
		if toID(row["id"]) == id {
			s.collections[coll] = append(s.collections[coll][:i], s.collections[coll][i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(in.Username) == "" || strings.TrimSpace(in.Password) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"errors": map[string][]string{"username": {"username and password are required"}},
		})
		return
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   in.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		Issuer:    "amstest",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// validate checks the collection's required string fields, trimmed.
func (s *Server) validate(coll string, in map[string]interface{}) map[string][]string {
	s.mu.Lock()
	fields, ok := s.required[coll]
	s.mu.Unlock()
	if !ok {
		fields = []string{"name"}
	}

	errs := map[string][]string{}
	for _, f := range fields {
		v, _ := in[f].(string)
		if strings.TrimSpace(v) == "" {
			errs[f] = append(errs[f], "must not be empty")
		}
	}
	return errs
}

// rowMatches reports whether any string value of row contains needle,
// case-insensitively. Mirrors the server-side filter of the real services.
func rowMatches(row map[string]interface{}, needle string) bool {
	needle = strings.ToLower(needle)
	for _, v := range row {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// toID normalizes the id representations that show up in decoded JSON and
// URL params.
func toID(v interface{}) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int:
		return int64(x)
	case float64:
		return int64(x)
	case json.Number:
		n, _ := x.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(x, 10, 64)
		return n
	default:
		n, _ := strconv.ParseInt(fmt.Sprint(v), 10, 64)
		return n
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
