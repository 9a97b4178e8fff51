// Package apitest runs an in-process stand-in for the event-management auth
// API. It speaks the same routes and JSON shapes as the real service, so
// client, form and CLI tests can exercise full request/response cycles.
package apitest

import (
	"io"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/render"
	"github.com/google/uuid"
)

const (
	LoginPath    = "/api/auth/login"
	RegisterPath = "/api/auth/register"
	ResetPath    = "/api/auth/send-reset-password-link"
)

// User is an account known to the fake service.
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
	Avatar    string
}

// Registration records what the service received on the register route.
type Registration struct {
	ContentType string
	Fields      map[string]string
	AvatarName  string
	AvatarType  string
	AvatarData  []byte
}

type Server struct {
	*httptest.Server

	secret []byte

	mu            sync.Mutex
	users         map[string]User
	overrides     map[string]http.HandlerFunc
	calls         map[string]int
	registrations []Registration
	resets        []string
	requestIDs    []string
}

// NewServer starts the fake service. Close it with t.Cleanup(s.Close).
func NewServer() *Server {
	s := &Server{
		secret:    []byte("apitest-secret"),
		users:     make(map[string]User),
		overrides: make(map[string]http.HandlerFunc),
		calls:     make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST "+LoginPath, s.route(LoginPath, s.login))
	mux.HandleFunc("POST "+RegisterPath, s.route(RegisterPath, s.register))
	mux.HandleFunc("POST "+ResetPath, s.route(ResetPath, s.reset))

	s.Server = httptest.NewServer(mux)
	return s
}

// AddUser seeds an account. An empty ID is generated.
func (s *Server) AddUser(u User) User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[strings.ToLower(u.Email)] = u
	return u
}

// Override replaces the handler of path until the server is closed.
func (s *Server) Override(path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[path] = h
}

// Reject makes path answer with status and, when message is non-empty, a
// {"message": message} body.
func (s *Server) Reject(path string, status int, message string) {
	s.Override(path, func(w http.ResponseWriter, r *http.Request) {
		if message == "" {
			w.WriteHeader(status)
			return
		}
		render.Status(r, status)
		render.JSON(w, r, render.M{"message": message})
	})
}

// Calls reports how many requests reached path.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

func (s *Server) Registrations() []Registration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Registration(nil), s.registrations...)
}

func (s *Server) ResetRequests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.resets...)
}

func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

// ParseToken verifies a token issued by this server and returns its claims.
func (s *Server) ParseToken(token string) (*Claims, error) {
	return ParseToken(token, s.secret)
}

func (s *Server) route(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[path]++
		s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-ID"))
		override := s.overrides[path]
		s.mu.Unlock()

		if override != nil {
			override(w, r)
			return
		}
		next(w, r)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	u, ok := s.users[strings.ToLower(req.Email)]
	s.mu.Unlock()
	if !ok || u.Password != req.Password {
		writeMessage(w, r, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := s.issueToken(u)
	if err != nil {
		writeMessage(w, r, http.StatusInternalServerError, "Token error")
		return
	}

	render.JSON(w, r, render.M{
		"message": "Login successful",
		"data": render.M{
			"token":     token,
			"_id":       u.ID,
			"firstName": u.FirstName,
			"lastName":  u.LastName,
			"email":     u.Email,
			"role":      u.Role,
			"avatar":    u.Avatar,
		},
	})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	reg, err := readRegistration(r)
	if err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.ToLower(reg.Fields["email"])

	s.mu.Lock()
	s.registrations = append(s.registrations, reg)
	_, exists := s.users[email]
	s.mu.Unlock()

	if exists {
		writeMessage(w, r, http.StatusConflict, "User already exists")
		return
	}

	first, last, _ := strings.Cut(strings.TrimSpace(reg.Fields["name"]), " ")
	u := User{
		FirstName: first,
		LastName:  strings.TrimSpace(last),
		Email:     reg.Fields["email"],
		Password:  reg.Fields["password"],
		Role:      reg.Fields["role"],
	}
	if reg.AvatarName != "" {
		u.Avatar = "/uploads/" + reg.AvatarName
	}
	u = s.AddUser(u)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, render.M{
		"message": "User created successfully",
		"data": render.M{
			"_id":       u.ID,
			"firstName": u.FirstName,
			"lastName":  u.LastName,
			"email":     u.Email,
			"role":      u.Role,
			"avatar":    u.Avatar,
		},
	})
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		writeMessage(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	s.resets = append(s.resets, req.Email)
	_, ok := s.users[strings.ToLower(req.Email)]
	s.mu.Unlock()

	if !ok {
		writeMessage(w, r, http.StatusNotFound, "User not found")
		return
	}
	render.JSON(w, r, render.M{"message": "Reset link sent"})
}

func (s *Server) issueToken(u User) (string, error) {
	return GenerateToken(u.ID, u.Role, s.secret, time.Hour)
}

func readRegistration(r *http.Request) (Registration, error) {
	ct := r.Header.Get("Content-Type")
	reg := Registration{ContentType: ct, Fields: make(map[string]string)}

	mediaType, _, _ := mime.ParseMediaType(ct)
	if mediaType != "multipart/form-data" {
		var body map[string]string
		if err := render.DecodeJSON(r.Body, &body); err != nil {
			return reg, err
		}
		reg.Fields = body
		return reg, nil
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		return reg, err
	}
	for k, v := range r.MultipartForm.Value {
		if len(v) > 0 {
			reg.Fields[k] = v[0]
		}
	}
	if files := r.MultipartForm.File["avatar"]; len(files) > 0 {
		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			return reg, err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return reg, err
		}
		reg.AvatarName = fh.Filename
		reg.AvatarType = fh.Header.Get("Content-Type")
		reg.AvatarData = data
	}
	return reg, nil
}

func writeMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, render.M{"message": message})
}
