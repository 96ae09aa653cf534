package httpserver

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/techhubpro/storefront/internal/domain"
	"github.com/techhubpro/storefront/internal/usecase"
)

const sessionCookie = "storefront_session"

// sessionRegistry maps the session cookie to each shopper's state container.
// Each Session is its own single logical owner; the registry lock only guards
// the map itself.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*usecase.Session
	catalog  []domain.Product
	perPage  int
}

func newSessionRegistry(catalog []domain.Product, perPage int) *sessionRegistry {
	return &sessionRegistry{
		sessions: make(map[string]*usecase.Session),
		catalog:  catalog,
		perPage:  perPage,
	}
}

func (reg *sessionRegistry) get(id string) *usecase.Session {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if sess, ok := reg.sessions[id]; ok {
		return sess
	}
	sess := usecase.NewSession(reg.catalog, reg.perPage)
	reg.sessions[id] = sess
	return sess
}

// session resolves the caller's session, minting a cookie on first contact.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *usecase.Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		id = c.Value
	} else {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s.sessions.get(id)
}
