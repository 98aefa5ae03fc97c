package sessions

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName   = "storefront-session"
	profileIDSessionKey = "profileID"
)

// ProfileStore scopes all cart-pipeline state to an anonymous shopper
// profile. The profile ID lives in a cookie session and namespaces the
// profile's keys in local storage; there is no server-side account.
type ProfileStore interface {
	ProfileID(w http.ResponseWriter, r *http.Request) (string, error)
	ClearSession(w http.ResponseWriter, r *http.Request) error
}

type CookieProfileStore struct {
	store *sessions.CookieStore
}

func NewCookieProfileStore(keyPairs ...[]byte) *CookieProfileStore {
	store := sessions.NewCookieStore(keyPairs...)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieProfileStore{store: store}
}

// ProfileID returns the session's profile ID, minting and saving a new
// one on first visit.
func (c *CookieProfileStore) ProfileID(w http.ResponseWriter, r *http.Request) (string, error) {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil {
		log.Printf("ProfileID: error getting session: %v", err)
	}

	if id, ok := session.Values[profileIDSessionKey].(string); ok && id != "" {
		return id, nil
	}

	newID := uuid.New().String()
	session.Values[profileIDSessionKey] = newID
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return newID, nil
}

func (c *CookieProfileStore) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, err := c.store.Get(r, sessionCookieName)
	if err != nil || session == nil {
		return err
	}
	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1
	return session.Save(r, w)
}
