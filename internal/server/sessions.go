package server

import (
	"net/http"

	"photo-hunt/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const sessionCookieName = "ph_session"

// sessionStore keeps the flash message and the team a browser picked for a game.
type sessionStore struct {
	db *gorm.DB
}

func newSessionStore(conn *gorm.DB) *sessionStore {
	return &sessionStore{db: conn}
}

func (s *sessionStore) SetFlash(w http.ResponseWriter, r *http.Request, message string) {
	if message == "" {
		return
	}
	record := s.load(s.ensureSessionID(w, r))
	record.Flash = message
	_ = s.db.Save(&record).Error
}

func (s *sessionStore) PopFlash(w http.ResponseWriter, r *http.Request) string {
	record := s.load(s.ensureSessionID(w, r))
	if record.Flash == "" {
		return ""
	}
	message := record.Flash
	record.Flash = ""
	_ = s.db.Save(&record).Error
	return message
}

func (s *sessionStore) SetTeam(w http.ResponseWriter, r *http.Request, gameID, teamID uint) error {
	record := s.load(s.ensureSessionID(w, r))
	record.GameID = gameID
	record.TeamID = teamID
	return s.db.Save(&record).Error
}

// GetTeam returns the remembered team for gameID, or 0.
func (s *sessionStore) GetTeam(w http.ResponseWriter, r *http.Request, gameID uint) uint {
	record := s.load(s.ensureSessionID(w, r))
	if record.GameID != gameID {
		return 0
	}
	return record.TeamID
}

func (s *sessionStore) load(id string) db.Session {
	var record db.Session
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		return db.Session{ID: id}
	}
	return record
}

func (s *sessionStore) ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if id := sessionIDFromResponse(w); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// sessionIDFromResponse reuses a cookie already issued earlier in the same request.
func sessionIDFromResponse(w http.ResponseWriter) string {
	for _, line := range w.Header().Values("Set-Cookie") {
		cookie, err := http.ParseSetCookie(line)
		if err == nil && cookie.Name == sessionCookieName {
			return cookie.Value
		}
	}
	return ""
}
