package devbackend

import (
	"sync"
	"time"

	"github.com/DrakeDamon/Workout-tracker-phase-4/pkg"

	log "github.com/sirupsen/logrus"
)

const DefaultSessionTTL = 24 * 7 * time.Hour

type session struct {
	Token     string
	UserID    int
	CreatedAt time.Time
}

// SessionService keeps login sessions in memory; tokens are sent to clients in an HTTP-only cookie.
type SessionService struct {
	mutex    sync.Mutex
	ttl      time.Duration
	sessions map[string]*session
	// ability to inject random string generator func for tokens (for unit testing)
	RandStringFunc func(s int) (string, error)
}

func NewSessionService(ttl time.Duration) *SessionService {
	return &SessionService{
		ttl:            ttl,
		sessions:       make(map[string]*session),
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (ss *SessionService) Login(userID int, createdAt time.Time) (string, error) {
	token, err := ss.RandStringFunc(35)
	if err != nil {
		return "", err
	}

	ss.mutex.Lock()
	defer ss.mutex.Unlock()

	ss.sessions[token] = &session{
		Token:     token,
		UserID:    userID,
		CreatedAt: createdAt,
	}

	return token, nil
}

func (ss *SessionService) Logout(token string) bool {
	ss.mutex.Lock()
	defer ss.mutex.Unlock()

	if _, ok := ss.sessions[token]; !ok {
		return false
	}
	delete(ss.sessions, token)
	return true
}

// UserID returns the user owning a live session.
func (ss *SessionService) UserID(token string) (int, bool) {
	ss.mutex.Lock()
	defer ss.mutex.Unlock()

	s, ok := ss.sessions[token]
	if !ok {
		return 0, false
	}
	if time.Since(s.CreatedAt) > ss.ttl {
		delete(ss.sessions, token)
		return 0, false
	}
	return s.UserID, true
}

// ScanAndClean removes all expired sessions.
func (ss *SessionService) ScanAndClean() int {
	ss.mutex.Lock()
	defer ss.mutex.Unlock()

	if len(ss.sessions) == 0 {
		return 0
	}

	removed := 0
	for token, s := range ss.sessions {
		if time.Since(s.CreatedAt) > ss.ttl {
			log.Debugf("dev backend: cleaning expired session of user %d", s.UserID)
			delete(ss.sessions, token)
			removed++
		}
	}
	return removed
}
