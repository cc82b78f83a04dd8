package middleware

import (
	"net/http"
	"sync"
	"time"

	apperrors "bookstore-service/common/errors"
	"bookstore-service/common/logger"
	"bookstore-service/models"
	"bookstore-service/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	SessionCookieName = "bookstore_session"

	sessionContextKey = "session"
	managerContextKey = "session_manager"
)

// SessionManager loads the browser session before a handler runs and writes
// it back before the response leaves the server.
type SessionManager struct {
	store  session.Store
	codec  *session.Codec
	ttl    time.Duration
	secure bool
	logger *zap.Logger
}

func NewSessionManager(store session.Store, codec *session.Codec, ttl time.Duration, secure bool, logger *zap.Logger) *SessionManager {
	return &SessionManager{store: store, codec: codec, ttl: ttl, secure: secure, logger: logger}
}

// Middleware attaches the session to the request. A missing, forged or
// expired cookie yields a fresh session; an unreachable store yields a 503.
func (m *SessionManager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.load(c)
		if err != nil {
			m.logger.Error("Failed to load session", logger.RequestIDField(c.Request.Context()), zap.Error(err))
			_ = c.Error(apperrors.ServiceUnavailable(err))
			c.Abort()
			return
		}
		if err := m.setCookie(c, sess.ID); err != nil {
			_ = c.Error(apperrors.Internal(err))
			c.Abort()
			return
		}

		c.Set(sessionContextKey, sess)
		c.Set(managerContextKey, m)

		w := &sessionWriter{ResponseWriter: c.Writer}
		w.save = func() { m.save(c, sess) }
		c.Writer = w

		c.Next()

		w.flush()
	}
}

func (m *SessionManager) load(c *gin.Context) (*models.Session, error) {
	raw, err := c.Cookie(SessionCookieName)
	if err != nil || raw == "" {
		return models.NewSession(uuid.NewString()), nil
	}
	sid, err := m.codec.Decode(raw)
	if err != nil {
		m.logger.Debug("Discarding invalid session cookie", zap.Error(err))
		return models.NewSession(uuid.NewString()), nil
	}
	sess, err := m.store.Load(c.Request.Context(), sid)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return models.NewSession(uuid.NewString()), nil
	}
	return sess, nil
}

func (m *SessionManager) save(c *gin.Context, sess *models.Session) {
	if err := m.store.Save(c.Request.Context(), sess); err != nil {
		m.logger.Error("Failed to save session",
			logger.RequestIDField(c.Request.Context()),
			zap.String("session_id", sess.ID),
			zap.Error(err),
		)
	}
}

func (m *SessionManager) setCookie(c *gin.Context, sid string) error {
	token, err := m.codec.Encode(sid)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(m.ttl.Seconds()), "/", "", m.secure, true)
	return nil
}

// CurrentSession returns the session attached by Middleware. Outside of it a
// throwaway session is returned.
func CurrentSession(c *gin.Context) *models.Session {
	if v, ok := c.Get(sessionContextKey); ok {
		if sess, ok := v.(*models.Session); ok {
			return sess
		}
	}
	return models.NewSession("")
}

// RotateSession moves the current payload to a new id and drops the old one.
// Call it whenever the session identity changes.
func RotateSession(c *gin.Context) error {
	sess := CurrentSession(c)
	v, ok := c.Get(managerContextKey)
	if !ok {
		sess.ID = uuid.NewString()
		return nil
	}
	m := v.(*SessionManager)

	old := sess.ID
	sess.ID = uuid.NewString()
	if err := m.store.Delete(c.Request.Context(), old); err != nil {
		m.logger.Warn("Failed to delete rotated session", zap.String("session_id", old), zap.Error(err))
	}
	return m.setCookie(c, sess.ID)
}

// DestroySession clears identity and cart and issues a new session id.
func DestroySession(c *gin.Context) error {
	CurrentSession(c).Reset()
	return RotateSession(c)
}

// sessionWriter persists the session right before the first byte of the
// response is written, so a client following a redirect sees the new state.
type sessionWriter struct {
	gin.ResponseWriter
	once sync.Once
	save func()
}

func (w *sessionWriter) flush() {
	w.once.Do(w.save)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.flush()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) WriteString(s string) (int, error) {
	w.flush()
	return w.ResponseWriter.WriteString(s)
}

func (w *sessionWriter) WriteHeaderNow() {
	w.flush()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *sessionWriter) Flush() {
	w.flush()
	w.ResponseWriter.Flush()
}
