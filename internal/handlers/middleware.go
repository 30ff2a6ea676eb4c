package handlers

import (
	"net/http"

	"github.com/Jaden827827/Quizz-game/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const sessionCookieName = "quizz-session"

// SessionAuth carries authenticated identity in a signed cookie session.
type SessionAuth struct {
	store      *sessions.CookieStore
	adminEmail string
}

func NewSessionAuth(secret, adminEmail string) *SessionAuth {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
	}

	return &SessionAuth{
		store:      store,
		adminEmail: adminEmail,
	}
}

// SetUser records the logged-in user in the cookie session.
func (a *SessionAuth) SetUser(c *gin.Context, user *models.User) error {
	session, _ := a.store.Get(c.Request, sessionCookieName)
	session.Values["user_id"] = user.ID.String()
	session.Values["user_name"] = user.Name
	session.Values["is_admin"] = user.Email == a.adminEmail
	return session.Save(c.Request, c.Writer)
}

// Clear drops the cookie session.
func (a *SessionAuth) Clear(c *gin.Context) error {
	session, _ := a.store.Get(c.Request, sessionCookieName)
	session.Options.MaxAge = -1
	return session.Save(c.Request, c.Writer)
}

func (a *SessionAuth) currentUser(c *gin.Context) (uuid.UUID, string, bool) {
	session, err := a.store.Get(c.Request, sessionCookieName)
	if err != nil {
		return uuid.Nil, "", false
	}

	rawID, ok := session.Values["user_id"].(string)
	if !ok {
		return uuid.Nil, "", false
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, "", false
	}

	name, _ := session.Values["user_name"].(string)
	return userID, name, true
}

func (a *SessionAuth) isAdmin(c *gin.Context) bool {
	session, err := a.store.Get(c.Request, sessionCookieName)
	if err != nil {
		return false
	}
	admin, _ := session.Values["is_admin"].(bool)
	return admin
}

// RequireAuth rejects unauthenticated requests and stashes the identity in
// the gin context for the handlers downstream.
func (a *SessionAuth) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, userName, ok := a.currentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Please login first"})
			return
		}

		c.Set("user_id", userID)
		c.Set("user_name", userName)
		c.Next()
	}
}

func (a *SessionAuth) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.isAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

func contextUserID(c *gin.Context) uuid.UUID {
	userID, _ := c.MustGet("user_id").(uuid.UUID)
	return userID
}
