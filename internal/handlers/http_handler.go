package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Jaden827827/Quizz-game/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

type HTTPHandler struct {
	sessionService  *service.SessionService
	scoreService    *service.ScoreService
	questionService *service.QuestionService
	authHandler     *AuthHandler
	adminHandler    *AdminHandler
	auth            *SessionAuth
}

func NewHTTPHandler(
	sessionService *service.SessionService,
	scoreService *service.ScoreService,
	questionService *service.QuestionService,
	authHandler *AuthHandler,
	adminHandler *AdminHandler,
	auth *SessionAuth,
) *HTTPHandler {
	return &HTTPHandler{
		sessionService:  sessionService,
		scoreService:    scoreService,
		questionService: questionService,
		authHandler:     authHandler,
		adminHandler:    adminHandler,
		auth:            auth,
	}
}

type JoinSessionRequest struct {
	SessionCode string `json:"session_code"`
}

type SubmitAttemptRequest struct {
	QuestionID   uuid.UUID `json:"question_id"`
	ChosenAnswer string    `json:"chosen_answer"`
	ResponseTime float64   `json:"response_time_seconds"`
}

type BonusRequest struct {
	BonusCode string `json:"bonus_code"`
}

// CreateSession opens a fresh session and seats the caller as creator.
func (h *HTTPHandler) CreateSession(c *gin.Context) {
	result, err := h.sessionService.CreateSession(contextUserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// JoinSession admits the caller into an existing session, or re-routes
// them into a membership they already hold.
func (h *HTTPHandler) JoinSession(c *gin.Context) {
	var req JoinSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.sessionService.JoinSession(contextUserID(c), req.SessionCode)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *HTTPHandler) StartGame(c *gin.Context) {
	if err := h.sessionService.StartGame(c.Param("code")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game started"})
}

func (h *HTTPHandler) EndGame(c *gin.Context) {
	if err := h.sessionService.EndGame(c.Param("code")); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game ended"})
}

func (h *HTTPHandler) LeaveSession(c *gin.Context) {
	removed, err := h.sessionService.LeaveSession(contextUserID(c), c.Param("code"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

func (h *HTTPHandler) SubmitAttempt(c *gin.Context) {
	var req SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	attemptID, err := h.sessionService.SubmitAttempt(
		contextUserID(c),
		c.Param("code"),
		req.QuestionID,
		req.ChosenAnswer,
		req.ResponseTime,
	)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"attempt_id": attemptID})
}

func (h *HTTPHandler) ApplyBonus(c *gin.Context) {
	var req BonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.sessionService.ApplyBonus(contextUserID(c), c.Param("code"), req.BonusCode)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// SessionStatus returns the member counts used for view routing; the
// client redirects to results once finished == total.
func (h *HTTPHandler) SessionStatus(c *gin.Context) {
	stats, err := h.sessionService.SessionStatus(c.Param("code"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Standings is a display-only query: when the store is unreachable it
// degrades to an empty roster instead of failing the page.
func (h *HTTPHandler) Standings(c *gin.Context) {
	standings, err := h.scoreService.Standings(c.Param("code"))
	if err != nil {
		slog.Error("failed to compute standings", "session_code", c.Param("code"), "error", err)
		c.JSON(http.StatusOK, gin.H{"players": []service.Standing{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": standings})
}

func (h *HTTPHandler) SessionAccuracy(c *gin.Context) {
	pct, err := h.scoreService.SessionAccuracy(c.Param("code"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accuracy_percentage": pct})
}

func (h *HTTPHandler) SessionReview(c *gin.Context) {
	review, err := h.scoreService.SessionReview(c.Param("code"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": review})
}

func (h *HTTPHandler) Leaderboard(c *gin.Context) {
	entries, err := h.scoreService.Leaderboard()
	if err != nil {
		slog.Error("failed to build leaderboard", "error", err)
		c.JSON(http.StatusOK, gin.H{"sessions": []service.LeaderboardEntry{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": entries})
}

// NextQuestion serves a random question for play. The correct option and
// explanation stay server-side until the review endpoint.
func (h *HTTPHandler) NextQuestion(c *gin.Context) {
	question, err := h.questionService.RandomQuestion()
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question_id": question.ID,
		"text":        question.Text,
		"option_a":    question.OptionA,
		"option_b":    question.OptionB,
		"option_c":    question.OptionC,
		"option_d":    question.OptionD,
	})
}

// SessionQR renders the session code as a PNG QR for scanning on the join
// screen.
func (h *HTTPHandler) SessionQR(c *gin.Context) {
	code := c.Param("code")

	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

func (h *HTTPHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidSessionCode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrSessionFull),
		errors.Is(err, service.ErrSessionEnded),
		errors.Is(err, service.ErrSessionInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPlayerNotInSession),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong, please try again"})
	}
}

func (h *HTTPHandler) RegisterRoutes(r *gin.Engine) {
	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := r.Group("/api")
	{
		api.POST("/register", h.authHandler.Register)
		api.POST("/login", h.authHandler.Login)
		api.POST("/logout", h.authHandler.Logout)
		api.GET("/leaderboard", h.Leaderboard)
	}

	game := api.Group("/sessions", h.auth.RequireAuth())
	{
		game.POST("", h.CreateSession)
		game.POST("/join", h.JoinSession)
		game.GET("/:code/status", h.SessionStatus)
		game.GET("/:code/standings", h.Standings)
		game.GET("/:code/accuracy", h.SessionAccuracy)
		game.GET("/:code/review", h.SessionReview)
		game.GET("/:code/qr", h.SessionQR)
		game.GET("/:code/question", h.NextQuestion)
		game.POST("/:code/start", h.StartGame)
		game.POST("/:code/end", h.EndGame)
		game.POST("/:code/leave", h.LeaveSession)
		game.POST("/:code/attempts", h.SubmitAttempt)
		game.POST("/:code/bonus", h.ApplyBonus)
	}

	admin := api.Group("/admin", h.auth.RequireAuth(), h.auth.RequireAdmin())
	{
		admin.GET("/users", h.adminHandler.ListUsers)
		admin.DELETE("/users/:id", h.adminHandler.DeleteUser)
		admin.GET("/questions", h.adminHandler.ListQuestions)
		admin.POST("/questions", h.adminHandler.CreateQuestion)
		admin.DELETE("/questions/:id", h.adminHandler.DeleteQuestion)
	}
}
