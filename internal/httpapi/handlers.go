package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/extract"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/models"
	"github.com/gin-gonic/gin"
)

// Chatbot is the message-level facade served by the API.
type Chatbot interface {
	Signup(ctx context.Context, identity, secret string) (string, error)
	Login(ctx context.Context, identity, secret string) (string, error)
	Logout(ctx context.Context, identity string) string
	Ask(ctx context.Context, identity string, doc extract.Document, question string) (string, error)
}

type Admin interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListDocuments(ctx context.Context) ([]models.DocumentSummary, error)
}

type Options struct {
	MaxUploadBytes int64
	// Health is called by GET /healthz; nil always reports ok.
	Health func(ctx context.Context) error
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type credentialsForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type logoutForm struct {
	Email string `form:"email" binding:"required"`
}

type userView struct {
	Identity string `json:"identity"`
	Secret   []byte `json:"secret"`
}

type documentView struct {
	ID         int64  `json:"id"`
	Owner      string `json:"owner"`
	Name       string `json:"name"`
	TextLength int64  `json:"text_length"`
}

type handler struct {
	bot    Chatbot
	admin  Admin
	opts   Options
	logger logging.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(bot Chatbot, admin Admin, opts Options, l logging.Logger) *gin.Engine {
	h := &handler{bot: bot, admin: admin, opts: opts, logger: l.With("module", "http_api")}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(h.logger))
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	r.GET("/healthz", h.health)
	r.POST("/signup", h.signup)
	r.POST("/login", h.login)
	r.POST("/logout", h.logout)
	r.POST("/chat", h.chat)

	adminRoutes := r.Group("/admin")
	adminRoutes.GET("/users", h.listUsers)
	adminRoutes.GET("/documents", h.listDocuments)

	return r
}

func (h *handler) health(c *gin.Context) {
	if h.opts.Health != nil {
		if err := h.opts.Health(c.Request.Context()); err != nil {
			h.logger.Error(c.Request.Context(), "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) signup(c *gin.Context) {
	var req credentialsForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "email and password are required"})
		return
	}
	msg, err := h.bot.Signup(c.Request.Context(), req.Email, req.Password)
	h.reply(c, msg, err)
}

func (h *handler) login(c *gin.Context) {
	var req credentialsForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "email and password are required"})
		return
	}
	msg, err := h.bot.Login(c.Request.Context(), req.Email, req.Password)
	h.reply(c, msg, err)
}

func (h *handler) logout(c *gin.Context) {
	var req logoutForm
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "email is required"})
		return
	}
	h.reply(c, h.bot.Logout(c.Request.Context(), req.Email), nil)
}

func (h *handler) chat(c *gin.Context) {
	if h.opts.MaxUploadBytes > 0 {
		if c.Request.ContentLength > h.opts.MaxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "upload too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
	}

	header, err := c.FormFile("document")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: "upload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "document file is required"})
		return
	}

	email, question := c.PostForm("email"), c.PostForm("question")
	if email == "" {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "email is required"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid document"})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid document"})
		return
	}

	msg, err := h.bot.Ask(c.Request.Context(), email, extract.Document{Name: header.Filename, Content: content}, question)
	h.reply(c, msg, err)
}

func (h *handler) listUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, userView{Identity: u.Identity, Secret: u.Secret})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) listDocuments(c *gin.Context) {
	docs, err := h.admin.ListDocuments(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]documentView, 0, len(docs))
	for _, d := range docs {
		out = append(out, documentView{ID: d.ID, Owner: d.Owner, Name: d.Name, TextLength: d.TextLength})
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) reply(c *gin.Context, msg string, err error) {
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: msg})
}

func (h *handler) fail(c *gin.Context, err error) {
	h.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	if errors.Is(err, common.ErrorStoreUnavailable) {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: common.ErrorStoreUnavailable.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, errorResponse{Error: common.ErrorInternal.Error()})
}
