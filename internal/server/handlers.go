package server

import (
	"errors"
	"net/http"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// contactRequest is the form-post body. Email format is checked here, on
// top of the presence check the controller does.
type contactRequest struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email" binding:"required,email"`
	Message string `json:"message" form:"message" binding:"required"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", s.index)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}

func (s *Server) handleContent(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Current())
}

func (s *Server) handleSections(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Current().Sections)
}

// handleContact runs one submission through a short-lived form controller,
// for clients without the socket.
func (s *Server) handleContact(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "error": err.Error()})
		return
	}

	form := contact.New(s.relay, s.opts.ContactOptions...)
	defer form.Close()
	_ = form.UpdateField(contact.FieldName, req.Name)
	_ = form.UpdateField(contact.FieldEmail, req.Email)
	_ = form.UpdateField(contact.FieldMessage, req.Message)

	err := form.Submit(c.Request.Context())
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": contact.StatusSuccess.String()})
	case errors.Is(err, contact.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"status": "invalid", "error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"status": contact.StatusError.String()})
	}
}

func (s *Server) handleSession(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		logging.Debug("WebSocket upgrade failed", zap.Error(err))
		return
	}

	sess, err := session.New(conn, s.store.Current(), s.relay, session.Options{
		ContactOptions: s.opts.ContactOptions,
		Dark:           s.opts.Dark,
	})
	if err != nil {
		logging.Error("Session setup failed", zap.Error(err))
		_ = conn.Close()
		return
	}
	remove := s.sessions.Add(sess)
	defer remove()

	logging.Debug("Session upgraded",
		zap.String("session", sess.ID()),
		zap.String("visitor", logging.Anonymize(c.ClientIP())),
	)
	if err := sess.Run(c.Request.Context()); err != nil {
		logging.Warn("Session ended with error", zap.String("session", sess.ID()), zap.Error(err))
	}
}
