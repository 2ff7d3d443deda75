// Package session hosts one visitor's page state over a WebSocket.
//
// A Session pairs a navigation.Controller and a contact.Controller with a
// browser tab. Visibility reports, navigation clicks, keystrokes and submit
// presses arrive as JSON frames; every state change the controllers publish
// is pushed back as a frame. Inbound frames are handled one at a time by the
// read loop. Submissions run beside it so the page stays live while a
// message is sending.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/Zachkp/portfolio/internal/navigation"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size; a contact message is the largest payload.
	maxMessageSize = 32 << 10

	outboundBuffer = 64
)

// Options tune a Session.
type Options struct {
	// ContactOptions are passed to the session's contact.Controller.
	ContactOptions []contact.Option
	// Dark is the initial theme.
	Dark bool
}

// Session is one connected browser tab.
type Session struct {
	id       string
	conn     *websocket.Conn
	sections []content.Section
	feed     *navigation.Feed
	nav      *navigation.Controller
	form     *contact.Controller
	log      *zap.Logger

	out  chan Outbound
	done chan struct{}

	mu   sync.Mutex
	dark bool

	submits   sync.WaitGroup
	closeOnce sync.Once
}

// New builds a session for conn over the sections of p. The session does
// nothing until Run.
func New(conn *websocket.Conn, p *content.Portfolio, relay contact.Relay, opts Options) (*Session, error) {
	s := &Session{
		id:       uuid.NewString(),
		conn:     conn,
		sections: append([]content.Section(nil), p.Sections...),
		feed:     navigation.NewFeed(),
		out:      make(chan Outbound, outboundBuffer),
		done:     make(chan struct{}),
		dark:     opts.Dark,
	}
	s.log = logging.Named("session").With(zap.String("session", s.id))

	nav, err := navigation.New(p.SectionIDs(), navigation.ScrollFunc(s.scrollTo))
	if err != nil {
		return nil, err
	}
	s.nav = nav
	s.form = contact.New(relay, opts.ContactOptions...)

	s.nav.Subscribe(func(active string) {
		s.send(Outbound{Type: TypeNav, Active: active})
	})
	s.form.Subscribe(func(st contact.State) {
		s.send(Outbound{Type: TypeForm, Form: &st})
	})
	return s, nil
}

// ID identifies the session in logs and in the hello frame.
func (s *Session) ID() string {
	return s.id
}

// Run serves the connection until the peer goes away, ctx is cancelled or
// Close is called. Both controllers are disposed before Run returns.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var writer sync.WaitGroup
	writer.Add(1)
	go func() {
		defer writer.Done()
		s.writeLoop()
	}()

	defer func() {
		cancel()
		_ = s.nav.Close()
		s.submits.Wait()
		_ = s.form.Close()
		s.feed.Close()
		s.Close()
		writer.Wait()
		s.log.Info("Session closed")
	}()

	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()

	if err := s.nav.ObserveSections(ctx, s.feed); err != nil {
		return err
	}
	s.log.Info("Session opened", zap.Int("sections", len(s.sections)))
	s.send(s.hello())

	return s.readLoop(ctx)
}

func (s *Session) hello() Outbound {
	st := s.form.State()
	dark := s.isDark()
	return Outbound{
		Type:     TypeHello,
		Session:  s.id,
		Sections: s.sections,
		Active:   s.nav.Active(),
		Dark:     &dark,
		Form:     &st,
	}
}

func (s *Session) readLoop(ctx context.Context) error {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("Connection closed unexpectedly", zap.Error(err))
			}
			return nil
		}
		var msg Inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			s.notice(NoticeBadMessage)
			continue
		}
		s.handle(ctx, msg)
	}
}

// handle applies one inbound frame.
func (s *Session) handle(ctx context.Context, msg Inbound) {
	switch msg.Type {
	case TypeVisibility:
		s.feed.Publish(navigation.VisibilityEvent{
			SectionID:    msg.Section,
			Ratio:        msg.Ratio,
			Intersecting: msg.Intersecting,
		})
	case TypeNavigate:
		s.nav.NavigateTo(msg.Section)
	case TypeField:
		if err := s.form.UpdateField(msg.Name, msg.Value); errors.Is(err, contact.ErrUnknownField) {
			s.notice(NoticeUnknownField)
		}
	case TypeSubmit:
		s.submits.Add(1)
		go func() {
			defer s.submits.Done()
			s.submit(ctx)
		}()
	case TypeTheme:
		if msg.Dark == nil {
			s.notice(NoticeBadMessage)
			return
		}
		s.mu.Lock()
		s.dark = *msg.Dark
		s.mu.Unlock()
		dark := *msg.Dark
		s.send(Outbound{Type: TypeTheme, Dark: &dark})
	default:
		s.notice(NoticeBadMessage)
	}
}

func (s *Session) submit(ctx context.Context) {
	err := s.form.Submit(ctx)
	switch {
	case errors.Is(err, contact.ErrValidation):
		s.notice(NoticeValidation)
	case errors.Is(err, contact.ErrBusy):
		s.notice(NoticeBusy)
	}
}

func (s *Session) scrollTo(sectionID string) error {
	s.send(Outbound{Type: TypeScroll, Section: sectionID})
	return nil
}

func (s *Session) notice(code string) {
	s.send(Outbound{Type: TypeNotice, Code: code})
}

func (s *Session) isDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// send queues a frame. Frames queued after the session ends are dropped.
func (s *Session) send(msg Outbound) {
	select {
	case s.out <- msg:
	case <-s.done:
	}
}

func (s *Session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case msg := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				s.log.Debug("Write failed", zap.Error(err))
				s.Close()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}
		}
	}
}

// Close ends the session. Run performs the teardown and returns.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		_ = s.conn.Close()
	})
}
