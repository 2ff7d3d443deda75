package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/relay"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRelay struct {
	mu   sync.Mutex
	err  error
	sent []relay.Submission
}

func (r *fakeRelay) Send(ctx context.Context, sub relay.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sub)
	return r.err
}

func (r *fakeRelay) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

type harness struct {
	t        *testing.T
	conn     *websocket.Conn
	registry *Registry
	ended    chan struct{}
}

func start(t *testing.T, r contact.Relay) *harness {
	t.Helper()
	h := &harness{t: t, registry: NewRegistry(), ended: make(chan struct{})}
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			return
		}
		s, err := New(conn, content.Default(), r, Options{
			Dark:           true,
			ContactOptions: []contact.Option{contact.WithResetDelay(50 * time.Millisecond)},
		})
		if err != nil {
			conn.Close()
			return
		}
		remove := h.registry.Add(s)
		defer remove()
		defer close(h.ended)
		_ = s.Run(req.Context())
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	h.conn = conn
	return h
}

func (h *harness) write(v any) {
	h.t.Helper()
	require.NoError(h.t, h.conn.WriteJSON(v))
}

func (h *harness) read() Outbound {
	h.t.Helper()
	require.NoError(h.t, h.conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Outbound
	require.NoError(h.t, h.conn.ReadJSON(&msg))
	return msg
}

// until reads frames until one satisfies match.
func (h *harness) until(match func(Outbound) bool) Outbound {
	h.t.Helper()
	for i := 0; i < 50; i++ {
		if msg := h.read(); match(msg) {
			return msg
		}
	}
	h.t.Fatal("expected frame never arrived")
	return Outbound{}
}

func ofType(typ string) func(Outbound) bool {
	return func(m Outbound) bool { return m.Type == typ }
}

func formStatus(status contact.Status) func(Outbound) bool {
	return func(m Outbound) bool { return m.Type == TypeForm && m.Form.Status == status }
}

func TestHello(t *testing.T) {
	h := start(t, &fakeRelay{})

	hello := h.read()
	assert.Equal(t, TypeHello, hello.Type)
	assert.NotEmpty(t, hello.Session)
	assert.Equal(t, content.Default().Sections, hello.Sections)
	assert.Equal(t, "home", hello.Active)
	require.NotNil(t, hello.Dark)
	assert.True(t, *hello.Dark)
	require.NotNil(t, hello.Form)
	assert.Equal(t, contact.State{}, *hello.Form)
}

func TestNavigateSendsActiveThenScroll(t *testing.T) {
	h := start(t, &fakeRelay{})
	h.read()

	h.write(Inbound{Type: TypeNavigate, Section: "work"})

	nav := h.read()
	assert.Equal(t, Outbound{Type: TypeNav, Active: "work"}, nav)
	scroll := h.read()
	assert.Equal(t, Outbound{Type: TypeScroll, Section: "work"}, scroll)
}

func TestVisibilityUpdatesActive(t *testing.T) {
	h := start(t, &fakeRelay{})
	h.read()

	h.write(Inbound{Type: TypeVisibility, Section: "experience", Ratio: 0.1, Intersecting: true})
	h.write(Inbound{Type: TypeVisibility, Section: "contact", Ratio: 0.6, Intersecting: true})

	nav := h.until(ofType(TypeNav))
	assert.Equal(t, "contact", nav.Active, "below-threshold event must not activate")
}

func TestSubmitLifecycle(t *testing.T) {
	r := &fakeRelay{}
	h := start(t, r)
	h.read()

	h.write(Inbound{Type: TypeField, Name: contact.FieldName, Value: "Ada"})
	h.write(Inbound{Type: TypeField, Name: contact.FieldEmail, Value: "ada@example.com"})
	h.write(Inbound{Type: TypeField, Name: contact.FieldMessage, Value: "Hello"})
	h.write(Inbound{Type: TypeSubmit})

	h.until(formStatus(contact.StatusSending))
	success := h.until(formStatus(contact.StatusSuccess))
	assert.Equal(t, contact.Fields{}, success.Form.Fields)
	h.until(formStatus(contact.StatusIdle))

	require.Equal(t, 1, r.calls())
	assert.Equal(t, relay.Submission{Name: "Ada", Email: "ada@example.com", Message: "Hello"}, r.sent[0])
}

func TestSubmitFailureKeepsFields(t *testing.T) {
	h := start(t, &fakeRelay{err: &relay.Error{Kind: relay.KindRejected, StatusCode: 500}})
	h.read()

	h.write(Inbound{Type: TypeField, Name: contact.FieldEmail, Value: "ada@example.com"})
	h.write(Inbound{Type: TypeField, Name: contact.FieldMessage, Value: "Hello"})
	h.write(Inbound{Type: TypeSubmit})

	failed := h.until(formStatus(contact.StatusError))
	assert.Equal(t, contact.Fields{Email: "ada@example.com", Message: "Hello"}, failed.Form.Fields)
}

func TestNotices(t *testing.T) {
	testCases := []struct {
		name  string
		frame string
		code  string
	}{
		{"empty submit", `{"type":"submit"}`, NoticeValidation},
		{"unknown field", `{"type":"field","name":"phone","value":"1"}`, NoticeUnknownField},
		{"unknown type", `{"type":"dance"}`, NoticeBadMessage},
		{"malformed json", `{"type":`, NoticeBadMessage},
		{"theme without value", `{"type":"theme"}`, NoticeBadMessage},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := &fakeRelay{}
			h := start(t, r)
			h.read()

			require.NoError(t, h.conn.WriteMessage(websocket.TextMessage, []byte(tc.frame)))

			notice := h.until(ofType(TypeNotice))
			assert.Equal(t, tc.code, notice.Code)
			assert.Zero(t, r.calls())
		})
	}
}

func TestTheme(t *testing.T) {
	h := start(t, &fakeRelay{})
	h.read()

	light := false
	h.write(Inbound{Type: TypeTheme, Dark: &light})

	msg := h.until(ofType(TypeTheme))
	require.NotNil(t, msg.Dark)
	assert.False(t, *msg.Dark)
}

func TestClientDisconnectEndsSession(t *testing.T) {
	h := start(t, &fakeRelay{})
	h.read()
	assert.Equal(t, 1, h.registry.Len())

	require.NoError(t, h.conn.Close())

	select {
	case <-h.ended:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not end after client disconnect")
	}
	assert.Eventually(t, func() bool { return h.registry.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestRegistryCloseAll(t *testing.T) {
	h := start(t, &fakeRelay{})
	h.read()

	h.registry.CloseAll()

	select {
	case <-h.ended:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not end after CloseAll")
	}
}

func TestInboundDecoding(t *testing.T) {
	var msg Inbound
	require.NoError(t, json.Unmarshal([]byte(`{"type":"visibility","section":"work","ratio":0.42,"intersecting":true}`), &msg))
	assert.Equal(t, Inbound{Type: TypeVisibility, Section: "work", Ratio: 0.42, Intersecting: true}, msg)
}
