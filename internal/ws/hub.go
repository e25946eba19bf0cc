package ws

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
)

// Client é um assinante do feed. State filtra por UF; vazio recebe tudo.
type Client struct {
	ID    string
	State string
	Send  chan []byte
}

func (c *Client) wants(state string) bool {
	return c.State == "" || state == "" || c.State == state
}

type unicastMsg struct {
	id  string
	msg []byte
}

type stateMsg struct {
	state string
	msg   []byte
}

type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // id -> client
	register chan *Client
	unreg    chan *Client

	sendAll chan stateMsg   // envio para todos os interessados na UF
	unicast chan unicastMsg // envio para 1 cliente

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		sendAll:  make(chan stateMsg, 1024),
		unicast:  make(chan unicastMsg, 1024),
		log:      log.With("cmp", "ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	id := h.nextID.Add(1)
	return fmt.Sprintf("c%d", id)
}

// drop remove e fecha o canal do cliente. Só é chamado pelo Run.
func (h *Hub) drop(id string) {
	h.mu.Lock()
	if c := h.clients[id]; c != nil {
		delete(h.clients, id)
		close(c.Send)
	}
	h.mu.Unlock()
}

func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.ID] = c
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_registered", "id", c.ID, "estado", c.State, "total", total)

		case c := <-h.unreg:
			if c == nil || c.ID == "" {
				continue
			}
			h.drop(c.ID)
			h.log.Info("client_unregistered", "id", c.ID, "total", h.Count())

		case m := <-h.sendAll:
			var slow []string
			delivered := 0
			h.mu.RLock()
			for id, c := range h.clients {
				if !c.wants(m.state) {
					continue
				}
				select {
				case c.Send <- m.msg:
					delivered++
				default:
					// cliente lento -> dropa para não travar o hub
					slow = append(slow, id)
				}
			}
			h.mu.RUnlock()
			for _, id := range slow {
				h.drop(id)
				h.log.Warn("broadcast_drop_slow", "id", id)
			}
			h.log.Debug("broadcast", "estado", m.state, "delivered", delivered)

		case u := <-h.unicast:
			h.mu.RLock()
			c := h.clients[u.id]
			h.mu.RUnlock()
			if c == nil {
				h.log.Warn("send_one_miss", "id", u.id)
				continue
			}
			select {
			case c.Send <- u.msg:
			default:
				// cliente lento -> remove
				h.drop(u.id)
				h.log.Warn("send_one_drop_slow", "id", u.id)
			}

		case <-h.stop:
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.Send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			h.log.Info("hub_run_stop")
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Register completa ID e UF antes de entregar ao Run, assim o chamador já
// pode ler c.ID quando retorna.
func (h *Hub) Register(c *Client) {
	if c.ID == "" {
		c.ID = h.newID()
	}
	c.State = strings.ToUpper(strings.TrimSpace(c.State))
	h.register <- c
}

func (h *Hub) Unregister(c *Client) { h.unreg <- c }

// Broadcast entrega b a quem acompanha state (state vazio = todos).
func (h *Hub) Broadcast(state string, b []byte) { h.sendAll <- stateMsg{state: state, msg: b} }
func (h *Hub) SendToClient(id string, b []byte) { h.unicast <- unicastMsg{id: id, msg: b} }
