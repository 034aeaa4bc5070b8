package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ilhamriadi/projects.co.id/access"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"github.com/ilhamriadi/projects.co.id/pkg/resp"
	"github.com/ilhamriadi/projects.co.id/services"
	"github.com/ilhamriadi/projects.co.id/utils"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 512
	sendBuffer     = 32
	broadcastQueue = 256
)

// Hub คือศูนย์กลางกระจาย event ของรายงานผ่าน WebSocket ตามห้อง (scope key)
type Hub struct {
	rooms      map[string]map[*client]bool // room -> set of clients
	broadcast  chan outbound
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.RWMutex
}

// client = 1 connection, ฟังได้ห้องเดียวตาม scope ของ Actor
type client struct {
	conn  *websocket.Conn
	room  string
	actor entity.Actor
	send  chan []byte
}

type outbound struct {
	rooms []string
	data  []byte
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*client]bool),
		broadcast:  make(chan outbound, broadcastQueue),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// คอยฟัง register/unregister/broadcast จนกว่า ctx จะถูกยกเลิก
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for room, clients := range h.rooms {
				for cl := range clients {
					close(cl.send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return

		case cl := <-h.register:
			h.mu.Lock()
			if h.rooms[cl.room] == nil {
				h.rooms[cl.room] = make(map[*client]bool)
			}
			h.rooms[cl.room][cl] = true
			h.mu.Unlock()

		case cl := <-h.unregister:
			h.mu.Lock()
			h.remove(cl)
			h.mu.Unlock()

		// client ที่รับไม่ทันถูกตัดทิ้ง ไม่ block คนอื่น
		case msg := <-h.broadcast:
			h.mu.Lock()
			for _, room := range msg.rooms {
				for cl := range h.rooms[room] {
					select {
					case cl.send <- msg.data:
					default:
						log.Printf("⚠️ ws client %s too slow, dropping", cl.actor.ID)
						h.remove(cl)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove ต้องถือ h.mu อยู่แล้ว
func (h *Hub) remove(cl *client) {
	if _, ok := h.rooms[cl.room][cl]; !ok {
		return
	}
	delete(h.rooms[cl.room], cl)
	if len(h.rooms[cl.room]) == 0 {
		delete(h.rooms, cl.room)
	}
	close(cl.send)
}

// Publish ไม่ block: ถ้าคิวเต็มทิ้ง event แล้ว log
func (h *Hub) Publish(ev services.DisasterEvent, rooms ...string) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("❌ ws marshal %s: %v", ev.Event, err)
		return
	}
	select {
	case h.broadcast <- outbound{rooms: rooms, data: data}:
	default:
		log.Printf("⚠️ ws queue full, dropped %s", ev.Event)
	}
}

// Subscribers นับ client ในห้อง
func (h *Hub) Subscribers(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/disasters (ต้องผ่าน WSAuthMiddleware)
func (h *Hub) HandleWebSocket(c *gin.Context) {
	actor, ok := utils.CurrentActor(c)
	if !ok {
		resp.Unauthorized(c, apperr.CodeTokenRequired, "Access token required")
		return
	}
	room := access.SubscriptionRoom(actor)
	if room == "" {
		resp.Forbidden(c, "No subscription scope for this account")
		return
	}

	// --- Upgrade HTTP → WebSocket
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	cl := &client{conn: conn, room: room, actor: actor, send: make(chan []byte, sendBuffer)}
	hello, _ := json.Marshal(gin.H{"event": "connected", "room": room})
	cl.send <- hello
	select {
	case h.register <- cl:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(cl)
	go h.readPump(cl)
}

// readPump อ่านทิ้งอย่างเดียว เพื่อจับ close/pong
func (h *Hub) readPump(cl *client) {
	defer func() {
		select {
		case h.unregister <- cl:
		case <-h.done:
		}
		cl.conn.Close()
	}()
	cl.conn.SetReadLimit(maxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read error: %v", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
