// Package ws implementa el fan-out de eventos de stock por WebSocket.
// El Hub implementa ledger.Notifier: el motor publica un StockEvent después
// de cada commit y el hub lo reenvía a todos los clientes conectados.
// La entrega es best-effort: un cliente lento pierde eventos, nunca frena
// al motor ni a los demás clientes.
package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	appjwt "github.com/jhoicas/almacen-api/pkg/jwt"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Client representa una conexión WebSocket activa.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan ledger.StockEvent
	Hub    *Hub
}

// Hub gestiona las conexiones y el broadcast de eventos de stock.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	events     chan ledger.StockEvent
	mutex      sync.RWMutex
	jwtSecret  string
	log        *logger.Logger
}

var _ ledger.Notifier = (*Hub)(nil)

// NewHub construye el hub. bufferSize dimensiona la cola de eventos pendientes
// de broadcast; al llenarse se descartan eventos (nunca se bloquea al motor).
func NewHub(jwtSecret string, bufferSize int, log *logger.Logger) *Hub {
	if bufferSize <= 0 {
		bufferSize = 64
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		events:     make(chan ledger.StockEvent, bufferSize),
		jwtSecret:  jwtSecret,
		log:        log,
	}
}

// StockChanged implementa ledger.Notifier. No bloquea: si la cola está llena
// el evento se descarta.
func (h *Hub) StockChanged(evt ledger.StockEvent) {
	select {
	case h.events <- evt:
	default:
		h.log.Warn().Str("transaction_id", evt.TransactionID).Msg("cola de eventos llena, evento descartado")
	}
}

// Run bucle principal del hub. Ejecutar en una goroutine dedicada; retorna al
// cancelarse ctx, cerrando todas las conexiones activas.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for client := range h.clients {
				close(client.Send)
				delete(h.clients, client)
			}
			h.mutex.Unlock()
			h.log.Info().Msg("hub ws detenido")
			return

		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug().Str("user_id", client.UserID).Int("total", total).Msg("cliente ws conectado")

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug().Str("user_id", client.UserID).Int("total", total).Msg("cliente ws desconectado")

		case evt := <-h.events:
			h.mutex.Lock()
			for client := range h.clients {
				select {
				case client.Send <- evt:
				default:
					// Cliente que no drena: se desconecta.
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// HandleWebSocket maneja una conexión entrante. El token JWT viaja en el
// query param "token" (el upgrade de WebSocket no lleva header Authorization
// desde navegadores).
func (h *Hub) HandleWebSocket(c *websocket.Conn) {
	tokenString := c.Query("token")
	if tokenString == "" {
		c.Close()
		return
	}

	userID, _, _, err := appjwt.Parse(h.jwtSecret, tokenString)
	if err != nil {
		h.log.Debug().Err(err).Msg("token ws inválido")
		c.Close()
		return
	}

	client := &Client{
		UserID: userID,
		Conn:   c,
		Send:   make(chan ledger.StockEvent, 16),
		Hub:    h,
	}

	h.register <- client

	go client.writePump()
	client.readPump()
}

// readPump descarta la entrada del cliente; solo detecta cierre y mantiene
// vivo el deadline de lectura con los pongs.
func (c *Client) readPump() {
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// writePump escribe eventos y pings al cliente.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case evt, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(evt); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
