package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/mintcleaning/booking-app/models"
)

// Event types
const (
	EventApplicationNew    = "application_new"
	EventApplicationUpdate = "application_update"
	EventQuoteNew          = "quote_new"
	EventAdminNotification = "admin_notification"
	EventDashboardUpdate   = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// AdminHub holds all connected admin console clients and pushes live updates
// so the applications table refreshes without polling.
type AdminHub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var adminHub = AdminHub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role
func RegisterClient(conn *websocket.Conn, role string) {
	adminHub.mutex.Lock()
	defer adminHub.mutex.Unlock()
	adminHub.clients[conn] = role
}

// UnregisterClient releases a connection
func UnregisterClient(conn *websocket.Conn) {
	adminHub.mutex.Lock()
	defer adminHub.mutex.Unlock()
	delete(adminHub.clients, conn)
	conn.Close()
}

// BroadcastNewApplication -> a cleaner application was submitted
func BroadcastNewApplication(app models.Application) {
	broadcast(Message{
		Event: EventApplicationNew,
		Data:  app,
	})
}

// BroadcastApplicationUpdate -> an application changed status
func BroadcastApplicationUpdate(app models.Application) {
	broadcast(Message{
		Event: EventApplicationUpdate,
		Data:  app,
	})
}

// BroadcastQuoteCreated -> a customer requested a quote
func BroadcastQuoteCreated(quote models.Quote) {
	broadcast(Message{
		Event: EventQuoteNew,
		Data:  quote,
	})
}

// BroadcastAdminNotification -> operator alert (e.g. manual repair needed)
func BroadcastAdminNotification(notif models.Notification) {
	broadcast(Message{
		Event: EventAdminNotification,
		Data:  notif,
	})
}

// BroadcastDashboardUpdate -> dashboard stats changed
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{
		Event: EventDashboardUpdate,
		Data:  data,
	})
}

func broadcast(msg Message) {
	adminHub.mutex.Lock()
	defer adminHub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range adminHub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
