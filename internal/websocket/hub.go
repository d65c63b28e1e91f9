package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeGateChanged     MessageType = "gate_changed"
	MessageTypeFlightDelayed   MessageType = "flight_delayed"
	MessageTypeSeatsUpdated    MessageType = "seats_updated"
	MessageTypeTicketPurchased MessageType = "ticket_purchased"
	MessageTypeTicketCanceled  MessageType = "ticket_canceled"
	MessageTypeTicketUpgraded  MessageType = "ticket_upgraded"
)

// Message represents a WebSocket message sent to clients watching a flight
type Message struct {
	Type           MessageType `json:"type"`
	FlightNumber   string      `json:"flightNumber"`
	OldGate        string      `json:"oldGate,omitempty"`
	NewGate        string      `json:"newGate,omitempty"`
	DelayMinutes   int         `json:"delayMinutes,omitempty"`
	NewDeparture   *time.Time  `json:"newDeparture,omitempty"`
	NewArrival     *time.Time  `json:"newArrival,omitempty"`
	TicketID       string      `json:"ticketId,omitempty"`
	FareClass      string      `json:"fareClass,omitempty"`
	SeatsAvailable int         `json:"seatsAvailable"`
	Message        string      `json:"message,omitempty"`
	Timestamp      int64       `json:"timestamp"`
}

// Hub manages WebSocket connections per flight, keyed by flight number
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.flightNumber] == nil {
				h.clients[client.flightNumber] = make(map[*Client]bool)
			}
			h.clients[client.flightNumber][client] = true
			log.Printf("WebSocket: Client registered for flight %s (total: %d)", client.flightNumber, len(h.clients[client.flightNumber]))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.flightNumber]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					log.Printf("WebSocket: Client unregistered from flight %s (remaining: %d)", client.flightNumber, len(clients))
					if len(clients) == 0 {
						delete(h.clients, client.flightNumber)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				log.Printf("WebSocket: Failed to marshal message: %v", err)
				continue
			}

			h.mu.RLock()
			clients := h.clients[message.FlightNumber]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients[message.FlightNumber], client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// OnGateChanged broadcasts a gate reassignment to clients watching the flight.
// Satisfies the flight event subscriber interface.
func (h *Hub) OnGateChanged(flightNumber, oldGate, newGate string) {
	h.broadcast <- &Message{
		Type:         MessageTypeGateChanged,
		FlightNumber: flightNumber,
		OldGate:      oldGate,
		NewGate:      newGate,
		Timestamp:    time.Now().UnixMilli(),
	}
}

// OnDelayed broadcasts a schedule slip to clients watching the flight.
func (h *Hub) OnDelayed(flightNumber string, minutes int, newDeparture, newArrival time.Time) {
	h.broadcast <- &Message{
		Type:         MessageTypeFlightDelayed,
		FlightNumber: flightNumber,
		DelayMinutes: minutes,
		NewDeparture: &newDeparture,
		NewArrival:   &newArrival,
		Timestamp:    time.Now().UnixMilli(),
	}
}

// BroadcastSeatsUpdated pushes the new availability count for a flight
func (h *Hub) BroadcastSeatsUpdated(flightNumber string, available int) {
	h.broadcast <- &Message{
		Type:           MessageTypeSeatsUpdated,
		FlightNumber:   flightNumber,
		SeatsAvailable: available,
		Timestamp:      time.Now().UnixMilli(),
	}
}

// BroadcastTicketEvent notifies clients of a ticket lifecycle change
func (h *Hub) BroadcastTicketEvent(msgType MessageType, flightNumber, ticketID, fareClass string, available int) {
	h.broadcast <- &Message{
		Type:           msgType,
		FlightNumber:   flightNumber,
		TicketID:       ticketID,
		FareClass:      fareClass,
		SeatsAvailable: available,
		Timestamp:      time.Now().UnixMilli(),
	}
}

// GetClientCount returns the number of clients watching a flight
func (h *Hub) GetClientCount(flightNumber string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[flightNumber])
}
