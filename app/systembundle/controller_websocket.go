package systembundle

import (
	"errors"
	"log"
	"net/http"
	"strings"

	websocket2 "rfpcopilot_backend/app/websocket"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

func (c *SystemController) GetWSTicketHandler(w http.ResponseWriter, r *http.Request) {

	sessionToken := ""

	auth := r.Header.Get("Authorization")
	if len(auth) != len("Bearer 9871b73e-df71-4780-5ed6-b2cbee85f3b5") {
		c.HandleUnauthorizedError(errors.New("Not authorized"), w)
		return
	} else {
		tmp := strings.Split(auth, " ")
		if _, ok := (*c.Users)[tmp[1]]; !ok {
			c.HandleUnauthorizedError(errors.New("Session invalid"), w)
			return
		} else {
			sessionToken = tmp[1]
		}
	}

	ticket := c.RandomString(32)

	WSTickets[ticket] = sessionToken

	c.SendJSON(w, &ticket, http.StatusOK)
}

func (c *SystemController) HandleConnections(w http.ResponseWriter, r *http.Request) {

	vars := mux.Vars(r)
	ticket := vars["ticket"]
	auth := WSTickets[ticket]

	if user, ok := (*c.Users)[auth]; !ok {
		c.HandleError(errors.New("Ticket invalid"), w)
		return
	} else {
		// Upgrade initial GET request to a websocket
		ws, err := websocket2.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println(err)
			return
		}
		// Make sure we close the connection when the function returns
		defer ws.Close()

		// Register our new client
		if _, ok := websocket2.WebsocketUsers[user.ID]; !ok {
			websocket2.WebsocketUsers[user.ID] = make(map[*websocket.Conn]websocket2.RegisteredMessageTypes)
		}

		websocket2.WebsocketUsers[user.ID][ws] = websocket2.RegisteredMessageTypes{{MessageType: websocket2.Websocket_All, SpecifiedId: ""}}

		for {
			var msg websocket2.WebsocketMessage
			// Read in a new message as JSON and map it to a Message object
			err := ws.ReadJSON(&msg)
			if err != nil {
				log.Printf("error: %v", err)
				delete(websocket2.WebsocketUsers[user.ID], ws)
				break
			}

			// Clients can narrow their subscription to single areas,
			// e.g. only project events.
			if msg.MessageType == "REGISTER" {
				areas := websocket2.RegisteredMessageTypes{}
				if messageType, ok := msg.Data.(string); ok && messageType != "" {
					areas = append(areas, websocket2.RegisteredMessageType{MessageType: messageType, SpecifiedId: msg.ForeignId})
				} else {
					areas = append(areas, websocket2.RegisteredMessageType{MessageType: websocket2.Websocket_All, SpecifiedId: ""})
				}
				websocket2.WebsocketUsers[user.ID][ws] = areas
			}
		}
	}
}
