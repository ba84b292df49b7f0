package web3socket

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	tools "github.com/kirillDanshin/nulltime"
)

var WebsocketUsers = make(map[uint]map[*websocket.Conn]RegisteredMessageTypes)

var Broadcast = make(chan WSHeaderMessage)   // broadcast channel
var UserChannel = make(chan WSHeaderMessage) // user channel

// Configure the upgrader
var Upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func HandleBroadcastMessages() {
	for {
		// Grab the next message from the broadcast channel
		msg := <-Broadcast
		// Send it out to every client that is currently connected

		for userId, usersWebsockets := range WebsocketUsers {
			if msg.UserId == 0 || msg.UserId == userId {
				for client, areas := range usersWebsockets {
					needsToSend := false
					for _, area := range areas {
						if (area.MessageType == msg.Message.MessageType || area.MessageType == Websocket_All) && (area.SpecifiedId == "" || area.SpecifiedId == msg.Message.ForeignId) {
							needsToSend = true
							break
						}
					}
					if needsToSend {
						err := client.WriteJSON(&msg.Message)
						if err != nil {
							log.Printf("error: %v", err)
							client.Close()
							delete(usersWebsockets, client)
						}
					}
				}
			}
		}
	}
}

func HandleUserMessages() {
	for {
		msg := <-UserChannel

		for client := range WebsocketUsers[msg.UserId] {
			err := client.WriteJSON(msg.Message)
			if err != nil {
				log.Printf("error: %v", err)
				client.Close()
				delete(WebsocketUsers[msg.UserId], client)
			}
		}
	}
}

// SendBroadcastWebsocketDataInfoMessage notifies every registered client
// about a data change, e.g. a created or updated project.
func SendBroadcastWebsocketDataInfoMessage(message string, action string, foreignType string, foreignId string, data interface{}) {
	var wsMsg WebsocketMessage = WebsocketMessage{
		MessageType: "DATA",
		Timestamp:   tools.NullTime{Time: time.Now(), Valid: true},
		Message:     message,
		ForeignType: foreignType,
		ForeignId:   foreignId,
		Action:      action,
		Data:        data,
	}
	headerMsg := WSHeaderMessage{UserId: 0, Message: wsMsg}
	Broadcast <- headerMsg
}

// SendWebsocketDataInfoMessage notifies the given users only.
func SendWebsocketDataInfoMessage(message string, action string, foreignType string, foreignId string, userIds []uint, data interface{}) {
	if userIds == nil || len(userIds) == 0 {
		return
	}
	for _, userId := range userIds {
		if userId > 0 {
			var wsMsg WebsocketMessage = WebsocketMessage{
				MessageType: "DATA",
				Timestamp:   tools.NullTime{Time: time.Now(), Valid: true},
				Message:     message,
				ForeignType: foreignType,
				ForeignId:   foreignId,
				Action:      action,
				Data:        data,
			}
			headerMsg := WSHeaderMessage{UserId: userId, Message: wsMsg}
			Broadcast <- headerMsg
		}
	}
}
