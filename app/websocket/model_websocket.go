package web3socket

import (
	tools "github.com/kirillDanshin/nulltime"
)

const (
	Websocket_Projects    = "PROJECTS"
	Websocket_ProjectRows = "PROJECTROWS"
	Websocket_Library     = "LIBRARY"
	Websocket_All         = "ALL"
)

const (
	Websocket_Update = "UPDATE"
	Websocket_Add    = "ADD"
	Websocket_Delete = "DELETE"
)

// Define our message object
type WSHeaderMessage struct {
	UserId  uint             `json:"user_id"`
	Message WebsocketMessage `json:"message"`
}

type WebsocketMessage struct {
	MessageType string         `json:"message_type"`
	Timestamp   tools.NullTime `json:"timestamp"`
	Status      int            `json:"status,omitempty"`
	Message     string         `json:"message,omitempty"`
	ForeignType string         `json:"foreign_type,omitempty"`
	ForeignId   string         `json:"foreign_id,omitempty"`
	Action      string         `json:"action,omitempty"`
	Data        interface{}    `json:"data,omitempty"`
}

type Notification struct {
	Title     string         `json:"title"`
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Priority  int64          `json:"priority"`
	Timestamp tools.NullTime `json:"timestamp"`
}

type RegisteredMessageType struct {
	MessageType string `json:"message_type"`
	SpecifiedId string `json:"specified_id"`
}

type RegisteredMessageTypes []RegisteredMessageType
