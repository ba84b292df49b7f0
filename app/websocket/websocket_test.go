package web3socket

import (
	"testing"
	"time"

	tools "github.com/kirillDanshin/nulltime"
	"github.com/stretchr/testify/assert"
)

func TestSendWebsocketDataInfoMessage(t *testing.T) {
	notification := &Notification{
		Title:     "Report sent",
		Type:      "REPORT",
		Message:   "The report was mailed.",
		Timestamp: tools.NullTime{Time: time.Now(), Valid: true},
	}

	go SendWebsocketDataInfoMessage("Report sent", Websocket_Update, Websocket_Projects, "p-1", []uint{7}, notification)

	select {
	case msg := <-Broadcast:
		assert.Equal(t, uint(7), msg.UserId)
		assert.Equal(t, "DATA", msg.Message.MessageType)
		assert.Equal(t, Websocket_Update, msg.Message.Action)
		assert.Equal(t, Websocket_Projects, msg.Message.ForeignType)
		assert.Equal(t, "p-1", msg.Message.ForeignId)
		assert.Equal(t, notification, msg.Message.Data)
	case <-time.After(time.Second):
		t.Fatal("no message on the broadcast channel")
	}
}

func TestSendWebsocketDataInfoMessage_NoRecipients(t *testing.T) {
	SendWebsocketDataInfoMessage("Report sent", Websocket_Update, Websocket_Projects, "p-1", nil, nil)
	SendWebsocketDataInfoMessage("Report sent", Websocket_Update, Websocket_Projects, "p-1", []uint{0}, nil)

	select {
	case msg := <-Broadcast:
		t.Fatalf("unexpected message %+v", msg)
	default:
	}
}

func TestSendBroadcastWebsocketDataInfoMessage(t *testing.T) {
	go SendBroadcastWebsocketDataInfoMessage("Project created", Websocket_Add, Websocket_Projects, "p-2", nil)

	select {
	case msg := <-Broadcast:
		assert.Equal(t, uint(0), msg.UserId)
		assert.Equal(t, Websocket_Add, msg.Message.Action)
		assert.Equal(t, "p-2", msg.Message.ForeignId)
	case <-time.After(time.Second):
		t.Fatal("no message on the broadcast channel")
	}
}
