package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
)

func newUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		// In production, adjust the CheckOrigin function to allow only trusted origins.
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}
