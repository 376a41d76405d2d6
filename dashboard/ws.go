package dashboard

import (
	"net/http"
	"sync"

	"pitchpro/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// HandleWS subscribes a client to live snapshot pushes for one organization.
// Browsers cannot set headers on WebSocket requests, so the JWT arrives in
// the `token` query parameter; an Authorization header is also accepted. The
// current snapshot, if any, is sent immediately on connect.
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	orgID := ps.ByName("orgid")

	token := r.Header.Get("Authorization")
	if q := r.URL.Query().Get("token"); q != "" {
		token = "Bearer " + q
	}
	if _, err := middleware.ValidateJWT(token); err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[orgID] = append(subscribers[orgID], conn)
	mu.Unlock()

	if payload := DefaultManager.SnapshotJSON(orgID); payload != nil {
		conn.WriteMessage(websocket.TextMessage, payload)
	}

	for {
		// Keeps the connection alive until the client disconnects
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}

	mu.Lock()
	conns := subscribers[orgID]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[orgID] = newList
	mu.Unlock()

	conn.Close()
}

func broadcast(orgID string, val []byte) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[orgID]
	newList := conns[:0]

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, val); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[orgID] = newList
}
