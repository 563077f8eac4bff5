package connectionhub

import (
	"sync"
	"time"

	wsmodels "attendance-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
)

type Provider interface {
	AddClient(userID string, conn *websocket.Conn)
	DeleteClient(userID string)
	SendMessage(msg wsmodels.ServerMessage)
	Broadcast(msg wsmodels.ServerMessage)
	SendClose(userID string)
	IsConnected(userID string) bool
}

var Instance Provider

func Init() {
	Instance = &impl{
		clients: map[string]clientSession{},
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]clientSession //map[userID]
}

func (i *impl) DeleteClient(userID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[userID]
	if !ok {
		return
	}
	delete(i.clients, userID)
	sess.stop()
	close(sess.sendCh)
}

func (i *impl) AddClient(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	oldSess, ok := i.clients[userID]
	if ok {
		oldSess.stop()
	}
	i.clients[userID] = newSession(conn)
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[msg.ToUserID]
	if ok {
		sess.sendCh <- msg
	}
}

// Broadcast pushes the message to every connected client.
func (i *impl) Broadcast(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	for _, sess := range i.clients {
		select {
		case sess.sendCh <- msg:
		default:
			// slow client, skip; the next push carries a fresh counter
		}
	}
}

func (i *impl) SendClose(userID string) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[userID]
	if ok {
		sess.stop()
	}
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	sess, ok := i.clients[userID]
	if !ok || sess.conn == nil || sess.conn.Conn == nil {
		return false
	}
	return true
}

// PendingCountMessage is the reviewer badge push with the current number of
// pending requests.
func PendingCountMessage(count string) wsmodels.ServerMessage {
	return wsmodels.ServerMessage{
		Time: time.Now().Format("02.01.2006 15:04:05"),
		Code: wsmodels.CodePendingCount,
		Msg:  count,
	}
}
