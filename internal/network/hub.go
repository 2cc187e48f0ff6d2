package network

import (
	"sync"
	"sync/atomic"

	"github.com/mkoeppel/Markov-Market/pkg/api"
	"github.com/mkoeppel/Markov-Market/pkg/logger"
	"github.com/sirupsen/logrus"
)

// subscriberBuffer - сколько тиков может отстать медленный клиент, прежде чем
// сообщения для него начнут отбрасываться
const subscriberBuffer = 64

// Broadcaster занимается только рассылкой сообщений подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ClientID -> Личный канал
	subscribers map[string]chan api.ServerResponse
	dropped     atomic.Uint64

	log *logrus.Entry
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
		log:         logger.Component("hub"),
	}
}

// Register создает личный канал для клиента
func (b *Broadcaster) Register(clientID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[clientID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, subscriberBuffer)
	b.subscribers[clientID] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unregister(clientID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[clientID]; ok {
		close(ch)
		delete(b.subscribers, clientID)
	}
}

// SendTo отправляет сообщение конкретному клиенту (Unicast)
func (b *Broadcaster) SendTo(clientID string, msg api.ServerResponse) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[clientID]
	if !ok {
		return false
	}
	select {
	case ch <- msg:
		return true
	default:
		b.drop(clientID, msg)
		return false
	}
}

// Broadcast отправляет всем. Тик не ждет медленных клиентов.
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for clientID, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
			b.drop(clientID, msg)
		}
	}
}

// drop учитывает сообщение, которое не влезло в буфер клиента
func (b *Broadcaster) drop(clientID string, msg api.ServerResponse) {
	total := b.dropped.Add(1)
	b.log.WithFields(logrus.Fields{
		"client_id": clientID,
		"type":      msg.Type,
		"tick":      msg.Tick,
		"dropped":   total,
	}).Debug("Channel full, message dropped")
}

// Dropped - сколько сообщений не влезло в буферы подписчиков
func (b *Broadcaster) Dropped() uint64 {
	return b.dropped.Load()
}

// HasSubscriber проверяет, подключен ли клиент
func (b *Broadcaster) HasSubscriber(clientID string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[clientID]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
