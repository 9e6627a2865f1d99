package network

import (
	"sync"

	"tactics-server/pkg/api"
)

// Broadcaster занимается только рассылкой сообщений подписчикам.
// Подписчики — клиентские сессии (рендер, наблюдатели, боты); ключ — токен.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для сессии.
// Повторная регистрация того же токена закрывает старый канал.
func (b *Broadcaster) Register(token string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[token]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[token] = ch
	return ch
}

// Unregister удаляет подписчика.
func (b *Broadcaster) Unregister(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[token]; ok {
		close(ch)
		delete(b.subscribers, token)
	}
}

// SendTo отправляет сообщение конкретной сессии (Unicast).
// Переполненный канал молча пропускается: медленный клиент не должен
// тормозить игровой цикл.
func (b *Broadcaster) SendTo(token string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[token]; ok {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Broadcast отправляет снапшот всем подписчикам.
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
