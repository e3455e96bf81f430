package rabbitmq

// QueueConfig очередь и ключ маршрутизации, с которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Ключи маршрутизации и очереди уведомлений.
const (
	RoutingKeyContact = "contact"
	QueueContact      = "notifications.contact"
)

// GetNotificationQueues возвращает очереди, которые объявляют и API, и отправитель.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueContact, RoutingKey: RoutingKeyContact},
	}
}
