package kafka

import (
	"log"
	"net"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// Domain event topics.
const (
	TopicOrderCreated      = "culturepass.order.created"
	TopicMembershipCreated = "culturepass.membership.created"
	TopicEntitySubmitted   = "culturepass.entity.submitted"
	TopicEntityModerated   = "culturepass.entity.moderated"
)

// RequiredTopics lists every topic the service publishes to.
var RequiredTopics = []string{
	TopicOrderCreated,
	TopicMembershipCreated,
	TopicEntitySubmitted,
	TopicEntityModerated,
}

// EnsureTopicsExist creates topics if they don't already exist.
func EnsureTopicsExist(brokers []string, topics []string) error {
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return err
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return err
	}
	controllerConn, err := kafka.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return err
	}
	defer controllerConn.Close()

	for _, topic := range topics {
		err = controllerConn.CreateTopics(kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		})
		if err != nil {
			// "already exists" is fine; log anything else and keep going.
			log.Printf("kafka: create topic %s: %v", topic, err)
			continue
		}
	}

	// Give the cluster a moment to settle new topics.
	time.Sleep(1 * time.Second)
	return nil
}
