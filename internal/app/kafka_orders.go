package app

import (
	"courier-dispatch/internal/config"
	"courier-dispatch/internal/logx"
	"courier-dispatch/internal/service/orders"
	"courier-dispatch/internal/transport/kafka"
)

func newOrdersConsumer(cfg *config.Config, p *orders.Processor, logger logx.Logger) (*kafka.Consumer, error) {
	return kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, p.Handle, logger)
}
