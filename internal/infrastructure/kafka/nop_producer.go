package kafka

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
)

// NopProducer используется, когда KAFKA_BROKERS не задан.
type NopProducer struct{}

func NewNopProducer() *NopProducer {
	return &NopProducer{}
}

func (NopProducer) WriteMessage(context.Context, *usecase.WriteMessageReq) error {
	return nil
}
