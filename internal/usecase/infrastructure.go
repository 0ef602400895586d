package usecase

import "context"

// MessageProducer публикует события изменения продуктов во внешний брокер.
type MessageProducer interface {
	WriteMessage(ctx context.Context, req *WriteMessageReq) error
}
