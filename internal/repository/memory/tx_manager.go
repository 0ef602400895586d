package memory

import (
	"context"
	"sync"
)

// TxManager сериализует транзакции над ProductRepo одним мьютексом.
// Отката нет: запись через Save видна сразу.
type TxManager struct {
	mu sync.Mutex
}

func NewTxManager() *TxManager {
	return &TxManager{}
}

// Do выполняет fn эксклюзивно относительно других вызовов Do. Вложенные вызовы не поддерживаются.
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(ctx)
}
