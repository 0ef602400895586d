// Package jitter считает задержки между повторными попытками подключения:
// экспоненциальный рост от Base до Max плюс случайная надбавка, чтобы реплики
// не стучались в зависимость одновременно.
package jitter

import (
	"context"
	"math/rand/v2"
	"time"
)

// DefaultFactor — надбавка до 50% к задержке.
const DefaultFactor = 0.5

// Backoff — политика повторов. Attempts меньше 1 означает одну попытку.
type Backoff struct {
	Base     time.Duration
	Max      time.Duration
	Factor   float64
	Attempts int

	rnd func() float64
}

func NewBackoff(base, max time.Duration, attempts int) *Backoff {
	return &Backoff{
		Base:     base,
		Max:      max,
		Factor:   DefaultFactor,
		Attempts: attempts,
		rnd:      rand.Float64,
	}
}

// Delay возвращает паузу после попытки attempt (с нуля).
// Результат лежит в [d, d*(1+Factor)], где d = min(Base*2^attempt, Max).
func (b *Backoff) Delay(attempt int) time.Duration {
	d := b.Base
	for i := 0; i < attempt && d < b.Max; i++ {
		d *= 2
	}
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}

	rnd := b.rnd
	if rnd == nil {
		rnd = rand.Float64
	}
	return d + time.Duration(rnd()*b.Factor*float64(d))
}

// Retry вызывает fn, пока она не вернёт nil, не кончатся попытки или не отменится ctx.
// onRetry получает номер неудачной попытки (с единицы), паузу и ошибку; может быть nil.
// Возвращается последняя ошибка fn либо ctx.Err().
func (b *Backoff) Retry(ctx context.Context, fn func(ctx context.Context) error, onRetry func(attempt int, delay time.Duration, err error)) error {
	attempts := max(b.Attempts, 1)

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt+1 >= attempts {
			return err
		}

		delay := b.Delay(attempt)
		if onRetry != nil {
			onRetry(attempt+1, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		}
	}
}
