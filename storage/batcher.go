package storage

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cs-chat-translate/model"
)

// BatchConfig задаёт параметры батчинга при записи архива переводов.
type BatchConfig struct {
	MaxBatch      int
	FlushEvery    time.Duration
	ChanBuffer    int
	StatsLogEvery time.Duration
	FlushTimeout  time.Duration
}

// DefaultBatchConfig возвращает параметры, достаточные для темпа игрового чата.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxBatch:      50,
		FlushEvery:    2 * time.Second,
		ChanBuffer:    1024,
		StatsLogEvery: 5 * time.Minute,
		FlushTimeout:  5 * time.Second,
	}
}

// Batcher асинхронно вставляет переведённые сообщения через pgx.Batch.
type Batcher struct {
	input   chan model.TranslatedMessage
	config  BatchConfig
	sender  batchSender
	dropped atomic.Uint64
}

type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// NewBatcher создаёт батчер и запускает фоновые флаши.
func NewBatcher(ctx context.Context, pool *pgxpool.Pool, cfg BatchConfig) *Batcher {
	return newBatcher(ctx, pool, cfg)
}

// Enqueue пытается добавить запись в очередь; при переполнении возвращает false.
func (b *Batcher) Enqueue(rec model.TranslatedMessage) bool {
	select {
	case b.input <- rec:
		return true
	default:
		dropped := b.dropped.Add(1)
		if dropped%100 == 0 {
			log.Printf("архив: очередь заполнена, всего отброшено %d записей", dropped)
		}
		return false
	}
}

// Dropped возвращает число записей, отброшенных из-за переполнения.
func (b *Batcher) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Batcher) run(ctx context.Context) {
	flushTicker := time.NewTicker(b.config.FlushEvery)
	statsTicker := time.NewTicker(b.config.StatsLogEvery)
	defer flushTicker.Stop()
	defer statsTicker.Stop()

	var (
		batch            = &pgx.Batch{}
		pending          = 0
		totalInserted    uint64
		intervalInserted uint64
	)

	const q = `
insert into chat_translations (
  channel, sender, text, translated, source_lang, target_lang, said_at
) values ($1,$2,$3,$4,$5,$6,$7);`

	flush := func() {
		if pending == 0 {
			return
		}

		dbCtx, cancel := context.WithTimeout(context.Background(), b.config.FlushTimeout)
		defer cancel()

		br := b.sender.SendBatch(dbCtx, batch)
		if err := br.Close(); err != nil {
			log.Printf("архив: ошибка флаша: %v", err)
		}

		totalInserted += uint64(pending)
		intervalInserted += uint64(pending)

		batch = &pgx.Batch{}
		pending = 0
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			log.Printf("архив: контекст отменён, всего вставлено записей = %d", totalInserted)
			return
		case <-flushTicker.C:
			flush()
		case <-statsTicker.C:
			log.Printf(
				"архив: вставлено %d записей за %s (всего %d)",
				intervalInserted, b.config.StatsLogEvery, totalInserted,
			)
			intervalInserted = 0
		case rec := <-b.input:
			batch.Queue(q,
				rec.Channel, rec.Sender, rec.Text, rec.Translated,
				rec.SourceLang, rec.TargetLang, rec.SaidAt.UTC(),
			)
			pending++
			if pending >= b.config.MaxBatch {
				flush()
			}
		}
	}
}

func newBatcher(ctx context.Context, sender batchSender, cfg BatchConfig) *Batcher {
	b := &Batcher{
		input:  make(chan model.TranslatedMessage, cfg.ChanBuffer),
		config: cfg,
		sender: sender,
	}

	go b.run(ctx)

	return b
}
