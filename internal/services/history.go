package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tarotdaily/tarotdaily/internal/models"
)

// HistoryLimit caps the number of retained reading records, newest
// first.
const HistoryLimit = 100

// HistoryStore keeps recent reading records. Process-local only;
// durable persistence of readings is out of scope.
type HistoryStore interface {
	Add(record models.ReadingRecord) models.ReadingRecord
	Recent() []models.ReadingRecord
}

// MemoryHistory is a mutex-guarded ring of recent readings.
type MemoryHistory struct {
	mu      sync.Mutex
	records []models.ReadingRecord
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

// Add stamps the record with an ID and creation time and prepends it,
// evicting the oldest entries beyond HistoryLimit.
func (h *MemoryHistory) Add(record models.ReadingRecord) models.ReadingRecord {
	record.ID = uuid.New()
	record.CreatedAt = time.Now().UTC()

	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append([]models.ReadingRecord{record}, h.records...)
	if len(h.records) > HistoryLimit {
		h.records = h.records[:HistoryLimit]
	}
	return record
}

func (h *MemoryHistory) Recent() []models.ReadingRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]models.ReadingRecord, len(h.records))
	copy(out, h.records)
	return out
}
