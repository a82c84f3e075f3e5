package utils

import (
	"sync"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// RingBuffer is a fixed-size circular buffer of notification records.
// Once full, each Append overwrites the oldest entry.
// -----------------------------------------------------------------------------

type RingBuffer struct {
	mu       sync.RWMutex
	data     []models.MNotificationRecord
	capacity int
	index    int // Next write position
	size     int // Current number of elements
}

// -----------------------------------------------------------------------------

// NewRingBuffer creates a new buffer with fixed capacity
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 500 // Default reasonable size
	}

	return &RingBuffer{
		data:     make([]models.MNotificationRecord, capacity),
		capacity: capacity,
	}
}

// -----------------------------------------------------------------------------

// Append adds a record, evicting the oldest when full
func (rb *RingBuffer) Append(rec models.MNotificationRecord) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.data[rb.index] = rec
	rb.index = (rb.index + 1) % rb.capacity

	// Update size (never exceeds capacity)
	if rb.size < rb.capacity {
		rb.size++
	}
}

// -----------------------------------------------------------------------------

// GetLatest returns the n most recent records, oldest first
func (rb *RingBuffer) GetLatest(n int) []models.MNotificationRecord {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if rb.size == 0 || n <= 0 {
		return []models.MNotificationRecord{}
	}

	count := n
	if n > rb.size {
		count = rb.size
	}

	result := make([]models.MNotificationRecord, count)

	// Latest data is at index-1
	startIdx := (rb.index - count + rb.capacity) % rb.capacity
	for i := 0; i < count; i++ {
		result[i] = rb.data[(startIdx+i)%rb.capacity]
	}

	return result
}

// -----------------------------------------------------------------------------

// GetAll returns all data in insertion order (oldest to newest)
func (rb *RingBuffer) GetAll() []models.MNotificationRecord {
	rb.mu.RLock()
	size := rb.size
	rb.mu.RUnlock()
	return rb.GetLatest(size)
}

// -----------------------------------------------------------------------------

// Retain keeps only the records for which keep returns true, preserving order.
// Returns the number of records removed.
func (rb *RingBuffer) Retain(keep func(models.MNotificationRecord) bool) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	startIdx := (rb.index - rb.size + rb.capacity) % rb.capacity
	kept := make([]models.MNotificationRecord, 0, rb.size)
	for i := 0; i < rb.size; i++ {
		rec := rb.data[(startIdx+i)%rb.capacity]
		if keep(rec) {
			kept = append(kept, rec)
		}
	}

	removed := rb.size - len(kept)
	rb.data = make([]models.MNotificationRecord, rb.capacity)
	copy(rb.data, kept)
	rb.size = len(kept)
	rb.index = rb.size % rb.capacity
	return removed
}

// -----------------------------------------------------------------------------

// Size returns current number of elements
func (rb *RingBuffer) Size() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.size
}

// -----------------------------------------------------------------------------

// Capacity returns buffer capacity (fixed)
func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

// -----------------------------------------------------------------------------

// IsFull returns whether buffer is full
func (rb *RingBuffer) IsFull() bool {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.size == rb.capacity
}

// -----------------------------------------------------------------------------

// Clear resets the buffer
func (rb *RingBuffer) Clear() {
	rb.mu.Lock()
	rb.index = 0
	rb.size = 0
	rb.mu.Unlock()
}
