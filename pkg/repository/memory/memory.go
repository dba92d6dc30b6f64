package memory

import (
	"github.com/secmon-lab/herald/pkg/domain/interfaces"
)

// DefaultLogCapacity is the number of activity log entries kept when no
// capacity is configured
const DefaultLogCapacity = 1000

type Memory struct {
	log *logRepository
}

var _ interfaces.Repository = &Memory{}

type Option func(*options)

type options struct {
	logCapacity int
}

// WithLogCapacity bounds the activity log. Values <= 0 select DefaultLogCapacity.
func WithLogCapacity(capacity int) Option {
	return func(o *options) {
		o.logCapacity = capacity
	}
}

func New(opts ...Option) *Memory {
	o := &options{logCapacity: DefaultLogCapacity}
	for _, opt := range opts {
		opt(o)
	}
	if o.logCapacity <= 0 {
		o.logCapacity = DefaultLogCapacity
	}

	return &Memory{
		log: newLogRepository(o.logCapacity),
	}
}

func (m *Memory) Log() interfaces.LogRepository {
	return m.log
}
