package discover

import (
	"context"
	"slices"
	"sync"

	"github.com/broady/restdata/resource"
	"github.com/broady/restdata/typeindex"
)

// Producer receives the output of a successful discovery run.
// Implementations must be safe for concurrent calls.
type Producer interface {
	// Resource receives one descriptor per valid declaration.
	Resource(ctx context.Context, d resource.Descriptor) error

	// Unremovable receives the repository type of every repository-access
	// descriptor. Generated code reaches the repository only by name, so
	// dead-code elimination in the consuming build must keep it.
	Unremovable(ctx context.Context, t typeindex.TypeRef) error
}

// Collector is a Producer that keeps everything in memory.
// All operations are thread-safe.
type Collector struct {
	mu          sync.Mutex
	descriptors []resource.Descriptor
	unremovable []typeindex.TypeRef
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Resource implements Producer.
func (c *Collector) Resource(ctx context.Context, d resource.Descriptor) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptors = append(c.descriptors, d)
	return nil
}

// Unremovable implements Producer.
func (c *Collector) Unremovable(ctx context.Context, t typeindex.TypeRef) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unremovable = append(c.unremovable, t)
	return nil
}

// Descriptors returns the collected descriptors ordered by declaring
// interface.
func (c *Collector) Descriptors() []resource.Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := slices.Clone(c.descriptors)
	slices.SortStableFunc(out, resource.Compare)
	return out
}

// UnremovableTypes returns the collected repository types, sorted. A type
// appears once per descriptor that named it.
func (c *Collector) UnremovableTypes() []typeindex.TypeRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := slices.Clone(c.unremovable)
	slices.SortStableFunc(out, typeindex.Compare)
	return out
}

// Reset clears everything collected.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptors = nil
	c.unremovable = nil
}
