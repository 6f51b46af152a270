package makedb

import (
	"context"
	"sync"
	"time"

	"github.com/maypok86/otter/v2"
)

const (
	DefaultDebounce  = time.Second
	DefaultCacheSize = 512
)

// Store holds one symbol Table per open document.
type Store interface {
	// Invalidate drops the document's Table. Lookup misses until the next
	// Refresh for the document completes.
	Invalidate(uri string)
	// Refresh schedules a debounced dump of dir for the document.
	Refresh(uri string, dir string)
	// Lookup returns the current Table without waiting.
	Lookup(uri string) (Table, bool)
	// Ready is closed once a Table is stored after the latest Invalidate.
	// It is nil for unknown documents.
	Ready(uri string) <-chan struct{}
}

type entry struct {
	seq   uint64
	table Table
}

type document struct {
	generation  uint64 // bumped by Invalidate
	seq         uint64 // bumped by Refresh
	timer       *time.Timer
	ready       chan struct{}
	readyClosed bool
}

func (d *document) markReady() {
	if !d.readyClosed {
		close(d.ready)
		d.readyClosed = true
	}
}

// Cache is a Store that fills Tables by running a Dumper and parsing its
// output. Refreshes are debounced per document; a completed refresh is kept
// only if the document was not invalidated since it was scheduled and no
// later refresh has already been stored.
type Cache struct {
	dumper   Dumper
	debounce time.Duration
	tables   *otter.Cache[string, entry]

	ctx    context.Context
	cancel context.CancelFunc

	lock      sync.Mutex
	documents map[string]*document
}

var _ Store = (*Cache)(nil)

func NewCache(dumper Dumper, debounce time.Duration, size int) *Cache {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if size <= 0 {
		size = DefaultCacheSize
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		dumper:   dumper,
		debounce: debounce,
		tables: otter.Must(&otter.Options[string, entry]{
			MaximumSize: size,
		}),
		ctx:       ctx,
		cancel:    cancel,
		documents: make(map[string]*document),
	}
}

// Invalidate implements Store.
func (c *Cache) Invalidate(uri string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	doc := c.document(uri)
	doc.generation++
	if doc.timer != nil {
		doc.timer.Stop()
		doc.timer = nil
	}
	if doc.readyClosed {
		doc.ready = make(chan struct{})
		doc.readyClosed = false
	}
	c.tables.Invalidate(uri)
}

// Refresh implements Store.
func (c *Cache) Refresh(uri string, dir string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.ctx.Err() != nil {
		return
	}

	doc := c.document(uri)
	doc.seq++
	generation, seq := doc.generation, doc.seq
	if doc.timer != nil {
		doc.timer.Stop()
	}
	doc.timer = time.AfterFunc(c.debounce, func() {
		c.run(uri, dir, generation, seq)
	})
}

// Lookup implements Store.
func (c *Cache) Lookup(uri string) (Table, bool) {
	if entry, ok := c.tables.GetIfPresent(uri); ok {
		return entry.table, true
	}
	return nil, false
}

// Ready implements Store.
func (c *Cache) Ready(uri string) <-chan struct{} {
	c.lock.Lock()
	defer c.lock.Unlock()

	if doc, ok := c.documents[uri]; ok {
		return doc.ready
	}
	return nil
}

// Forget drops all state for a closed document.
func (c *Cache) Forget(uri string) {
	c.lock.Lock()
	defer c.lock.Unlock()

	if doc, ok := c.documents[uri]; ok {
		if doc.timer != nil {
			doc.timer.Stop()
		}
		doc.markReady()
		delete(c.documents, uri)
	}
	c.tables.Invalidate(uri)
}

// Close stops pending refreshes and cancels running dumps.
func (c *Cache) Close() {
	c.cancel()

	c.lock.Lock()
	defer c.lock.Unlock()

	for _, doc := range c.documents {
		if doc.timer != nil {
			doc.timer.Stop()
			doc.timer = nil
		}
	}
}

// Must be called with lock held.
func (c *Cache) document(uri string) *document {
	doc, ok := c.documents[uri]
	if !ok {
		doc = &document{ready: make(chan struct{})}
		c.documents[uri] = doc
	}
	return doc
}

func (c *Cache) run(uri string, dir string, generation uint64, seq uint64) {
	if c.ctx.Err() != nil {
		return
	}

	log.Debugf("refreshing %s from %s", uri, dir)
	output, err := c.dumper.Dump(c.ctx, dir)
	if err != nil {
		// Partial output is still worth parsing.
		log.Warningf("%s", err.Error())
	}
	c.store(uri, generation, seq, Parse(output))
}

func (c *Cache) store(uri string, generation uint64, seq uint64, table Table) {
	c.lock.Lock()
	defer c.lock.Unlock()

	doc, ok := c.documents[uri]
	if !ok || doc.generation != generation {
		log.Debugf("discarding stale refresh %d of %s", seq, uri)
		return
	}
	if current, ok := c.tables.GetIfPresent(uri); ok && current.seq > seq {
		log.Debugf("discarding refresh %d of %s, %d already stored", seq, uri, current.seq)
		return
	}

	c.tables.Set(uri, entry{seq: seq, table: table})
	doc.markReady()
	log.Debugf("stored %d definitions for %s", len(table), uri)
}
