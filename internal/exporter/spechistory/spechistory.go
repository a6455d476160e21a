// Package spechistory tracks the ids a concept had over time. Every new id of
// a concept appends an entry to its history and archives the SDL of the type
// that defined it.
package spechistory

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/opencontainers/go-digest"

	"github.com/covesa/s2dm/internal/exporter/concept"
	"github.com/covesa/s2dm/log"
)

// Entry is one id of a concept.
type Entry struct {
	ID        string `json:"@id"`
	Timestamp string `json:"timestamp"`
	Digest    string `json:"digest,omitempty"`
}

// Concept is the history of a single concept.
type Concept struct {
	ID          string  `json:"@id"`
	Type        string  `json:"@type"`
	SpecHistory []Entry `json:"specHistory"`
}

// Latest returns the last entry, or nil.
func (c *Concept) Latest() *Entry {
	if len(c.SpecHistory) == 0 {
		return nil
	}
	return &c.SpecHistory[len(c.SpecHistory)-1]
}

// History is the JSON-LD spec history document.
type History struct {
	Context map[string]interface{} `json:"@context"`
	Graph   []*Concept             `json:"@graph"`
}

// Get returns the concept with the given @id, or nil.
func (h *History) Get(id string) *Concept {
	for _, c := range h.Graph {
		if c.ID == id {
			return c
		}
	}
	return nil
}

type Option func(*options)

type options struct {
	archive *Archive
	now     func() time.Time
	logger  *slog.Logger
}

// WithArchive saves the defining type of every new or changed concept.
func WithArchive(a *Archive) Option {
	return func(o *options) { o.archive = a }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func newOptions(opts []Option) *options {
	o := &options{now: time.Now, logger: log.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

const specHistoryTerm = "https://covesa.global/models/s2dm#specHistory"

// Init starts a history holding one entry for every concept of m that has
// an id.
func Init(m *concept.URIModel, ids map[string]string, opts ...Option) (*History, error) {
	o := newOptions(opts)
	now := o.now()

	h := &History{Context: make(map[string]interface{}, len(m.Context)+1)}
	for k, v := range m.Context {
		h.Context[k] = v
	}
	h.Context["specHistory"] = map[string]string{"@id": specHistoryTerm, "@container": "@list"}

	for _, n := range m.Graph {
		id, ok := ids[n.Name]
		if !ok {
			continue
		}
		e, err := o.entry(n.Name, id, now)
		if err != nil {
			return nil, err
		}
		h.Graph = append(h.Graph, &Concept{ID: n.ID, Type: n.Type, SpecHistory: []Entry{e}})
	}
	o.logger.Info("initialized spec history", "concepts", len(h.Graph))
	return h, nil
}

// Update adds the concepts of m that h does not know yet and appends an
// entry to every concept whose id changed. It returns the names of both.
func Update(h *History, m *concept.URIModel, ids map[string]string, opts ...Option) (added, changed []string, err error) {
	o := newOptions(opts)
	now := o.now()

	for _, n := range m.Graph {
		id, ok := ids[n.Name]
		if !ok {
			continue
		}
		c := h.Get(n.ID)
		if c != nil {
			if latest := c.Latest(); latest != nil && latest.ID == id {
				continue
			}
		}
		e, err := o.entry(n.Name, id, now)
		if err != nil {
			return nil, nil, err
		}
		if c == nil {
			h.Graph = append(h.Graph, &Concept{ID: n.ID, Type: n.Type, SpecHistory: []Entry{e}})
			added = append(added, n.Name)
			o.logger.Info("new concept", "concept", n.Name, "id", id)
			continue
		}
		c.SpecHistory = append(c.SpecHistory, e)
		changed = append(changed, n.Name)
		o.logger.Info("concept id changed", "concept", n.Name, "id", id)
	}
	return added, changed, nil
}

func (o *options) entry(name, id string, now time.Time) (Entry, error) {
	e := Entry{ID: id, Timestamp: now.UTC().Format(time.RFC3339)}
	if o.archive == nil {
		return e, nil
	}
	d, err := o.archive.Save(name, id, now)
	if err != nil {
		return Entry{}, err
	}
	e.Digest = d.String()
	return e, nil
}

// Marshal encodes h as indented JSON.
func Marshal(h *History) ([]byte, error) {
	return json.MarshalIndent(h, "", "  ")
}

// Load decodes a history written by Marshal and checks its digests.
func Load(data []byte) (*History, error) {
	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parse spec history: %w", err)
	}
	for _, c := range h.Graph {
		for _, e := range c.SpecHistory {
			if e.Digest == "" {
				continue
			}
			if _, err := digest.Parse(e.Digest); err != nil {
				return nil, fmt.Errorf("concept %s entry %s: %w", c.ID, e.ID, err)
			}
		}
	}
	return &h, nil
}
