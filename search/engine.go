// Package search combines a synchronous substring filter over the catalog with
// a debounced, best-effort semantic lookup by a remote matcher.
package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lankamart/storefront/models"
)

const (
	DefaultDelay   = 800 * time.Millisecond
	DefaultTimeout = 15 * time.Second

	// MinRemoteQueryLen is the shortest query, in characters, sent to the matcher.
	MinRemoteQueryLen = 2
)

// Entry is the catalog snapshot handed to a Matcher.
type Entry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"cat"`
}

// Matcher returns the IDs of catalog entries matching a free-text query.
type Matcher interface {
	Match(ctx context.Context, query string, catalog []Entry, lang models.Language) ([]string, error)
}

type Catalog interface {
	GetAllProducts() []models.Product
}

// State is what a search box shows.
type State struct {
	Query       string           `json:"query"`
	Language    models.Language  `json:"language"`
	Results     []models.Product `json:"results"`
	IsSearching bool             `json:"isSearching"`
}

type Option func(*Engine)

func WithDelay(d time.Duration) Option {
	return func(e *Engine) { e.delay = d }
}

func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// Engine tracks one search box. Every Type call bumps a generation counter;
// a remote response is merged only while its generation is still current.
type Engine struct {
	catalog Catalog
	matcher Matcher
	log     *zap.Logger
	delay   time.Duration
	timeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	query      string
	lang       models.Language
	remote     []string
	generation uint64
	inFlight   int
	timer      *time.Timer
	closed     bool
}

// NewEngine builds an engine over catalog. A nil matcher disables remote
// lookups entirely.
func NewEngine(catalog Catalog, matcher Matcher, log *zap.Logger, opts ...Option) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		catalog: catalog,
		matcher: matcher,
		log:     log,
		delay:   DefaultDelay,
		timeout: DefaultTimeout,
		ctx:     ctx,
		cancel:  cancel,
		lang:    models.DefaultLanguage,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Type records a keystroke: local matches are available immediately and a
// remote lookup is rescheduled to run once input has been quiet for the
// debounce delay.
func (e *Engine) Type(query string, lang models.Language) State {
	e.mu.Lock()
	e.generation++
	e.query = query
	e.lang = lang
	e.remote = nil
	e.stopTimerLocked()

	if !e.closed && e.matcher != nil && strings.TrimSpace(query) != "" && utf8.RuneCountInString(query) >= MinRemoteQueryLen {
		gen := e.generation
		e.wg.Add(1)
		e.timer = time.AfterFunc(e.delay, func() {
			defer e.wg.Done()
			e.lookup(gen)
		})
	}
	e.mu.Unlock()

	return e.State()
}

// State merges the current local and remote matches.
func (e *Engine) State() State {
	e.mu.Lock()
	query, lang := e.query, e.lang
	remote := e.remote
	searching := e.inFlight > 0
	e.mu.Unlock()

	return State{
		Query:       query,
		Language:    lang,
		Results:     merge(e.catalog.GetAllProducts(), query, lang, remote),
		IsSearching: searching,
	}
}

func (e *Engine) IsSearching() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inFlight > 0
}

// Search runs one local+remote search without debouncing.
func (e *Engine) Search(ctx context.Context, query string, lang models.Language) []models.Product {
	products := e.catalog.GetAllProducts()
	if strings.TrimSpace(query) == "" {
		return []models.Product{}
	}

	var remote []string
	if e.matcher != nil && utf8.RuneCountInString(query) >= MinRemoteQueryLen {
		remote = e.match(ctx, query, products, lang)
	}
	return merge(products, query, lang, remote)
}

// Close cancels pending and in-flight lookups and waits for them to finish.
func (e *Engine) Close() {
	e.mu.Lock()
	e.closed = true
	e.generation++
	e.stopTimerLocked()
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()
}

func (e *Engine) stopTimerLocked() {
	if e.timer != nil && e.timer.Stop() {
		e.wg.Done()
	}
	e.timer = nil
}

func (e *Engine) lookup(gen uint64) {
	e.mu.Lock()
	if gen != e.generation {
		e.mu.Unlock()
		return
	}
	query, lang := e.query, e.lang
	e.inFlight++
	e.mu.Unlock()

	ids := e.match(e.ctx, query, e.catalog.GetAllProducts(), lang)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.inFlight--
	if gen != e.generation {
		e.log.Debug("discarding stale remote matches", zap.String("query", query))
		return
	}
	e.remote = ids
}

// match calls the matcher; any failure counts as no matches.
func (e *Engine) match(ctx context.Context, query string, products []models.Product, lang models.Language) []string {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	ids, err := e.matcher.Match(ctx, query, Snapshot(products, lang), lang)
	if err != nil {
		e.log.Warn("remote search failed", zap.String("query", query), zap.Error(err))
		return nil
	}
	return ids
}

// Snapshot projects products into matcher entries for lang.
func Snapshot(products []models.Product, lang models.Language) []Entry {
	entries := make([]Entry, len(products))
	for i, p := range products {
		entries[i] = Entry{
			ID:       p.ID,
			Name:     p.Name.Get(lang),
			Category: p.Category.Get(lang),
		}
	}
	return entries
}

// LocalMatches returns, in catalog order, the products whose name or
// category in lang contains query, ignoring case. A blank query matches
// nothing.
func LocalMatches(products []models.Product, query string, lang models.Language) []models.Product {
	out := []models.Product{}
	if strings.TrimSpace(query) == "" {
		return out
	}
	lower := cases.Lower(language.Make(string(lang)))
	q := lower.String(query)
	for _, p := range products {
		if strings.Contains(lower.String(p.Name.Get(lang)), q) ||
			strings.Contains(lower.String(p.Category.Get(lang)), q) {
			out = append(out, p)
		}
	}
	return out
}

// merge appends remote-only matches, in remote order, after the local ones.
// Unknown and repeated IDs are dropped.
func merge(products []models.Product, query string, lang models.Language, remote []string) []models.Product {
	results := LocalMatches(products, query, lang)
	if len(results) == 0 && strings.TrimSpace(query) == "" {
		return results
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	seen := make(map[string]bool, len(results))
	for _, p := range results {
		seen[p.ID] = true
	}
	for _, id := range remote {
		p, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		results = append(results, p)
	}
	return results
}
