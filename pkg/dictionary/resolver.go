package dictionary

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/iasonasma/LibreLingo/pkg/db"
)

// DefaultCacheSize is the number of lookups a Resolver remembers.
const DefaultCacheSize = 4096

// Definition is one glossed word. Definition is omitted from JSON when the
// dictionary has nothing for the word.
type Definition struct {
	Word       string `json:"word"`
	Definition string `json:"definition,omitempty"`
}

// LookupResult is either Found with a non-empty Definition, or not found.
type LookupResult struct {
	Definition string
	Found      bool
}

// NotFound is the LookupResult for a word without a usable definition.
var NotFound = LookupResult{}

// Found returns a LookupResult carrying def.
func Found(def string) LookupResult {
	return LookupResult{Definition: def, Found: true}
}

type cacheKey struct {
	courseID int64
	word     string
	reverse  bool
}

// Resolver looks up course dictionary definitions. Results are cached for
// the lifetime of the Resolver, which assumes the dictionary does not change
// while it is in use (one Resolver per export run).
type Resolver struct {
	db    db.DBExecutor
	cache *lru.Cache[cacheKey, LookupResult]
}

// NewResolver creates a Resolver over conn. A cacheSize <= 0 selects
// DefaultCacheSize.
func NewResolver(conn db.DBExecutor, cacheSize int) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, LookupResult](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{db: conn, cache: cache}, nil
}

// Lookup finds the definition of word in the course dictionary for the
// given direction. Missing rows and empty definitions are NotFound, not errors.
func (r *Resolver) Lookup(ctx context.Context, courseID int64, word string, reverse bool) (LookupResult, error) {
	key := cacheKey{courseID: courseID, word: word, reverse: reverse}
	if res, ok := r.cache.Get(key); ok {
		return res, nil
	}

	def, err := db.GetDefinition(ctx, r.db, courseID, word, reverse)
	var res LookupResult
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res = NotFound
	case err != nil:
		return NotFound, fmt.Errorf("lookup %q: %w", word, err)
	default:
		res = Found(def)
	}
	r.cache.Add(key, res)
	return res, nil
}

// DefineWord returns word with its definition, or bare word when the
// dictionary has none.
func (r *Resolver) DefineWord(ctx context.Context, courseID int64, word string, reverse bool) (Definition, error) {
	res, err := r.Lookup(ctx, courseID, word, reverse)
	if err != nil {
		return Definition{}, err
	}
	if !res.Found {
		return Definition{Word: word}, nil
	}
	return Definition{Word: word, Definition: res.Definition}, nil
}

// DefineSentence splits sentence on single spaces, without cleaning, and
// defines every piece in order.
func (r *Resolver) DefineSentence(ctx context.Context, courseID int64, sentence string, reverse bool) ([]Definition, error) {
	words := strings.Split(sentence, " ")
	out := make([]Definition, 0, len(words))
	for _, w := range words {
		d, err := r.DefineWord(ctx, courseID, w, reverse)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
