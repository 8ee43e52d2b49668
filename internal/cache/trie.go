// Reelmatch - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package cache

import (
	"sort"
	"strings"
	"sync"
)

type trieNode[V any] struct {
	children map[rune]*trieNode[V]
	entries  []trieEntry[V]
}

type trieEntry[V any] struct {
	key  string // original casing
	seq  int    // insertion order
	data V
}

// TrieResult is one autocomplete match.
type TrieResult[V any] struct {
	Key  string
	Data V
}

// Trie is a thread-safe prefix tree for autocomplete. Matching ignores case
// unless the trie was built case sensitive. The same key may be inserted
// more than once; each insertion is kept as its own result.
type Trie[V any] struct {
	mu             sync.RWMutex
	root           *trieNode[V]
	size           int
	caseSensitive  bool
	maxSuggestions int
}

// NewTrie creates a case-insensitive trie returning at most 10 suggestions by default.
func NewTrie[V any]() *Trie[V] {
	return NewTrieWithOptions[V](false, 10)
}

// NewTrieWithOptions creates a trie with explicit case handling and default limit.
func NewTrieWithOptions[V any](caseSensitive bool, maxSuggestions int) *Trie[V] {
	if maxSuggestions <= 0 {
		maxSuggestions = 10
	}
	return &Trie[V]{
		root:           newTrieNode[V](),
		caseSensitive:  caseSensitive,
		maxSuggestions: maxSuggestions,
	}
}

func newTrieNode[V any]() *trieNode[V] {
	return &trieNode[V]{children: make(map[rune]*trieNode[V])}
}

func (t *Trie[V]) normalize(key string) string {
	if t.caseSensitive {
		return key
	}
	return strings.ToLower(key)
}

// Insert adds key with its data. Empty keys are ignored.
func (t *Trie[V]) Insert(key string, data V) {
	if key == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	node := t.root
	for _, ch := range t.normalize(key) {
		next, ok := node.children[ch]
		if !ok {
			next = newTrieNode[V]()
			node.children[ch] = next
		}
		node = next
	}
	node.entries = append(node.entries, trieEntry[V]{key: key, seq: t.size, data: data})
	t.size++
}

// Autocomplete returns up to the default number of keys starting with prefix.
func (t *Trie[V]) Autocomplete(prefix string) []TrieResult[V] {
	return t.AutocompleteWithLimit(prefix, t.maxSuggestions)
}

// AutocompleteWithLimit returns up to limit keys starting with prefix,
// shortest key first, then alphabetical, then insertion order.
func (t *Trie[V]) AutocompleteWithLimit(prefix string, limit int) []TrieResult[V] {
	if limit <= 0 {
		limit = t.maxSuggestions
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.root
	for _, ch := range t.normalize(prefix) {
		next, ok := node.children[ch]
		if !ok {
			return nil
		}
		node = next
	}

	var found []trieEntry[V]
	collect(node, &found)

	sort.Slice(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if len(a.key) != len(b.key) {
			return len(a.key) < len(b.key)
		}
		if a.key != b.key {
			return a.key < b.key
		}
		return a.seq < b.seq
	})

	if len(found) > limit {
		found = found[:limit]
	}
	out := make([]TrieResult[V], len(found))
	for i, e := range found {
		out[i] = TrieResult[V]{Key: e.key, Data: e.data}
	}
	return out
}

func collect[V any](node *trieNode[V], out *[]trieEntry[V]) {
	*out = append(*out, node.entries...)
	for _, child := range node.children {
		collect(child, out)
	}
}

// Size is the number of insertions.
func (t *Trie[V]) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}
