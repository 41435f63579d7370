// Package lines implements the append-only bucketed line store: the bottom
// layer of the pager, holding every raw input line plus a per-line info
// mask (bookmark, search-match bits, continuation). References into the
// store are logical indices, never pointers, so appends during streaming
// never invalidate anything a higher layer is holding onto.
package lines

// BucketSize is the number of lines held per bucket. Appends never
// reallocate an existing bucket; they only ever allocate a new one, so a
// (bucket, offset) pair handed out by an iterator stays valid forever.
const BucketSize = 1024

// Mask is a bitmask of per-line flags.
type Mask uint8

const (
	// Unknown is the zero value: no flags set.
	Unknown Mask = 0
	// Bookmark marks a line the user has bookmarked.
	Bookmark Mask = 1 << iota
	// FoundPattern marks a line containing at least one search match.
	FoundPattern
	// FoundPatternMulti marks a line containing two or more search matches.
	FoundPatternMulti
	// Continuation marks a line that is a continuation of the previous
	// physical line in a multiline cell.
	Continuation
)

// Info is the per-line metadata record.
type Info struct {
	Mask Mask
	// StartChar is the display column of the first search match on this
	// line, valid only when FoundPattern is set.
	StartChar int
	// RecordOffset is this line's offset within its logical record, used
	// for odd/even record highlighting across multiline records.
	RecordOffset int
}

type bucket struct {
	text []string
	info []Info
}

// Store is the append-only bucketed line buffer.
type Store struct {
	buckets []*bucket
	n       int // total number of lines appended
	order   []int
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Len returns the number of lines appended so far.
func (s *Store) Len() int {
	return s.n
}

// Append adds a new line to the store and returns its logical index.
func (s *Store) Append(text string) int {
	idx := s.n
	b := s.bucketFor(idx, true)
	off := idx % BucketSize
	if off == len(b.text) {
		b.text = append(b.text, text)
		b.info = append(b.info, Info{})
	} else {
		b.text[off] = text
		b.info[off] = Info{}
	}
	s.n++
	return idx
}

// bucketFor returns the bucket holding logical index idx, allocating it
// (and any intermediate buckets) if create is true.
func (s *Store) bucketFor(idx int, create bool) *bucket {
	bi := idx / BucketSize
	for bi >= len(s.buckets) {
		if !create {
			return nil
		}
		s.buckets = append(s.buckets, &bucket{
			text: make([]string, 0, BucketSize),
			info: make([]Info, 0, BucketSize),
		})
	}
	return s.buckets[bi]
}

// Get returns the text and info for logical index idx. The second return
// value is false if idx is out of range.
func (s *Store) Get(idx int) (string, Info, bool) {
	if idx < 0 || idx >= s.n {
		return "", Info{}, false
	}
	b := s.bucketFor(idx, false)
	off := idx % BucketSize
	return b.text[off], b.info[off], true
}

// SetMark overwrites the mask bits for idx with mask, leaving StartChar and
// RecordOffset untouched.
func (s *Store) SetMark(idx int, mask Mask) {
	s.mutate(idx, func(info *Info) { info.Mask = mask })
}

// XorMark toggles mask's bits in idx's mask (used for bookmark toggling).
func (s *Store) XorMark(idx int, mask Mask) {
	s.mutate(idx, func(info *Info) { info.Mask ^= mask })
}

// SetFound records a search match at display column startChar, setting
// FoundPattern (and FoundPatternMulti when multi is true).
func (s *Store) SetFound(idx int, startChar int, multi bool) {
	s.mutate(idx, func(info *Info) {
		info.Mask |= FoundPattern
		if multi {
			info.Mask |= FoundPatternMulti
		}
		info.StartChar = startChar
	})
}

// SetContinuation sets or clears the Continuation bit for idx.
func (s *Store) SetContinuation(idx int, on bool) {
	s.mutate(idx, func(info *Info) {
		if on {
			info.Mask |= Continuation
		} else {
			info.Mask &^= Continuation
		}
	})
}

// SetRecordOffset stamps idx's record-relative offset (for odd/even
// highlighting of multi-line records).
func (s *Store) SetRecordOffset(idx, offset int) {
	s.mutate(idx, func(info *Info) { info.RecordOffset = offset })
}

func (s *Store) mutate(idx int, fn func(*Info)) {
	if idx < 0 || idx >= s.n {
		return
	}
	b := s.bucketFor(idx, false)
	off := idx % BucketSize
	fn(&b.info[off])
}

// ClearSearchBitsAll clears FoundPattern and FoundPatternMulti on every
// line. Called whenever the search pattern changes (§4.3 "Caching").
func (s *Store) ClearSearchBitsAll() {
	for _, b := range s.buckets {
		for i := range b.info {
			b.info[i].Mask &^= FoundPattern | FoundPatternMulti
			b.info[i].StartChar = 0
		}
	}
}

// ApplyOrderMap installs perm as the iteration order: perm[i] is the
// logical index visited at position i. A nil perm restores storage order.
// perm must be a permutation of [0, s.Len()); callers (the sort pipeline)
// are responsible for that invariant.
func (s *Store) ApplyOrderMap(perm []int) {
	s.order = perm
}

// OrderMap returns the currently installed reordering, or nil if none.
func (s *Store) OrderMap() []int {
	return s.order
}

// visit maps a position in iteration order to a logical index.
func (s *Store) visit(pos int) int {
	if s.order == nil {
		return pos
	}
	return s.order[pos]
}

// Iterator walks the store forward or backward from a starting logical
// position (in iteration-order space, not storage order), honoring any
// installed order map.
type Iterator struct {
	store   *Store
	pos     int
	forward bool
}

// IterFrom returns a forward iterator starting at iteration-order position
// pos (inclusive).
func (s *Store) IterFrom(pos int) *Iterator {
	return &Iterator{store: s, pos: pos, forward: true}
}

// IterFromBackward returns a backward iterator starting at iteration-order
// position pos (inclusive), walking toward position 0.
func (s *Store) IterFromBackward(pos int) *Iterator {
	return &Iterator{store: s, pos: pos, forward: false}
}

// Next returns the next (text, info, logicalIndex) triple and advances the
// iterator. ok is false once iteration is exhausted.
func (it *Iterator) Next() (text string, info Info, logicalIndex int, ok bool) {
	if it.pos < 0 || it.pos >= it.store.n {
		return "", Info{}, 0, false
	}
	logicalIndex = it.store.visit(it.pos)
	text, info, ok = it.store.Get(logicalIndex)
	if it.forward {
		it.pos++
	} else {
		it.pos--
	}
	return text, info, logicalIndex, ok
}
