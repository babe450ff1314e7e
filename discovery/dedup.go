package discovery

import "sort"

type dedupSlot struct {
	entry     CatalogEntry
	downloads int
	seq       int
}

// Dedup keeps, per catalog id, the entry with the most downloads seen so
// far. Ties keep the earlier entry. A Dedup belongs to a single fetch pass
// and is not safe for concurrent use.
type Dedup struct {
	slots map[string]*dedupSlot
	seq   int
}

// NewDedup returns an empty table.
func NewDedup() *Dedup {
	return &Dedup{slots: make(map[string]*dedupSlot)}
}

// Beats reports whether an entry with this id and download count would be
// kept. The fetch pipeline uses it to skip detail calls for losers.
func (d *Dedup) Beats(id string, downloads int) bool {
	cur, ok := d.slots[id]
	return !ok || downloads > cur.downloads
}

// Offer records entry and reports whether it replaced the previous holder
// of its id.
func (d *Dedup) Offer(entry CatalogEntry, downloads int) bool {
	if !d.Beats(entry.ID, downloads) {
		return false
	}
	d.seq++
	d.slots[entry.ID] = &dedupSlot{entry: entry, downloads: downloads, seq: d.seq}
	return true
}

// Downloads returns the download count kept for id.
func (d *Dedup) Downloads(id string) (int, bool) {
	s, ok := d.slots[id]
	if !ok {
		return 0, false
	}
	return s.downloads, true
}

// Len returns the number of distinct ids.
func (d *Dedup) Len() int { return len(d.slots) }

// Entries returns the surviving entries, most downloaded first.
func (d *Dedup) Entries() []CatalogEntry {
	slots := make([]*dedupSlot, 0, len(d.slots))
	for _, s := range d.slots {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].downloads != slots[j].downloads {
			return slots[i].downloads > slots[j].downloads
		}
		return slots[i].seq < slots[j].seq
	})

	entries := make([]CatalogEntry, 0, len(slots))
	for _, s := range slots {
		entries = append(entries, s.entry)
	}
	return entries
}
