package book

// Pager walks an AddressBook in fixed-size pages. It cannot be rewound; start
// a new one with AddressBook.Iterate.
type Pager struct {
	book  *AddressBook
	names []string
	size  int
	pos   int
	done  bool
}

// Next returns up to the page size of record summaries. When the records run
// out mid-page the partial page is returned together with ErrNoMoreRecords,
// and every later call returns ErrNoMoreRecords alone.
func (p *Pager) Next() ([]string, error) {
	if p.done {
		return nil, ErrNoMoreRecords
	}

	page := make([]string, 0, min(p.size, len(p.names)-p.pos))
	for len(page) < p.size {
		if p.pos >= len(p.names) {
			p.done = true
			return page, ErrNoMoreRecords
		}
		r, ok := p.book.records[p.names[p.pos]]
		p.pos++
		if !ok {
			continue
		}
		page = append(page, r.String())
	}
	return page, nil
}
