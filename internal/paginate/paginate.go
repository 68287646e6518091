// Package paginate slices an in-memory list into pages for table views.
// It holds no data beyond the current-page cursor and performs no I/O.
package paginate

// DefaultPageSize matches the row count the portal tables render.
const DefaultPageSize = 5

type Pager[T any] struct {
	items    []T
	pageSize int
	current  int
}

func New[T any](pageSize int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager[T]{pageSize: pageSize, current: 1}
}

// SetItems replaces the underlying list and re-clamps the cursor so the
// current page can never slice out of range.
func (p *Pager[T]) SetItems(items []T) {
	p.items = items
	p.clamp()
}

// SetPageSize changes the page size and re-clamps the cursor.
func (p *Pager[T]) SetPageSize(size int) {
	if size <= 0 {
		return
	}
	p.pageSize = size
	p.clamp()
}

// Reset moves back to the first page. Views call this whenever a filter
// changes, since pagination is independent of filtering.
func (p *Pager[T]) Reset() {
	p.current = 1
}

// Total returns the page count: ceil(len/size), and never less than one.
// An empty list is a single empty page, not zero pages.
func (p *Pager[T]) Total() int {
	if len(p.items) == 0 {
		return 1
	}
	return (len(p.items) + p.pageSize - 1) / p.pageSize
}

func (p *Pager[T]) Current() int {
	return p.current
}

func (p *Pager[T]) PageSize() int {
	return p.pageSize
}

func (p *Pager[T]) Len() int {
	return len(p.items)
}

// Page returns the current page's slice of the list, in original order.
func (p *Pager[T]) Page() []T {
	start := (p.current - 1) * p.pageSize
	if start >= len(p.items) {
		return nil
	}
	end := start + p.pageSize
	if end > len(p.items) {
		end = len(p.items)
	}
	return p.items[start:end]
}

// Next advances one page, clamping at the last page.
func (p *Pager[T]) Next() {
	if p.current < p.Total() {
		p.current++
	}
}

// Prev moves back one page, clamping at the first page.
func (p *Pager[T]) Prev() {
	if p.current > 1 {
		p.current--
	}
}

// SetPage jumps to a page, clamping into [1, Total].
func (p *Pager[T]) SetPage(n int) {
	p.current = n
	p.clamp()
}

func (p *Pager[T]) clamp() {
	if p.current < 1 {
		p.current = 1
	}
	if t := p.Total(); p.current > t {
		p.current = t
	}
}
