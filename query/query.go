package query

//DefaultPerPage is the page size used when none is given
const DefaultPerPage = 3

//Page is one window of a paginated list
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
}

//TotalPages returns the number of pages needed to show n items, per to a page
func TotalPages(n, per int) int {
	if n <= 0 || per <= 0 {
		return 0
	}
	return (n + per - 1) / per
}

//Paginate returns the zero-based page of items. Out of range pages are empty.
func Paginate[T any](items []T, page, per int) Page[T] {
	if per <= 0 {
		per = DefaultPerPage
	}
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PerPage:    per,
		TotalPages: TotalPages(len(items), per),
		Total:      len(items),
	}
	if page < 0 || page >= p.TotalPages {
		return p
	}

	start := page * per
	end := start + per
	if end > len(items) {
		end = len(items)
	}
	p.Items = items[start:end]
	return p
}

//Carousel steps through pages of items, wrapping at either end
type Carousel[T any] struct {
	items   []T
	per     int
	current int
}

//NewCarousel returns a Carousel on the first page
func NewCarousel[T any](items []T, per int) *Carousel[T] {
	if per <= 0 {
		per = DefaultPerPage
	}
	return &Carousel[T]{items: items, per: per}
}

//Current returns the current page number
func (c *Carousel[T]) Current() int {
	return c.current
}

//TotalPages returns the number of pages
func (c *Carousel[T]) TotalPages() int {
	return TotalPages(len(c.items), c.per)
}

//Items returns the items on the current page
func (c *Carousel[T]) Items() []T {
	return Paginate(c.items, c.current, c.per).Items
}

//Next moves to the next page, wrapping to the first
func (c *Carousel[T]) Next() {
	if total := c.TotalPages(); total > 0 {
		c.current = (c.current + 1) % total
	}
}

//Prev moves to the previous page, wrapping to the last
func (c *Carousel[T]) Prev() {
	if total := c.TotalPages(); total > 0 {
		c.current = (c.current - 1 + total) % total
	}
}

//GoTo moves to page. Out of range pages are ignored.
func (c *Carousel[T]) GoTo(page int) {
	if page >= 0 && page < c.TotalPages() {
		c.current = page
	}
}

//HasItems reports whether there is anything to show
func (c *Carousel[T]) HasItems() bool {
	return len(c.items) > 0
}

//CanNavigate reports whether there is more than one page
func (c *Carousel[T]) CanNavigate() bool {
	return c.TotalPages() > 1
}

//HasPrev reports whether the current page is not the first
func (c *Carousel[T]) HasPrev() bool {
	return c.current > 0
}

//HasNext reports whether the current page is not the last
func (c *Carousel[T]) HasNext() bool {
	return c.current < c.TotalPages()-1
}
