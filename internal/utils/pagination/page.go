package pagination

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Page is a limit/offset window over an ordered listing.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewPage clamps the requested window: a non-positive limit becomes DefaultLimit,
// limits above MaxLimit are capped and negative offsets become zero.
func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// NextOffset returns the offset of the following page, or nil when total is exhausted.
func (p Page) NextOffset(total int) *int {
	next := p.Offset + p.Limit
	if next >= total {
		return nil
	}
	return &next
}
