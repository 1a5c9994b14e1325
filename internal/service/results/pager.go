package results

import "github.com/Domenick1991/airbooking-web/internal/domain"

// Pager describes the page controls under a result list.
type Pager struct {
	Page    int
	Pages   int
	Total   int
	Show    bool
	HasPrev bool
	HasNext bool
}

func NewPager(p domain.Pagination) Pager {
	return Pager{
		Page:    p.Page,
		Pages:   p.Pages,
		Total:   p.Total,
		Show:    p.Pages > 1,
		HasPrev: p.Page > 1,
		HasNext: p.Page < p.Pages,
	}
}

func (p Pager) Prev() int { return p.Page - 1 }
func (p Pager) Next() int { return p.Page + 1 }
