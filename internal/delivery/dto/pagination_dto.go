package dto

// PageQuery is a parsed page/limit pair.
type PageQuery struct {
	Page  int
	Limit int
}

// Normalize fills defaults and clamps limit to max.
func (q PageQuery) Normalize(defaultLimit, max int) PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
	if q.Limit > max {
		q.Limit = max
	}
	return q
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
