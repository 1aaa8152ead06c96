package dto

// PageQuery là tham số phân trang, page bắt đầu từ 0
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

func (q *PageQuery) Normalize() {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Limit <= 0 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
}
