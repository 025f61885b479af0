package responses

type ErrorResponse struct {
	Code          string `json:"code"`
	Error         string `json:"error"`
	ErrorInstance error  `json:"-"`
}

type GeneralResponse[T any] struct {
	Status string `json:"status"`
	Result T      `json:"result"`
}

type ListResponse[T any] struct {
	Status  string `json:"status"`
	Total   int64  `json:"total"`
	Results []T    `json:"results"`
	HasMore bool   `json:"has_more"`
}

const ResponseCodeOk = "000000"

func NewListResponse[T any](items []T, total int64, offset int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{
		Status:  ResponseCodeOk,
		Total:   total,
		Results: items,
		HasMore: int64(offset+len(items)) < total,
	}
}
