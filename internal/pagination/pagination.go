// Package pagination 将有序序列切分为固定大小的页，页码从 1 开始。
//
// 无法解析的页码取第 1 页；小于 1 或超过总页数的页码都取最后一页。
// 空序列仍然有一页（空页）。
package pagination

import "strconv"

// Page 一页数据及导航信息
type Page[T any] struct {
	Items    []T   `json:"items"`
	Number   int   `json:"number"`
	PageSize int   `json:"page_size"`
	NumPages int   `json:"num_pages"`
	Total    int64 `json:"total"`
}

func (p Page[T]) HasNext() bool     { return p.Number < p.NumPages }
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }
func (p Page[T]) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}
func (p Page[T]) NextPageNumber() int     { return p.Number + 1 }
func (p Page[T]) PreviousPageNumber() int { return p.Number - 1 }

// PageRange 返回 1..NumPages，供模板渲染页码
func (p Page[T]) PageRange() []int {
	r := make([]int, p.NumPages)
	for i := range r {
		r[i] = i + 1
	}
	return r
}

// Window 描述一页在完整序列中的位置
type Window struct {
	Number   int
	PageSize int
	NumPages int
	Total    int64
}

func (w Window) Offset() int { return (w.Number - 1) * w.PageSize }
func (w Window) Limit() int  { return w.PageSize }

// Paginate 根据总数计算请求页的窗口
func Paginate(total int64, pageSize, number int) Window {
	if pageSize < 1 {
		pageSize = 1
	}
	numPages := 1
	if total > 0 {
		numPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	if number < 1 || number > numPages {
		number = numPages
	}
	return Window{Number: number, PageSize: pageSize, NumPages: numPages, Total: total}
}

// ParseNumber 解析 ?page= 参数，非法值视为第 1 页
func ParseNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return n
}

// NewPage 用窗口与已取出的数据组装 Page
func NewPage[T any](w Window, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Number: w.Number, PageSize: w.PageSize, NumPages: w.NumPages, Total: w.Total}
}

// Slice 对内存中的完整序列分页
func Slice[T any](items []T, pageSize, number int) Page[T] {
	w := Paginate(int64(len(items)), pageSize, number)
	start := w.Offset()
	end := start + w.Limit()
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}
	return NewPage(w, items[start:end])
}
