// Package paging — расчёт числа страниц для списков консоли.
package paging

// TotalPages возвращает число страниц для totalItems элементов по pageSize на странице.
// pageSize < 1 считается равным 1, результат всегда не меньше 1.
func TotalPages(totalItems, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	pages := (totalItems + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// TotalItems возвращает общее количество элементов для расчёта страниц.
//
// total — значение, сообщённое Auth0 (include_totals=true). Если оно не
// получено (0 при непустой странице), используется приближение: элементы
// предыдущих страниц плюс текущая, и ещё одна страница, если текущая заполнена.
func TotalItems(total, page, pageSize, pageLen int) int {
	if total > 0 || pageLen == 0 {
		return max(total, page*pageSize+pageLen)
	}
	approx := page*pageSize + pageLen
	if pageSize > 0 && pageLen >= pageSize {
		approx += pageSize
	}
	return approx
}

// Pager — состояние пагинации для шаблонов.
type Pager struct {
	Page       int // текущая страница, с 0
	TotalPages int
	Total      int
}

// New строит Pager для текущей страницы.
func New(page, pageSize, total, pageLen int) Pager {
	items := TotalItems(total, page, pageSize, pageLen)
	return Pager{
		Page:       page,
		TotalPages: TotalPages(items, pageSize),
		Total:      items,
	}
}

// HasPrev — есть предыдущая страница.
func (p Pager) HasPrev() bool { return p.Page > 0 }

// HasNext — есть следующая страница.
func (p Pager) HasNext() bool { return p.Page+1 < p.TotalPages }
