package app

// Page is one slice of an ordered listing.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Number      int  `json:"number"`
	NumPages    int  `json:"numPages"`
	Count       int  `json:"count"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// Paginate slices items into fixed-size pages. Out-of-range page numbers
// clamp instead of erroring: requests past the end return the last valid
// page, requests below 1 return the first. A listing with items never
// yields an empty page.
func Paginate[T any](items []T, pageSize, pageNumber int) *Page[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	numPages := (len(items) + pageSize - 1) / pageSize
	if numPages == 0 {
		numPages = 1
	}
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageNumber > numPages {
		pageNumber = numPages
	}

	start := (pageNumber - 1) * pageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	pageItems := items[start:end]
	if pageItems == nil {
		pageItems = []T{} // DON'T return a nil slice
	}

	return &Page[T]{
		Items:       pageItems,
		Number:      pageNumber,
		NumPages:    numPages,
		Count:       len(items),
		HasNext:     pageNumber < numPages,
		HasPrevious: pageNumber > 1,
	}
}
