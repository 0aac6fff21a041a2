// Vocalix - Social Audio Feed Ranking & Curation Service
// Copyright 2026 Melloom
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/melloom/Vocalix-sub005

package feed

// DefaultPageSize is the page length used when a caller leaves it unset.
const DefaultPageSize = 20

// Paginate returns the forward-growing window over an ordered sequence:
// a prefix of min(pageSize*pages, len(ordered)) items plus a flag reporting
// whether items remain beyond it.
//
// Requesting more than is available returns everything available without
// error. The window only grows forward; callers reset to the first page
// whenever the upstream ordering criteria (mode, filters, topic focus)
// change. A zero pageSize selects DefaultPageSize and zero pages means one
// page; negative values are caller-contract violations and are rejected.
func Paginate[T any](ordered []T, pageSize, pages int) (Page[T], error) {
	if pageSize < 0 {
		return Page[T]{}, ErrInvalidPageSize
	}
	if pages < 0 {
		return Page[T]{}, ErrInvalidPageCount
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pages == 0 {
		pages = 1
	}

	total := len(ordered)
	n := pageSize * pages
	if n > total {
		n = total
	}

	return Page[T]{
		Items:   ordered[:n],
		HasMore: n < total,
		Total:   total,
	}, nil
}
