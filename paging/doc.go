// Package paging provides offset and cursor pagination results that the
// resp package renders as paginated envelopes.
//
// # Offset Pages
//
//	page := paging.NewPage(items, 2, 20, total)
//	page.Offset()   // 20
//	page.LastPage() // ceil(total / 20)
//
// # Cursor Pagination
//
//	params := paging.Params{
//	    Cursor: r.URL.Query().Get("cursor"),
//	    Limit:  20,
//	}
//
//	result, err := paging.Paginate(params, func(cursor string, limit int) ([]Item, int, string, error) {
//	    return repo.List(ctx, cursor, limit)
//	})
//
// Timestamps can be used as opaque cursors:
//
//	cursor := paging.EncodeCursor(last.CreatedAt)
//	ts, err := paging.DecodeCursor(cursor)
//
// # Response Metadata
//
// Both *Page and *Result implement Paginator. Meta is rendered as:
//
//	{
//	  "current_page": 2,
//	  "per_page": 20,
//	  "last_page": 5,
//	  "from": 21,
//	  "to": 40,
//	  "total": 93,
//	  "next": "...",      // cursor results only
//	  "has_next": true
//	}
package paging
