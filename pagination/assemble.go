package pagination

// ApplyLocalFilter re-paginates an over-fetched batch after a predicate the
// storage layer could not evaluate. raw is the over-fetched result set in
// final sort order; rawWasFull reports whether storage returned the full
// over-fetch batch, which is what hasMore conservatively reflects (there may
// be no further matching rows even when it is true).
func ApplyLocalFilter[T any](raw []T, rawWasFull bool, limit int, keep func(T) bool, cursorOf func(T) Cursor) (Page[T], error) {
	kept := make([]T, 0, limit)
	for _, row := range raw {
		if keep(row) {
			kept = append(kept, row)
		}
		if len(kept) == limit {
			break
		}
	}

	page := Page[T]{Items: kept, HasMore: rawWasFull}
	if !page.HasMore {
		return page, nil
	}

	// Resume after the last surviving row; rows between it and the end of
	// the raw batch fail the predicate again on the next call. When nothing
	// survived, resume after the last raw row so the client still advances.
	var next Cursor
	if len(kept) > 0 {
		next = cursorOf(kept[len(kept)-1])
	} else if len(raw) > 0 {
		next = cursorOf(raw[len(raw)-1])
	} else {
		page.HasMore = false
		return page, nil
	}

	token, err := EncodeToken(next)
	if err != nil {
		return Page[T]{}, err
	}
	if token != "" {
		page.NextCursor = &token
	}
	return page, nil
}

// ApplyPlain paginates a limit+1 fetch where every predicate was pushed into
// the storage query.
func ApplyPlain[T any](rows []T, limit int, cursorOf func(T) Cursor) (Page[T], error) {
	page := Page[T]{HasMore: len(rows) > limit}
	if page.HasMore {
		rows = rows[:limit]
	}
	page.Items = rows

	if page.HasMore && len(rows) > 0 {
		token, err := EncodeToken(cursorOf(rows[len(rows)-1]))
		if err != nil {
			return Page[T]{}, err
		}
		if token != "" {
			page.NextCursor = &token
		}
	}
	return page, nil
}
