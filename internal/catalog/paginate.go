package catalog

// SearchHasMore decides whether a search page has a successor. A reported
// total is authoritative; without one a full page implies more results.
// count is the normalized item count of the current page.
func SearchHasMore(count, pageSize, page int, total *int) bool {
	if total != nil {
		if pageSize <= 0 {
			return false
		}
		pages := *total / pageSize
		if *total%pageSize != 0 {
			pages++
		}
		return page < pages
	}
	return count == pageSize
}

// FeedHasMore decides whether the feed has a successor page. The feed never
// reports a total, so any non-empty page implies there may be more.
func FeedHasMore(count int) bool {
	return count > 0
}
