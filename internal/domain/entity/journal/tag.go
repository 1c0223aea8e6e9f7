package journal

// Tag labels a trade for later analysis. Names are stored with the case the
// caller supplied; a tag name appears at most once per trade.
type Tag struct {
	ID   int64
	Name string
}
