package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 25
	// MaxLimit caps how many rows any listing query can request.
	MaxLimit = 100
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// NormalizeLimit enforces the configured default and maximum limits. A zero
// fallback means the package default applies.
func NormalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		if fallback > 0 {
			limit = fallback
		} else {
			limit = DefaultLimit
		}
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// NormalizePage clamps page numbers to 1-based.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset converts page/limit into a row offset.
func (p Params) Offset(fallbackLimit int) int {
	return (NormalizePage(p.Page) - 1) * NormalizeLimit(p.Limit, fallbackLimit)
}

// Normalized returns a copy with page and limit clamped.
func (p Params) Normalized(fallbackLimit int) Params {
	return Params{
		Page:  NormalizePage(p.Page),
		Limit: NormalizeLimit(p.Limit, fallbackLimit),
	}
}
