package renderer

import (
	"github.com/etnz/watchlist"
)

// Sync renders the summary of a sync run.
func Sync(res watchlist.Result) string {
	var m markdown
	m.Printf("# Sync %s\n\n", res.Timestamp.Local().Format(watchlist.TimestampFormat))

	m.Printf("- Updated: %d\n", res.Updated)
	m.Printf("- Skipped: %d\n", res.Skipped)
	m.Printf("- Errored: %d\n", res.Errored)
	switch {
	case res.Recovered:
		m.Printf("- Committed uncommitted changes from a previous run\n")
	case res.Committed:
		m.Printf("- Changes committed\n")
	case res.HasChanges:
		m.Printf("- Changes written, not committed\n")
	default:
		m.Printf("- No price changes\n")
	}

	if len(res.Outcomes) == 0 {
		return m.String()
	}
	m.Printf("\n| Ticker | Status | Price | Detail |\n")
	m.Printf("|:---|:---|---:|:---|\n")
	for _, o := range res.Outcomes {
		detail := ""
		if o.Err != nil {
			detail = o.Err.Error()
		}
		m.Row(o.Ticker, string(o.Status), o.Price.String(), detail)
	}
	return m.String()
}
