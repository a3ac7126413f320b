// Package watchlist keeps a personal stock watchlist in sync with market
// prices.
//
// The watchlist is a single JSON file (by default stocks.json) holding an
// array of [Stock] records. It is meant to live in a git repository next to
// the web front end that renders it, so every write produces a stable,
// human readable, diff friendly file.
//
// The core functionalities are:
//   - Price arithmetic: exact decimal [Amount] values and the percentage
//     [Difference] between an entry price and a current price.
//   - Record updates: [ApplyPrice], [UpdateHighest] and [RefreshTimestamp]
//     return updated copies and never modify their input.
//   - Change detection: [HasChanged] compares only the price derived fields.
//   - Synchronization: [Syncer] fetches a quote per record, updates the
//     collection, and only when something changed writes the file and
//     commits it.
//   - Maintenance: [Recompute], [Check] and [Filter] support the offline
//     commands of the stocksync tool.
//
// Storage, version control and market data are reached through the narrow
// [Store], [VCS] and [Quoter] interfaces, implemented by the store, git and
// yahoo packages.
package watchlist
