package watchlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultPath is the watchlist file used when none is configured.
const DefaultPath = "stocks.json"

// Store reads and writes the watchlist file.
type Store interface {
	Read(path string) ([]Stock, error)
	Write(path string, stocks []Stock) error
}

// VCS records a new version of the watchlist file.
type VCS interface {
	Add(ctx context.Context, path string) error
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context) error
}

// DirtyChecker is implemented by a VCS that can tell whether a file has
// uncommitted changes.
type DirtyChecker interface {
	Dirty(ctx context.Context, path string) (bool, error)
}

// Quote is a market quote. Price is Null when the source had no price.
type Quote struct {
	Symbol string
	Price  Amount
}

// Quoter fetches the current quote of a market data symbol.
type Quoter interface {
	Quote(ctx context.Context, symbol string) (Quote, error)
}

// Status is the outcome of a sync for a single record.
type Status string

const (
	Updated Status = "updated"
	Skipped Status = "skipped"
	Errored Status = "errored"
)

// Outcome is what happened to one record during a sync.
type Outcome struct {
	Ticker string
	Status Status
	Price  Amount // the quoted price, when Updated
	Err    error  // the cause, when Errored
}

// Result summarizes a sync run.
type Result struct {
	Updated, Skipped, Errored int
	HasChanges                bool // the file content changed and was written
	Committed                 bool // a commit was created
	Recovered                 bool // a previously uncommitted file was committed
	Timestamp                 time.Time
	Outcomes                  []Outcome // in file order
}

// DefaultCommitMessage formats the commit message of a sync made at t.
func DefaultCommitMessage(t time.Time) string {
	return "update data at " + t.Local().Format("2006. 01. 02. 15:04")
}

// nothingToCommit is the git message for a clean tree.
const nothingToCommit = "nothing to commit"

// Syncer synchronizes a watchlist file with market prices.
//
// Records are processed one at a time, in file order. A record that cannot be
// quoted is counted and left unchanged, it never aborts the run. Reading or
// writing the file and recording it in the VCS are fatal.
type Syncer struct {
	Path   string // watchlist file, DefaultPath if empty
	Store  Store
	Quoter Quoter
	VCS    VCS

	TrackHighest       bool // maintain Stock.HighestPrice
	Push               bool // push after commit
	RecoverUncommitted bool // commit a dirty file even when no price changed

	CommitMessage func(time.Time) string // DefaultCommitMessage if nil
	Now           func() time.Time       // time.Now if nil
	Logger        *zap.Logger            // no logs if nil
}

func (s *Syncer) path() string {
	if s.Path == "" {
		return DefaultPath
	}
	return s.Path
}

func (s *Syncer) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Syncer) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Sync runs a single synchronization pass.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	log := s.logger()
	path := s.path()
	res := Result{Timestamp: s.now()}

	original, err := s.Store.Read(path)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	log.Info("watchlist loaded", zap.String("path", path), zap.Int("stocks", len(original)))

	updated := make([]Stock, len(original))
	copy(updated, original)

	res.Outcomes = make([]Outcome, 0, len(original))
	for i, stock := range original {
		outcome := s.syncStock(ctx, stock, &updated[i])
		switch outcome.Status {
		case Updated:
			res.Updated++
		case Skipped:
			res.Skipped++
		case Errored:
			res.Errored++
		}
		res.Outcomes = append(res.Outcomes, outcome)
	}

	res.HasChanges = HasChanged(original, updated, s.TrackHighest)
	if !res.HasChanges {
		log.Info("no price changes detected")
		if s.RecoverUncommitted {
			if err := s.recoverUncommitted(ctx, path, &res); err != nil {
				return res, err
			}
		}
		return res, nil
	}

	if err := s.Store.Write(path, updated); err != nil {
		return res, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	log.Info("watchlist written", zap.String("path", path))

	committed, err := s.commit(ctx, path, res.Timestamp)
	res.Committed = committed
	return res, err
}

// syncStock fetches the price of stock and writes the updated record in dst.
// dst is left untouched unless the record is Updated.
func (s *Syncer) syncStock(ctx context.Context, stock Stock, dst *Stock) Outcome {
	log := s.logger().With(zap.String("ticker", stock.Ticker))
	out := Outcome{Ticker: stock.Ticker}

	if !stock.Syncable() {
		log.Debug("skipped, no market data symbol")
		out.Status = Skipped
		return out
	}

	symbol := strings.TrimSpace(stock.YahooTicker)
	quote, err := s.Quoter.Quote(ctx, symbol)
	if err == nil && !quote.Price.Valid() {
		err = fmt.Errorf("no price for %s", symbol)
	}
	if err != nil {
		out.Status, out.Err = Errored, fmt.Errorf("%w: %w", ErrFetch, err)
		log.Warn("quote failed", zap.String("symbol", symbol), zap.Error(err))
		return out
	}

	next, err := ApplyPrice(stock, quote.Price)
	if err != nil {
		out.Status, out.Err = Errored, err
		log.Warn("cannot apply price", zap.Stringer("price", quote.Price), zap.Error(err))
		return out
	}
	if s.TrackHighest {
		next = UpdateHighest(next, quote.Price)
	}
	next = RefreshTimestamp(next, s.now())

	*dst = next
	out.Status, out.Price = Updated, quote.Price
	log.Info("updated",
		zap.Stringer("entry", stock.EntryPrice),
		zap.Stringer("price", quote.Price),
		zap.Stringer("difference", next.Difference))
	return out
}

// commit records path in the VCS. It returns false when there was nothing
// to commit, and true once the commit exists, even if the push failed.
func (s *Syncer) commit(ctx context.Context, path string, at time.Time) (bool, error) {
	log := s.logger()
	if s.VCS == nil {
		log.Debug("no version control configured")
		return false, nil
	}

	msg := DefaultCommitMessage
	if s.CommitMessage != nil {
		msg = s.CommitMessage
	}

	if err := s.VCS.Add(ctx, path); err != nil {
		return false, fmt.Errorf("%w: %w", ErrVersionControl, err)
	}
	if err := s.VCS.Commit(ctx, msg(at)); err != nil {
		if isNothingToCommit(err) {
			log.Info("nothing to commit")
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrVersionControl, err)
	}
	if s.Push {
		if err := s.VCS.Push(ctx); err != nil {
			return true, fmt.Errorf("%w: %w", ErrVersionControl, err)
		}
		log.Info("changes committed and pushed")
	} else {
		log.Info("changes committed")
	}
	return true, nil
}

// recoverUncommitted commits path if a previous run wrote it but failed to commit it.
func (s *Syncer) recoverUncommitted(ctx context.Context, path string, res *Result) error {
	checker, ok := s.VCS.(DirtyChecker)
	if !ok {
		return nil
	}
	dirty, err := checker.Dirty(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVersionControl, err)
	}
	if !dirty {
		return nil
	}
	s.logger().Warn("committing uncommitted watchlist changes", zap.String("path", path))
	committed, err := s.commit(ctx, path, res.Timestamp)
	res.Committed, res.Recovered = committed, committed
	return err
}

// isNothingToCommit reports whether a commit error means the tree was clean.
func isNothingToCommit(err error) bool {
	return strings.Contains(err.Error(), nothingToCommit)
}
