// Package table composes the filter and sort engines, the viewports and the
// selection model into a single virtualized table.
//
// The active view is the sorted view if one exists, else the filtered view,
// else the full record list. Every time the active view is replaced the
// vertical offset returns to 0. A filter applied while a sort is active is
// re-sorted with the same property and direction before it is published.
//
// A Table is owned by a single goroutine and carries no locks. Events are
// published synchronously through the notifier.
package table

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/gridview/internal/filter"
	"github.com/dshills/gridview/internal/input/key"
	"github.com/dshills/gridview/internal/logging"
	"github.com/dshills/gridview/internal/notify"
	"github.com/dshills/gridview/internal/record"
	"github.com/dshills/gridview/internal/schema"
	"github.com/dshills/gridview/internal/selection"
	"github.com/dshills/gridview/internal/sorting"
	"github.com/dshills/gridview/internal/viewport"
)

// Table is a virtualized view over a fixed record list.
type Table struct {
	id     uuid.UUID
	schema *schema.Schema

	records []*record.Record
	alive   map[*record.Record]struct{}

	// filtered is nil when no search is active.
	filtered []*record.Record
	search   *filter.Options
	result   filter.Result

	// sorted is nil when no sort is active.
	sorted    []*record.Record
	sortKey   string
	sortDir   sorting.Direction
	sortOn    bool
	lastSort  sorting.Report
	sorter    *sorting.Sorter
	algorithm sorting.Algorithm

	// generation identifies the sort input; it changes whenever the
	// filtered view or the record list changes.
	generation uint64

	windowLength int
	vertical     *viewport.Vertical
	horizontal   *viewport.Horizontal
	selection    *selection.Model

	notifier *notify.Notifier
	logger   *logging.Logger
}

// New creates a table over records. The slice is referenced, not copied,
// and must not be modified afterwards.
func New(s *schema.Schema, records []*record.Record, opts ...Option) (*Table, error) {
	if s == nil {
		return nil, ErrNilSchema
	}

	t := &Table{
		schema:       s,
		records:      records,
		alive:        make(map[*record.Record]struct{}, len(records)),
		windowLength: viewport.DefaultWindowLength,
		algorithm:    sorting.AlgorithmBucket,
		logger:       logging.NullLogger,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.windowLength < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindowLength, t.windowLength)
	}
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilRecord, i)
		}
		t.alive[r] = struct{}{}
	}
	if t.id == uuid.Nil {
		t.id = uuid.New()
	}

	t.logger = t.logger.WithComponent("table").WithField("table", t.id.String())
	t.sorter = sorting.NewSorter(s, t.algorithm)
	t.vertical = viewport.NewVertical(t.windowLength)
	t.vertical.Reset(len(records))
	t.horizontal = viewport.NewHorizontal()
	t.selection = selection.New()

	return t, nil
}

// ID returns the table ID.
func (t *Table) ID() uuid.UUID {
	return t.id
}

// Schema returns the table schema.
func (t *Table) Schema() *schema.Schema {
	return t.schema
}

// Records returns the full record list.
func (t *Table) Records() []*record.Record {
	return t.records
}

// ActiveView returns sorted ?? filtered ?? full. The slice must not be
// modified.
func (t *Table) ActiveView() []*record.Record {
	switch {
	case t.sorted != nil:
		return t.sorted
	case t.filtered != nil:
		return t.filtered
	default:
		return t.records
	}
}

// VisibleRecords returns the rows inside the vertical window.
func (t *Table) VisibleRecords() []*record.Record {
	view := t.ActiveView()
	start, end := t.vertical.Window()
	end = min(end, len(view))
	start = min(start, end)
	return view[start:end:end]
}

// RecordAtRow returns the record shown on window row i.
func (t *Table) RecordAtRow(i int) (*record.Record, bool) {
	visible := t.VisibleRecords()
	if i < 0 || i >= len(visible) {
		return nil, false
	}
	return visible[i], true
}

// Search filters the full record list and publishes the result. When a sort
// is active the result is re-sorted before it becomes visible.
func (t *Table) Search(opts filter.Options) filter.Result {
	start := time.Now()
	result := filter.Apply(t.records, t.schema, opts)
	t.logger.Debug("filtered %d of %d records in %s", len(result.Records), len(t.records), time.Since(start))

	t.filtered = result.Records
	t.search = &opts
	t.result = result
	t.generation++
	if t.sortOn {
		t.resort()
	}
	t.viewChanged()

	t.notifier.Notify(notify.SearchEvent{
		Header:            notify.NewHeader(t.id),
		Results:           result.Records,
		TermsMatched:      result.TermsMatched,
		TermsNotMatched:   result.TermsNotMatched,
		PropertiesChecked: result.PropertiesChecked,
	})
	return result
}

// SearchQuery parses query and applies it. An empty query clears the search.
func (t *Table) SearchQuery(query string, defaults filter.Options) filter.Result {
	opts := filter.ParseQuery(query)
	if opts.IsEmpty() {
		t.ClearSearch()
		return filter.Result{Records: t.records}
	}
	opts.WhitelistProperties = t.resolveAll(opts.WhitelistProperties)
	opts.BlacklistProperties = t.resolveAll(opts.BlacklistProperties)
	if len(opts.BlacklistProperties) > 0 && len(opts.WhitelistProperties) == 0 {
		// -col: alone excludes columns from a scan of the whole schema.
		opts.WhitelistProperties = t.schema.Properties()
	}
	opts.CaseSensitive = opts.CaseSensitive || defaults.CaseSensitive
	opts.WhitelistMatchAll = opts.WhitelistMatchAll || defaults.WhitelistMatchAll
	return t.Search(opts)
}

// resolveAll maps header titles onto property names in place.
func (t *Table) resolveAll(names []string) []string {
	for i, name := range names {
		if p, ok := t.schema.Resolve(name); ok {
			names[i] = p
		}
	}
	return names
}

// Searching returns the options of the active search.
func (t *Table) Searching() (filter.Options, filter.Result, bool) {
	if t.search == nil {
		return filter.Options{}, filter.Result{}, false
	}
	return *t.search, t.result, true
}

// ClearSearch removes the filter. A no-op when no search is active.
func (t *Table) ClearSearch() {
	if t.filtered == nil {
		return
	}
	t.filtered = nil
	t.search = nil
	t.result = filter.Result{}
	t.generation++
	if t.sortOn {
		t.resort()
	}
	t.viewChanged()

	t.notifier.Notify(notify.ClearSearchEvent{Header: notify.NewHeader(t.id)})
}

// Sort orders the filtered (or full) view by property, which may be a
// property name or a header title.
func (t *Table) Sort(property string, dir sorting.Direction) (sorting.Report, error) {
	resolved, ok := t.schema.Resolve(property)
	if !ok {
		return sorting.Report{}, fmt.Errorf("sort by %q: %w", property, schema.ErrUnknownProperty)
	}

	t.sortKey = resolved
	t.sortDir = dir
	t.sortOn = true
	report := t.resort()
	t.viewChanged()

	t.notifier.Notify(notify.SortEvent{
		Header:        notify.NewHeader(t.id),
		Property:      resolved,
		Direction:     dir,
		Hierarchy:     report.Hierarchy,
		Algorithm:     report.AlgorithmUsed(),
		BenchmarkTime: report.Elapsed,
	})
	return report, nil
}

// ToggleSort sorts by property ascending, or flips the direction when the
// table is already sorted by it.
func (t *Table) ToggleSort(property string) (sorting.Report, error) {
	dir := sorting.Asc
	if resolved, ok := t.schema.Resolve(property); ok && t.sortOn && t.sortKey == resolved {
		dir = t.sortDir.Flip()
	}
	return t.Sort(property, dir)
}

// Sorting returns the active sort.
func (t *Table) Sorting() (property string, dir sorting.Direction, ok bool) {
	return t.sortKey, t.sortDir, t.sortOn
}

// LastSort returns the report of the most recent sort.
func (t *Table) LastSort() sorting.Report {
	return t.lastSort
}

// ClearSort removes the sort. A no-op when no sort is active.
func (t *Table) ClearSort() {
	if !t.sortOn {
		return
	}
	t.sorted = nil
	t.sortOn = false
	t.sortKey = ""
	t.sorter.Reset()
	t.viewChanged()

	t.notifier.Notify(notify.ClearSortEvent{Header: notify.NewHeader(t.id)})
}

// SetAlgorithm switches the sort algorithm for subsequent sorts.
func (t *Table) SetAlgorithm(a sorting.Algorithm) {
	t.algorithm = a
	t.sorter.SetAlgorithm(a)
}

// Algorithm returns the configured sort algorithm.
func (t *Table) Algorithm() sorting.Algorithm {
	return t.algorithm
}

func (t *Table) resort() sorting.Report {
	source := t.filtered
	if source == nil {
		source = t.records
	}
	sorted, report := t.sorter.Sort(sorting.Request{
		View:       source,
		Generation: t.generation,
		Property:   t.sortKey,
		Direction:  t.sortDir,
	})
	t.logger.Debug("sorted %d records by %v %s using %s in %s",
		len(sorted), report.Hierarchy, t.sortDir, report.AlgorithmUsed(), report.Elapsed)

	t.sorted = sorted
	t.lastSort = report
	return report
}

// viewChanged returns the vertical viewport to the top of the new active view.
func (t *Table) viewChanged() {
	t.vertical.Reset(len(t.ActiveView()))
}

// RemoveRecords removes every record matching pred from the table and
// returns how many were removed. Filtered and sorted views keep their order;
// the selection drops removed records on next access.
func (t *Table) RemoveRecords(pred func(*record.Record) bool) int {
	kept := make([]*record.Record, 0, len(t.records))
	removed := 0
	for _, r := range t.records {
		if pred(r) {
			delete(t.alive, r)
			removed++
			continue
		}
		kept = append(kept, r)
	}
	if removed == 0 {
		return 0
	}

	t.records = kept
	t.filtered = t.dropDead(t.filtered)
	t.sorted = t.dropDead(t.sorted)
	if t.search != nil {
		t.result.Records = t.filtered
	}
	t.generation++
	t.vertical.SetLength(len(t.ActiveView()))

	t.logger.Debug("removed %d records, %d remain", removed, len(kept))
	return removed
}

func (t *Table) dropDead(view []*record.Record) []*record.Record {
	if view == nil {
		return nil
	}
	out := make([]*record.Record, 0, len(view))
	for _, r := range view {
		if t.isAlive(r) {
			out = append(out, r)
		}
	}
	return out
}

func (t *Table) isAlive(r *record.Record) bool {
	_, ok := t.alive[r]
	return ok
}

// Click applies a click on rec. Shift extends a range from the anchor,
// Ctrl or Meta toggles, anything else replaces the selection.
func (t *Table) Click(rec *record.Record, mods key.Modifier) {
	if rec == nil || !t.isAlive(rec) {
		return
	}
	// Removed records must not serve as the range anchor.
	t.selection.Prune(t.isAlive)
	t.selection.Click(t.ActiveView(), rec, clickKind(mods))
}

// ClickRow applies a click on window row i. It returns false when the row
// is empty.
func (t *Table) ClickRow(i int, mods key.Modifier) bool {
	rec, ok := t.RecordAtRow(i)
	if !ok {
		return false
	}
	t.Click(rec, mods)
	return true
}

func clickKind(mods key.Modifier) selection.Kind {
	switch {
	case mods.HasShift():
		return selection.Extend
	case mods.HasCtrl() || mods.HasMeta():
		return selection.Toggle
	default:
		return selection.Replace
	}
}

// ClickOutside clears the selection.
func (t *Table) ClickOutside() {
	t.selection.Clear()
}

// Selected returns the selected records in selection order.
func (t *Table) Selected() []*record.Record {
	return t.selection.Selected(t.isAlive)
}

// IsSelected returns true if rec is selected and still in the table.
func (t *Table) IsSelected(rec *record.Record) bool {
	return t.isAlive(rec) && t.selection.Contains(rec)
}
