package orders

import (
	"context"
	"fmt"
	"slices"

	"github.com/jask/ordens/internal/auth"
	"github.com/jask/ordens/internal/database/repository"
)

// DefaultLimit is the most records a single load asks for.
const DefaultLimit = 500

// Store is the read side of the record store.
type Store interface {
	FindRecent(ctx context.Context, limit int) ([]repository.WorkOrder, error)
}

// Fetch is one issued load for a filter. Fetches are numbered in issue order.
type Fetch struct {
	seq    uint64
	limit  int
	filter FilterState
	store  Store
}

func (f *Fetch) Seq() uint64 { return f.seq }

// Run queries the store. It touches no view-model state, so it may run off
// the UI loop; hand the result back through ViewModel.Complete.
func (f *Fetch) Run(ctx context.Context) Result {
	records, err := f.store.FindRecent(ctx, f.limit)
	return Result{Seq: f.seq, Filter: f.filter, Records: records, Err: err}
}

// Result is the outcome of a Fetch. Filter is the filter the fetch was issued for.
type Result struct {
	Seq     uint64
	Filter  FilterState
	Records []repository.WorkOrder
	Err     error
}

// Runner executes an issued fetch. The default runs it inline and completes
// it immediately; an event loop can instead run it elsewhere and call
// Complete when the result comes back, returning nil here.
type Runner func(ctx context.Context, f *Fetch) error

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithLimit sets how many records a load asks for. Values outside
// 1..DefaultLimit are clamped into that range.
func WithLimit(n int) Option {
	return func(vm *ViewModel) {
		if n > 0 {
			vm.limit = min(n, DefaultLimit)
		}
	}
}

// WithRunner replaces the inline runner.
func WithRunner(r Runner) Option {
	return func(vm *ViewModel) {
		if r != nil {
			vm.runner = r
		}
	}
}

// ViewModel produces the rows of the work-order list from the current
// filter and the latest store snapshot. The store is the only source of
// truth: every filter change and every save reloads from it.
type ViewModel struct {
	store    Store
	launcher *Launcher
	notifier Notifier
	limit    int
	runner   Runner

	session   *auth.Session
	canCreate bool
	filter    FilterState // applied to visible
	requested FilterState // carried by the latest fetch
	visible   []repository.WorkOrder

	issued  uint64
	applied uint64
}

func NewViewModel(store Store, launcher *Launcher, notifier Notifier, opts ...Option) *ViewModel {
	vm := &ViewModel{
		store:    store,
		launcher: launcher,
		notifier: notifier,
		limit:    DefaultLimit,
	}
	vm.runner = vm.runInline
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Initialize binds the session, resets the filter and loads.
func (vm *ViewModel) Initialize(ctx context.Context, session *auth.Session) error {
	vm.session = session
	vm.canCreate = auth.CanCreate(session)
	vm.filter = FilterState{}
	return vm.load(ctx, FilterState{})
}

// Reload issues a fresh fetch. With the inline runner the store error, if
// any, comes back as a *LoadError and the visible rows stay as they were.
func (vm *ViewModel) Reload(ctx context.Context) error {
	return vm.load(ctx, vm.requested)
}

func (vm *ViewModel) load(ctx context.Context, filter FilterState) error {
	vm.requested = filter
	vm.issued++
	return vm.runner(ctx, &Fetch{seq: vm.issued, limit: vm.limit, filter: filter, store: vm.store})
}

func (vm *ViewModel) runInline(ctx context.Context, f *Fetch) error {
	return vm.Complete(f.Run(ctx))
}

// Complete applies a fetch result. Results older than the last applied one
// are dropped, so with several loads in flight the last issued wins. A failed
// load leaves both the rows and the filter as they were.
func (vm *ViewModel) Complete(res Result) error {
	if res.Seq <= vm.applied {
		return nil
	}
	vm.applied = res.Seq
	if res.Err != nil {
		if res.Seq == vm.issued {
			vm.requested = vm.filter
		}
		return &LoadError{Err: res.Err}
	}
	vm.filter = res.Filter
	vm.visible = res.Filter.Apply(res.Records)
	return nil
}

// Loading reports whether an issued fetch has not come back yet.
func (vm *ViewModel) Loading() bool { return vm.applied < vm.issued }

// SetStatusFilter changes the status filter and reloads.
func (vm *ViewModel) SetStatusFilter(ctx context.Context, status Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, string(status))
	}
	f := vm.requested
	f.Status = status
	return vm.load(ctx, f)
}

// SetSearchText changes the search term and reloads.
func (vm *ViewModel) SetSearchText(ctx context.Context, text string) error {
	f := vm.requested
	f.Search = text
	return vm.load(ctx, f)
}

// OnRequestEdit opens the editor on record. A nil record does nothing.
func (vm *ViewModel) OnRequestEdit(ctx context.Context, record *repository.WorkOrder) (*Launch, error) {
	if record == nil {
		return nil, nil
	}
	if vm.launcher == nil {
		return nil, &LaunchError{Err: errNoEditor}
	}
	return vm.launcher.OpenForEdit(*record, vm.session, vm.onSaved(ctx))
}

// OnRequestEditSelected is the explicit edit command. With nothing selected
// it warns the user and opens nothing.
func (vm *ViewModel) OnRequestEditSelected(ctx context.Context, selection []repository.WorkOrder) (*Launch, error) {
	if len(selection) == 0 {
		warn(vm.notifier, MsgSelectionRequired)
		return nil, nil
	}
	record := selection[0]
	return vm.OnRequestEdit(ctx, &record)
}

// OnRequestCreate opens an empty editor if the session may create.
func (vm *ViewModel) OnRequestCreate(ctx context.Context) (*Launch, error) {
	if !vm.canCreate {
		return nil, ErrCreateNotAllowed
	}
	if vm.launcher == nil {
		return nil, &LaunchError{Err: errNoEditor}
	}
	return vm.launcher.OpenForCreate(vm.session, vm.onSaved(ctx))
}

// onSaved is the editor's way back: one full reload per save.
func (vm *ViewModel) onSaved(ctx context.Context) func() {
	return func() {
		if err := vm.Reload(ctx); err != nil {
			fail(vm.notifier, err.Error())
		}
	}
}

// Visible returns a copy of the rows to display, in store order.
func (vm *ViewModel) Visible() []repository.WorkOrder { return slices.Clone(vm.visible) }

// Filter is the filter the visible rows were built with.
func (vm *ViewModel) Filter() FilterState { return vm.filter }

func (vm *ViewModel) CanCreate() bool { return vm.canCreate }

func (vm *ViewModel) Session() *auth.Session { return vm.session }
