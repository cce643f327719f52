package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openmind-services/helpdesk-dashboard/internal/domain"
	"github.com/openmind-services/helpdesk-dashboard/internal/events"
	"github.com/openmind-services/helpdesk-dashboard/internal/graph"
	"github.com/openmind-services/helpdesk-dashboard/internal/schema"
	"github.com/openmind-services/helpdesk-dashboard/pkg/util"
)

// RecordStore is the gateway dependency surface: bulk read plus two
// single-field patches.
type RecordStore interface {
	FetchAll(ctx context.Context) ([]graph.RawRecord, error)
	PatchStatus(ctx context.Context, id, status string) error
	PatchStatusDetails(ctx context.Context, id, details string) error
}

// NameResolver resolves a cycle's author references.
type NameResolver interface {
	ResolveBatch(ctx context.Context, refs []string) map[string]string
}

// SyncService runs the fetch cycle: fetch raw records, resolve authors,
// build the canonical ticket set, detect newly arrived records against the
// previous snapshot, and commit. The snapshot is the engine's only ticket
// state; a failed cycle leaves the last-known-good snapshot in place.
type SyncService struct {
	store      RecordStore
	resolver   NameResolver
	dispatcher events.Dispatcher
	logger     *zap.Logger
	department string

	mu          sync.RWMutex
	tickets     []domain.Ticket
	fetchedAt   time.Time
	hasBaseline bool
}

// SyncDependencies bundles collaborators for the sync service.
type SyncDependencies struct {
	Store      RecordStore
	Resolver   NameResolver
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	// Department partitions the snapshot to the active department. Empty
	// disables partitioning.
	Department string
}

// NewSyncService constructs the service.
func NewSyncService(deps SyncDependencies) *SyncService {
	return &SyncService{
		store:      deps.Store,
		resolver:   deps.Resolver,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		department: deps.Department,
	}
}

// RunCycle executes one complete fetch cycle and returns the committed
// ticket count. On failure the cycle aborts, a refresh-failed event carries
// the classified error, and the previous snapshot remains. A context
// cancelled before commit discards the results (teardown liveness).
func (s *SyncService) RunCycle(ctx context.Context) (int, error) {
	records, err := s.store.FetchAll(ctx)
	if err != nil {
		s.publishFailure(ctx, err)
		return 0, err
	}

	refs := make([]string, 0, len(records))
	for _, record := range records {
		if ref := schema.AuthorRef(record.Fields); ref != "" {
			refs = append(refs, ref)
		}
	}
	names := s.resolver.ResolveBatch(ctx, refs)

	tickets := FilterByDepartment(BuildTickets(records, names), s.department)

	// The dashboard may have been torn down while the fetch was in flight;
	// never commit results past teardown.
	if err := ctx.Err(); err != nil {
		s.logger.Debug("discarding fetch results after teardown")
		return 0, err
	}

	previous, hadBaseline := s.commit(tickets)

	if hadBaseline && previous > 0 && len(tickets) > previous {
		delta := len(tickets) - previous
		s.logger.Info("new tickets arrived", zap.Int("count", delta))
		_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventNewTicketsArrived,
			events.NewTicketsArrivedPayload{Count: delta}))
	}

	s.logger.Debug("fetch cycle committed",
		zap.Int("tickets", len(tickets)),
		zap.Int("previous", previous))
	return len(tickets), nil
}

func (s *SyncService) commit(tickets []domain.Ticket) (previous int, hadBaseline bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	previous = len(s.tickets)
	hadBaseline = s.hasBaseline
	s.tickets = tickets
	s.fetchedAt = time.Now()
	s.hasBaseline = true
	return previous, hadBaseline
}

func (s *SyncService) publishFailure(ctx context.Context, err error) {
	engineErr := util.ToEngineError(err)
	s.logger.Warn("fetch cycle failed, keeping previous snapshot",
		zap.String("kind", engineErr.Kind),
		zap.Error(err))
	_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventRefreshFailed,
		events.RefreshFailedPayload{Kind: engineErr.Kind, Message: engineErr.Message}))
}

// Snapshot returns the last-known-good canonical ticket set and its fetch
// time. The slice is shared read-only; tickets are immutable per cycle.
func (s *SyncService) Snapshot() ([]domain.Ticket, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tickets, s.fetchedAt
}

// ListView returns the status-filtered view of the full snapshot history.
func (s *SyncService) ListView(rawStatus string) []domain.Ticket {
	tickets, _ := s.Snapshot()
	return FilterByStatus(tickets, rawStatus)
}

// SummaryStats aggregates the date-filtered view for the chart/summary
// consumers.
func (s *SyncService) SummaryStats(start, end time.Time, topReasons int) domain.AggregateStats {
	tickets, _ := s.Snapshot()
	return Aggregate(FilterByDateRange(tickets, start, end), topReasons)
}

// FilteredForExport hands the current status-filtered list to the export
// collaborator; serialization is the collaborator's concern.
func (s *SyncService) FilteredForExport(rawStatus string) []domain.Ticket {
	return s.ListView(rawStatus)
}

// UpdateStatus patches the status of one record. The engine keeps no local
// ticket cache to mutate: the change becomes visible after the next
// successful fetch. Failure surfaces as a RemoteWriteError, no retry.
func (s *SyncService) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	if err := s.store.PatchStatus(ctx, id, status.DisplayLabel()); err != nil {
		return err
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventTicketUpdated,
		events.TicketUpdatedPayload{TicketID: id, Field: "status", Status: status}))
	return nil
}

// UpdateStatusDetails patches the free-text status remark of one record.
func (s *SyncService) UpdateStatusDetails(ctx context.Context, id, details string) error {
	if err := s.store.PatchStatusDetails(ctx, id, details); err != nil {
		return err
	}
	_ = s.dispatcher.Publish(ctx, events.NewEvent(events.EventTicketUpdated,
		events.TicketUpdatedPayload{TicketID: id, Field: "status_details"}))
	return nil
}
