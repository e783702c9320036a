package syncer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/utkarsh5026/TrackIt/pkg/common/logger"
	"github.com/utkarsh5026/TrackIt/pkg/conflict"
	"github.com/utkarsh5026/TrackIt/pkg/model"
	"github.com/utkarsh5026/TrackIt/pkg/objects"
	"github.com/utkarsh5026/TrackIt/pkg/repository"
	"github.com/utkarsh5026/TrackIt/pkg/transport"
)

// syncResource is the advisory lock serializing sync invocations
// against one workspace
const syncResource = "sync"

// Engine reconciles the local workspace with a remote tracker. It
// consumes the remote only through the Transport abstraction and never
// retries: any transport-level failure aborts the invocation and
// surfaces to the caller, while per-entity decode and validation
// failures are recorded and isolated within the batch.
type Engine struct {
	repo      *repository.Repository
	transport transport.Transport
	creds     transport.Credentials
}

// session carries the state of one sync invocation
type session struct {
	ctx        context.Context
	remote     *model.Remote
	token      transport.Token
	opts       SyncOptions
	result     *SyncResult
	conflicted map[string]bool
}

// NewEngine creates a sync engine over the given repository and
// transport
func NewEngine(repo *repository.Repository, tr transport.Transport, creds transport.Credentials) *Engine {
	return &Engine{
		repo:      repo,
		transport: tr,
		creds:     creds,
	}
}

// Pull downloads remote entities that are absent locally or strictly
// newer than the local copy. Equal-or-older remote entities leave the
// local copy untouched.
func (en *Engine) Pull(ctx context.Context, remoteID string, opts SyncOptions) (*SyncResult, error) {
	return en.run(ctx, remoteID, opts, true, false)
}

// Push mirrors Pull in the opposite direction: uploads local entities
// missing remotely or locally newer, skipping remote-newer-or-equal
// ones.
func (en *Engine) Push(ctx context.Context, remoteID string, opts SyncOptions) (*SyncResult, error) {
	return en.run(ctx, remoteID, opts, false, true)
}

// Sync pulls then pushes, aggregating a single result
func (en *Engine) Sync(ctx context.Context, remoteID string, opts SyncOptions) (*SyncResult, error) {
	return en.run(ctx, remoteID, opts, true, true)
}

// SyncStatus reports what a sync would do right now. Read-only: it
// never mutates local state or the remote's last-sync timestamp.
func (en *Engine) SyncStatus(ctx context.Context, remoteID string) (SyncStats, error) {
	opts := DefaultSyncOptions()
	opts.DryRun = true

	result, e := en.Sync(ctx, remoteID, opts)
	if e != nil {
		return SyncStats{}, e
	}
	return result.Stats, nil
}

// ResolveConflicts applies a batch strategy to detected conflicts and
// returns the ids that were resolved, in processing order. Under
// StopOnConflict processing halts at the first conflict the default
// policy cannot settle; under SkipConflicts such conflicts are skipped;
// under AutoResolve the strategy's resolution is applied to every
// conflict regardless of type.
func (en *Engine) ResolveConflicts(conflicts []*conflict.Conflict, strategy conflict.BatchConflictStrategy) ([]string, error) {
	resolved := make([]string, 0, len(conflicts))

	for _, c := range conflicts {
		switch strategy.Kind {
		case conflict.AutoResolve:
			winner, e := conflict.Resolve(c, strategy.Resolution)
			if e != nil {
				return resolved, e
			}
			if e := en.apply(winner); e != nil {
				return resolved, e
			}

		case conflict.StopOnConflict:
			if !conflict.CanAutoResolve(c.Type) {
				return resolved, nil
			}
			if e := en.apply(c.NewerSnapshot()); e != nil {
				return resolved, e
			}

		case conflict.SkipConflicts:
			if !conflict.CanAutoResolve(c.Type) {
				continue
			}
			if e := en.apply(c.NewerSnapshot()); e != nil {
				return resolved, e
			}

		default:
			return resolved, NewSyncError("resolve_conflicts", CodeValidationErr, "", "",
				fmt.Errorf("unknown batch strategy: %s", strategy.Kind))
		}

		resolved = append(resolved, c.EntityID)
	}

	return resolved, nil
}

// run executes one invocation under the workspace sync lock
func (en *Engine) run(ctx context.Context, remoteID string, opts SyncOptions, doPull, doPush bool) (*SyncResult, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultSyncOptions().BatchSize
	}

	result := newSyncResult(remoteID, opts.DryRun)

	runErr := en.repo.Locks().With(syncResource, func() error {
		if opts.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
			defer cancel()
		}

		s, e := en.connect(ctx, remoteID, opts, result)
		if e != nil {
			return e
		}

		if doPull {
			s.result.Phase = PhasePulling
			if e := en.pull(s); e != nil {
				return e
			}
		}
		if doPush {
			s.result.Phase = PhasePushing
			if e := en.push(s); e != nil {
				return e
			}
		}

		return en.finish(s)
	})

	if runErr != nil {
		result.complete(true)
		return result, runErr
	}
	return result, nil
}

// connect loads the remote descriptor and authenticates
func (en *Engine) connect(ctx context.Context, remoteID string, opts SyncOptions, result *SyncResult) (*session, error) {
	result.Phase = PhaseConnecting

	remote, e := en.repo.Remote(remoteID)
	if e != nil {
		return nil, e
	}
	if remote == nil {
		return nil, NewSyncError("connect", CodeNotFoundErr, remoteID, PhaseConnecting, ErrRemoteNotFound)
	}

	token, e := en.transport.Authenticate(ctx, en.creds)
	if e != nil {
		return nil, e
	}

	logger.Debug("connected to remote", "remote", remote.Name, "url", remote.URL)
	return &session{
		ctx:        ctx,
		remote:     remote,
		token:      token,
		opts:       opts,
		result:     result,
		conflicted: make(map[string]bool),
	}, nil
}

// pull transfers remote-newer entities into the local store
func (en *Engine) pull(s *session) error {
	for _, kind := range s.opts.kinds() {
		listing, e := en.fetchListing(s, kind)
		if e != nil {
			return e
		}

		for _, meta := range listing {
			if e := en.pullEntity(s, kind, meta); e != nil {
				if fatal := en.recordFailure(s, "pull", kind, meta.ID, e); fatal != nil {
					return fatal
				}
			}
		}
	}
	return nil
}

// pullEntity decides the transfer direction for one remote entity
func (en *Engine) pullEntity(s *session, kind objects.ObjectKind, meta EntityMetadata) error {
	local, e := en.repo.Get(kind, meta.ID)
	if e != nil {
		return e
	}

	if local == nil {
		return en.download(s, kind, meta)
	}
	if !inProject(local, s.opts.ProjectID) {
		return nil
	}

	localMod := local.ModifiedAt()
	if !meta.ModifiedAt.After(localMod) {
		// Local is newer or equal; pull leaves it untouched
		return nil
	}

	if s.diverged(localMod, meta.ModifiedAt) {
		return en.reconcile(s, kind, meta, local)
	}

	return en.download(s, kind, meta)
}

// download fetches a remote snapshot and applies it locally
func (en *Engine) download(s *session, kind objects.ObjectKind, meta EntityMetadata) error {
	entity, e := en.fetchEntity(s, kind, meta.ID)
	if e != nil {
		return e
	}
	if !inProject(entity, s.opts.ProjectID) {
		return nil
	}

	if !s.opts.DryRun {
		if _, e := en.repo.Save(entity); e != nil {
			return e
		}
	}

	s.result.PulledIDs = append(s.result.PulledIDs, meta.ID)
	s.result.Stats.Pulled++
	return nil
}

// reconcile handles an entity both sides changed since the last sync.
// Issues go through the classifier; for other kinds the later snapshot
// wins outright since they carry no workflow state worth protecting.
func (en *Engine) reconcile(s *session, kind objects.ObjectKind, meta EntityMetadata, local model.Entity) error {
	remote, e := en.fetchEntity(s, kind, meta.ID)
	if e != nil {
		return e
	}

	localIssue, lok := local.(*model.Issue)
	remoteIssue, rok := remote.(*model.Issue)
	if !lok || !rok {
		if local.ModifiedAt().After(meta.ModifiedAt) {
			return en.upload(s, kind, local)
		}
		return en.download(s, kind, meta)
	}

	c := conflict.Detect(localIssue, remoteIssue)
	if c == nil {
		// Timestamps diverged but content agrees; nothing to transfer
		return nil
	}

	s.conflicted[c.EntityID] = true
	s.result.Conflicts = append(s.result.Conflicts, c)
	s.result.Stats.ConflictsDetected++

	if s.opts.AutoResolve && conflict.CanAutoResolve(c.Type) {
		if !s.opts.DryRun {
			if e := en.apply(c.NewerSnapshot()); e != nil {
				return e
			}
		}
		s.result.Stats.ConflictsResolved++
	}
	return nil
}

// push transfers local-newer entities to the remote
func (en *Engine) push(s *session) error {
	for _, kind := range s.opts.kinds() {
		listing, e := en.fetchListing(s, kind)
		if e != nil {
			return e
		}

		remoteMeta := make(map[string]EntityMetadata, len(listing))
		for _, meta := range listing {
			remoteMeta[meta.ID] = meta
		}

		locals, e := en.repo.List(kind)
		if e != nil {
			return e
		}

		for _, local := range locals {
			if e := en.pushEntity(s, kind, local, remoteMeta); e != nil {
				if fatal := en.recordFailure(s, "push", kind, local.EntityID(), e); fatal != nil {
					return fatal
				}
			}
		}
	}
	return nil
}

// pushEntity decides the transfer direction for one local entity
func (en *Engine) pushEntity(s *session, kind objects.ObjectKind, local model.Entity, remoteMeta map[string]EntityMetadata) error {
	if !inProject(local, s.opts.ProjectID) {
		return nil
	}
	if s.conflicted[local.EntityID()] {
		// Already raised during the pull phase of this invocation
		return nil
	}

	meta, exists := remoteMeta[local.EntityID()]
	if exists {
		if !local.ModifiedAt().After(meta.ModifiedAt) {
			// Remote is newer or equal; push skips it
			return nil
		}
		if s.diverged(local.ModifiedAt(), meta.ModifiedAt) {
			return en.reconcile(s, kind, meta, local)
		}
	}

	return en.upload(s, kind, local)
}

// upload sends one local snapshot to the remote
func (en *Engine) upload(s *session, kind objects.ObjectKind, local model.Entity) error {
	if !s.opts.DryRun {
		content, e := local.Encode()
		if e != nil {
			return e
		}

		if _, e := en.transport.Put(s.ctx, entityPath(kind, local.EntityID()), []byte(content), s.token); e != nil {
			return e
		}
		s.result.Stats.BytesTransferred += int64(len(content))
	}

	s.result.PushedIDs = append(s.result.PushedIDs, local.EntityID())
	s.result.Stats.Pushed++
	return nil
}

// finish reconciles and, for a real run, advances the remote's
// last-sync timestamp. A failed invocation never advances it.
func (en *Engine) finish(s *session) error {
	s.result.Phase = PhaseReconciling

	if !s.opts.DryRun {
		s.remote.MarkSynced(time.Now())
		if _, e := en.repo.Save(s.remote); e != nil {
			return e
		}
	}

	s.result.complete(false)
	logger.Info("sync finished",
		"remote", s.remote.Name,
		"pulled", s.result.Stats.Pulled,
		"pushed", s.result.Stats.Pushed,
		"conflicts", s.result.Stats.ConflictsDetected,
		"dry_run", s.opts.DryRun)
	return nil
}

// fetchListing downloads the remote metadata listing for one kind
func (en *Engine) fetchListing(s *session, kind objects.ObjectKind) ([]EntityMetadata, error) {
	payload, e := en.transport.Get(s.ctx, entitiesPath(kind), s.token)
	if e != nil {
		return nil, e
	}
	s.result.Stats.BytesTransferred += int64(len(payload))

	var listing []EntityMetadata
	if e := json.Unmarshal(payload, &listing); e != nil {
		return nil, NewSyncError("fetch_listing", CodeTransportErr, s.remote.ID, s.result.Phase,
			fmt.Errorf("malformed listing for kind %s: %w", kind, e))
	}
	return listing, nil
}

// fetchEntity downloads and decodes one remote snapshot
func (en *Engine) fetchEntity(s *session, kind objects.ObjectKind, id string) (model.Entity, error) {
	payload, e := en.transport.Get(s.ctx, entityPath(kind, id), s.token)
	if e != nil {
		return nil, e
	}
	s.result.Stats.BytesTransferred += int64(len(payload))

	return model.DecodeEntity(kind, objects.ObjectContent(payload))
}

// recordFailure isolates a per-entity failure within the batch.
// Transport failures are fatal and returned as-is; other failures are
// recorded, and the batch aborts once they exceed the budget unless
// Force is set.
func (en *Engine) recordFailure(s *session, op string, kind objects.ObjectKind, id string, cause error) error {
	if transport.IsTransportFailure(cause) {
		return cause
	}

	s.result.Failures = append(s.result.Failures, EntityFailure{Kind: kind, ID: id, Err: cause})
	logger.Warn("entity failed during sync", "op", op, "kind", kind.String(), "id", id, "error", cause)

	if !s.opts.Force && len(s.result.Failures) > s.opts.BatchSize {
		return NewSyncError(op, CodeValidationErr, s.remote.ID, s.result.Phase, ErrBatchAborted)
	}
	return nil
}

// apply saves a resolved snapshot locally
func (en *Engine) apply(winner *model.Issue) error {
	_, e := en.repo.Save(winner)
	return e
}

// diverged reports whether both sides changed since the remote's last
// common sync. Conflicts are raised only for diverged entities; a
// one-sided change is an ordinary transfer.
func (s *session) diverged(localMod, remoteMod time.Time) bool {
	lastSync := s.remote.LastSync
	return localMod.After(lastSync) && remoteMod.After(lastSync)
}

// inProject applies the project filter; entities without a project
// association always pass
func inProject(entity model.Entity, projectID string) bool {
	if projectID == "" {
		return true
	}
	issue, ok := entity.(*model.Issue)
	if !ok {
		return true
	}
	return issue.ProjectID == "" || issue.ProjectID == projectID
}

// entitiesPath is the remote listing path for one kind
func entitiesPath(kind objects.ObjectKind) string {
	return "/entities/" + kind.String()
}

// entityPath is the remote path for one entity
func entityPath(kind objects.ObjectKind, id string) string {
	return entitiesPath(kind) + "/" + id
}
