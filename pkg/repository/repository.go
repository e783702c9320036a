package repository

import (
	"fmt"

	"github.com/utkarsh5026/TrackIt/pkg/common/fileops"
	"github.com/utkarsh5026/TrackIt/pkg/common/logger"
	"github.com/utkarsh5026/TrackIt/pkg/lock"
	"github.com/utkarsh5026/TrackIt/pkg/model"
	"github.com/utkarsh5026/TrackIt/pkg/objects"
	"github.com/utkarsh5026/TrackIt/pkg/refs"
	"github.com/utkarsh5026/TrackIt/pkg/store"
	"github.com/utkarsh5026/TrackIt/pkg/trackpath"
)

// Repository ties the object store, reference store, and lock manager
// into entity-level CRUD. Every entity write is a two-step mutation
// (store the snapshot, repoint the reference) bracketed by an advisory
// lock on the entity so concurrent writers serialize.
type Repository struct {
	workspace trackpath.WorkspacePath
	track     trackpath.TrackPath
	objects   store.ObjectStore
	refs      *refs.RefStore
	locks     *lock.Manager
}

// NewRepository creates a repository rooted at the workspace directory.
// Call Init to create a fresh tracker or Open to attach to an existing
// one before any other operation.
func NewRepository(workspace trackpath.WorkspacePath) *Repository {
	return &Repository{
		workspace: workspace,
		track:     workspace.TrackPath(),
		objects:   store.NewFileObjectStore(),
		refs:      refs.NewRefStore(),
		locks:     lock.NewManager(),
	}
}

// Init creates the tracker directory layout inside the workspace.
// Fails if the workspace is already initialized.
func (r *Repository) Init() error {
	exists, e := fileops.Exists(trackpath.AbsolutePath(r.track))
	if e != nil {
		return NewRepositoryError("init", CodeIoErr, "", "", e)
	}
	if exists {
		return ErrAlreadyInitialized
	}

	if e := r.initComponents(); e != nil {
		return e
	}

	logger.Info("initialized workspace", "path", r.workspace.String())
	return nil
}

// Open attaches to an existing tracker directory
func (r *Repository) Open() error {
	exists, e := fileops.Exists(trackpath.AbsolutePath(r.track))
	if e != nil {
		return NewRepositoryError("open", CodeIoErr, "", "", e)
	}
	if !exists {
		return ErrNotInitialized
	}

	return r.initComponents()
}

// IsInitialized reports whether the workspace has a tracker directory
func (r *Repository) IsInitialized() bool {
	exists, e := fileops.Exists(trackpath.AbsolutePath(r.track))
	return e == nil && exists
}

// Workspace returns the workspace root
func (r *Repository) Workspace() trackpath.WorkspacePath {
	return r.workspace
}

// TrackPath returns the tracker directory path
func (r *Repository) TrackPath() trackpath.TrackPath {
	return r.track
}

// Objects exposes the underlying object store for integrity tooling
func (r *Repository) Objects() store.ObjectStore {
	return r.objects
}

// Refs exposes the underlying reference store
func (r *Repository) Refs() *refs.RefStore {
	return r.refs
}

// Locks exposes the lock manager for coarse-grained callers
func (r *Repository) Locks() *lock.Manager {
	return r.locks
}

// Create stores a new entity snapshot and points its reference at it.
// Fails if an entity with the same identity already exists.
func (r *Repository) Create(entity model.Entity) (objects.Digest, error) {
	var digest objects.Digest
	e := r.locks.With(entityResource(entity.Kind(), entity.EntityID()), func() error {
		_, found, e := r.refs.Get(trackpath.RefName(model.RefName(entity)))
		if e != nil {
			return e
		}
		if found {
			return NewRepositoryError("create", CodeAlreadyExistsErr,
				entity.Kind().String(), entity.EntityID(),
				fmt.Errorf("entity already exists"))
		}

		digest, e = r.write("create", entity)
		return e
	})
	return digest, e
}

// Update re-stores the entity snapshot and repoints its reference.
// The previous snapshot stays in the object store but becomes
// unreachable unless another reference holds it. Fails if the entity
// does not exist.
func (r *Repository) Update(entity model.Entity) (objects.Digest, error) {
	var digest objects.Digest
	e := r.locks.With(entityResource(entity.Kind(), entity.EntityID()), func() error {
		_, found, e := r.refs.Get(trackpath.RefName(model.RefName(entity)))
		if e != nil {
			return e
		}
		if !found {
			return NewRepositoryError("update", CodeNotFoundErr,
				entity.Kind().String(), entity.EntityID(),
				fmt.Errorf("entity not found"))
		}

		digest, e = r.write("update", entity)
		return e
	})
	return digest, e
}

// Save stores the entity regardless of whether it already exists.
// The sync engine uses it to apply remote snapshots.
func (r *Repository) Save(entity model.Entity) (objects.Digest, error) {
	var digest objects.Digest
	e := r.locks.With(entityResource(entity.Kind(), entity.EntityID()), func() error {
		var e error
		digest, e = r.write("save", entity)
		return e
	})
	return digest, e
}

// Get loads the entity with the given identity. Returns (nil, nil) if
// no reference exists or the reference dangles; a dangling reference is
// "entity not found", never a crash.
func (r *Repository) Get(kind objects.ObjectKind, id string) (model.Entity, error) {
	name := trackpath.RefName(kind.RefPrefix() + id)

	digest, found, e := r.refs.Get(name)
	if e != nil {
		return nil, e
	}
	if !found {
		return nil, nil
	}

	storedKind, content, e := r.objects.Get(digest)
	if e != nil {
		return nil, e
	}
	if content == nil {
		logger.Warn("dangling reference", "ref", name.String(), "digest", digest.Short().String())
		return nil, nil
	}
	if storedKind != kind {
		return nil, NewRepositoryError("get", CodeValidationErr, kind.String(), id,
			fmt.Errorf("reference points at a %s object", storedKind))
	}

	return model.DecodeEntity(storedKind, content)
}

// GetAt loads the entity snapshot stored under a specific digest,
// regardless of what any reference currently points at
func (r *Repository) GetAt(digest objects.Digest) (model.Entity, error) {
	kind, content, e := r.objects.Get(digest)
	if e != nil {
		return nil, e
	}
	if content == nil {
		return nil, nil
	}
	return model.DecodeEntity(kind, content)
}

// Delete removes the entity's reference and best-effort deletes its
// snapshot. Returns whether a reference was removed; deleting an absent
// entity is a no-op.
func (r *Repository) Delete(kind objects.ObjectKind, id string) (bool, error) {
	var removed bool
	e := r.locks.With(entityResource(kind, id), func() error {
		name := trackpath.RefName(kind.RefPrefix() + id)

		digest, found, e := r.refs.Get(name)
		if e != nil {
			return e
		}
		if !found {
			return nil
		}

		removed, e = r.refs.Delete(name)
		if e != nil {
			return e
		}

		// The snapshot may still be referenced elsewhere or already
		// gone; neither blocks the delete
		if _, e := r.objects.Delete(digest); e != nil {
			logger.Warn("failed to delete snapshot", "digest", digest.Short().String(), "error", e)
		}
		return nil
	})
	return removed, e
}

// List loads every entity of a kind, in reference order. Dangling
// references are skipped.
func (r *Repository) List(kind objects.ObjectKind) ([]model.Entity, error) {
	names, e := r.refs.List(kind.RefPrefix())
	if e != nil {
		return nil, e
	}

	entities := make([]model.Entity, 0, len(names))
	for _, name := range names {
		entity, e := r.Get(kind, name.ShortName())
		if e != nil {
			return nil, e
		}
		if entity == nil {
			continue
		}
		entities = append(entities, entity)
	}
	return entities, nil
}

// Issues loads every stored issue
func (r *Repository) Issues() ([]*model.Issue, error) {
	return listAs[*model.Issue](r, objects.IssueKind)
}

// Issue loads one issue by id, nil if absent
func (r *Repository) Issue(id string) (*model.Issue, error) {
	return getAs[*model.Issue](r, objects.IssueKind, id)
}

// Remotes loads every configured remote
func (r *Repository) Remotes() ([]*model.Remote, error) {
	return listAs[*model.Remote](r, objects.RemoteKind)
}

// Remote loads one remote by id, nil if absent
func (r *Repository) Remote(id string) (*model.Remote, error) {
	return getAs[*model.Remote](r, objects.RemoteKind, id)
}

// Projects loads every stored project
func (r *Repository) Projects() ([]*model.Project, error) {
	return listAs[*model.Project](r, objects.ProjectKind)
}

// write validates, encodes, stores, and repoints in one step.
// Callers hold the entity lock.
func (r *Repository) write(op string, entity model.Entity) (objects.Digest, error) {
	if e := entity.Validate(); e != nil {
		return "", NewRepositoryError(op, CodeValidationErr,
			entity.Kind().String(), entity.EntityID(), e)
	}

	content, e := entity.Encode()
	if e != nil {
		return "", NewRepositoryError(op, CodeSerializationErr,
			entity.Kind().String(), entity.EntityID(), e)
	}

	digest, e := r.objects.Put(entity.Kind(), content)
	if e != nil {
		return "", e
	}

	if e := r.refs.Set(trackpath.RefName(model.RefName(entity)), digest); e != nil {
		return "", e
	}

	logger.Debug("stored entity",
		"kind", entity.Kind().String(),
		"id", entity.EntityID(),
		"digest", digest.Short().String())
	return digest, nil
}

func (r *Repository) initComponents() error {
	if e := r.objects.Initialize(r.track); e != nil {
		return e
	}
	if e := r.refs.Initialize(r.track); e != nil {
		return e
	}
	return r.locks.Initialize(r.track)
}

func getAs[T model.Entity](r *Repository, kind objects.ObjectKind, id string) (T, error) {
	var zero T

	entity, e := r.Get(kind, id)
	if e != nil || entity == nil {
		return zero, e
	}

	typed, ok := entity.(T)
	if !ok {
		return zero, NewRepositoryError("get", CodeValidationErr, kind.String(), id,
			fmt.Errorf("unexpected entity type %T", entity))
	}
	return typed, nil
}

func listAs[T model.Entity](r *Repository, kind objects.ObjectKind) ([]T, error) {
	entities, e := r.List(kind)
	if e != nil {
		return nil, e
	}

	typed := make([]T, 0, len(entities))
	for _, entity := range entities {
		t, ok := entity.(T)
		if !ok {
			continue
		}
		typed = append(typed, t)
	}
	return typed, nil
}

// entityResource names the advisory lock guarding one entity's
// read-modify-write sequence
func entityResource(kind objects.ObjectKind, id string) string {
	return kind.String() + "." + id
}
