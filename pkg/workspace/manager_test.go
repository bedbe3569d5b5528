package workspace_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/fxforge"
	"github.com/aretw0/fxforge/pkg/adapters/memory"
	"github.com/aretw0/fxforge/pkg/adapters/redis"
	"github.com/aretw0/fxforge/pkg/domain"
	"github.com/aretw0/fxforge/pkg/menu"
	"github.com/aretw0/fxforge/pkg/workspace"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency so lost updates show up when locking is missing.
type SlowStore struct {
	inner *memory.Store
}

func newSlowStore() *SlowStore {
	return &SlowStore{inner: memory.NewStore()}
}

func (s *SlowStore) Save(ctx context.Context, project *domain.Project) error {
	time.Sleep(2 * time.Millisecond)
	return s.inner.Save(ctx, project)
}

func (s *SlowStore) Load(ctx context.Context, projectID string) (*domain.Project, error) {
	time.Sleep(2 * time.Millisecond)
	return s.inner.Load(ctx, projectID)
}

func (s *SlowStore) Delete(ctx context.Context, projectID string) error {
	return s.inner.Delete(ctx, projectID)
}

func (s *SlowStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

func controlJob(i int) *fxforge.ControlJob {
	name := fmt.Sprintf("C%02d", i)
	return &fxforge.ControlJob{Control: name, Parameter: name, Type: domain.KindBool}
}

func countToggles(m *domain.Menu) int {
	n := 0
	m.Walk(func(page *domain.Menu, _ int) bool {
		for _, c := range page.Controls {
			if c.Kind == domain.ControlToggle {
				n++
			}
		}
		return true
	})
	return n
}

func TestManager_ConcurrentApplyKeepsEveryControl(t *testing.T) {
	mgr := workspace.NewManager(newSlowStore())
	ctx := context.Background()
	const id = "avatar"
	const writers = 20

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := mgr.Apply(ctx, id, controlJob(i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	project, err := mgr.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, writers, countToggles(project.Menu))
	assert.Equal(t, writers, project.MenuParameters.Len())
	// 20 toggles at 7 per full page plus links: root, page 2, page 3.
	assert.Len(t, menu.Pages(project.Menu), 3)
}

func TestManager_ApplyCreatesProject(t *testing.T) {
	store := memory.NewStore()
	mgr := workspace.NewManager(store)
	ctx := context.Background()

	reports, err := mgr.Apply(ctx, "fresh", &fxforge.BoolJob{
		Layer: "Toggles",
		Items: []domain.NamedClip{domain.Item("Hat", "hat.anim")},
		Menu:  &fxforge.MenuTarget{},
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, []string{"Toggles"}, reports[0].Layers)
	assert.Equal(t, []string{"Hat"}, reports[0].Parameters)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, ids)

	saved, err := store.Load(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, saved.Controller.Layer("Toggles"))
}

func TestManager_ApplySavesPartialWork(t *testing.T) {
	mgr := workspace.NewManager(memory.NewStore())
	ctx := context.Background()

	reports, err := mgr.Apply(ctx, "partial",
		controlJob(1),
		&fxforge.ControlJob{Control: "Broken"},
		controlJob(2),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, fxforge.ErrMissingParameter)
	assert.Contains(t, err.Error(), "job 1")
	assert.Len(t, reports, 2)

	project, err := mgr.Load(ctx, "partial")
	require.NoError(t, err)
	assert.Equal(t, 1, countToggles(project.Menu), "work before the failing job is kept")
}

func TestManager_LoadOrCreate(t *testing.T) {
	mgr := workspace.NewManager(memory.NewStore())
	ctx := context.Background()

	_, err := mgr.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	created, err := mgr.LoadOrCreate(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, "missing", created.ID)

	loaded, err := mgr.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, created.Menu.ID, loaded.Menu.ID)

	require.NoError(t, mgr.Delete(ctx, "missing"))
	_, err = mgr.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

type failingStore struct {
	*memory.Store
}

var errDisk = errors.New("disk full")

func (failingStore) Save(context.Context, *domain.Project) error { return errDisk }

func TestManager_SaveFailureSurfaces(t *testing.T) {
	mgr := workspace.NewManager(failingStore{memory.NewStore()})
	_, err := mgr.Apply(context.Background(), "p", controlJob(1))
	assert.ErrorIs(t, err, errDisk)
}

func TestManager_DistributedLock(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := redis.NewFromClient(client)
	locker := redis.NewLocker(client, "")

	// Two managers model two processes sharing one redis.
	a := workspace.NewManager(store, workspace.WithLocker(locker), workspace.WithLockTTL(5*time.Second))
	b := workspace.NewManager(store, workspace.WithLocker(locker), workspace.WithLockTTL(5*time.Second))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		mgr := a
		if i%2 == 1 {
			mgr = b
		}
		go func(i int, mgr *workspace.Manager) {
			defer wg.Done()
			_, err := mgr.Apply(ctx, "shared", controlJob(i))
			assert.NoError(t, err)
		}(i, mgr)
	}
	wg.Wait()

	project, err := a.Load(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, 10, countToggles(project.Menu))
}
