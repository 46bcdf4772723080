package sqlite

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fieldworks/reportvault/internal/domain/allocation"
	"github.com/fieldworks/reportvault/internal/repository"
)

func TestCounterRepository_FirstAllocationReturnsStart(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	key := allocation.ScopeKey{TenantID: "tenant1", Year: 2025}
	seq, err := repo.AllocateNext(ctx, key, 5001)
	require.NoError(t, err)
	require.Equal(t, 5001, seq)
}

func TestCounterRepository_SequentialAllocations(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	// baseYear=2022, yearBlock=400: 2025 starts at 1201
	key := allocation.ScopeKey{TenantID: "1", Year: 2025}

	for i, want := range []int{1201, 1202, 1203} {
		seq, err := repo.AllocateNext(ctx, key, 1201)
		require.NoError(t, err)
		require.Equal(t, want, seq, "allocation %d", i)
	}
}

func TestCounterRepository_ScopesAreIsolated(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	a := allocation.ScopeKey{TenantID: "tenant1", Year: 2025}
	b := allocation.ScopeKey{TenantID: "tenant2", Year: 2025}
	c := allocation.ScopeKey{TenantID: "tenant1", Year: 2024}

	seq, err := repo.AllocateNext(ctx, a, 100)
	require.NoError(t, err)
	require.Equal(t, 100, seq)

	seq, err = repo.AllocateNext(ctx, b, 200)
	require.NoError(t, err)
	require.Equal(t, 200, seq)

	seq, err = repo.AllocateNext(ctx, c, 300)
	require.NoError(t, err)
	require.Equal(t, 300, seq)

	// Each scope advances independently
	seq, err = repo.AllocateNext(ctx, a, 100)
	require.NoError(t, err)
	require.Equal(t, 101, seq)
}

// TestCounterRepository_ConcurrentAllocations is the highest-value invariant
// in the subsystem: N concurrent callers on one scope must see N distinct,
// strictly increasing, gap-free values.
func TestCounterRepository_ConcurrentAllocations(t *testing.T) {
	db := NewTestFileDB(t)
	// One shared file database, many goroutines. A single connection forces
	// the engine to interleave the upserts; atomicity must come from the
	// statement, not from test scheduling.
	db.SetMaxOpenConns(1)

	repo := NewCounterRepository(db)
	ctx := context.Background()
	key := allocation.ScopeKey{TenantID: "tenant1", Year: 2025}

	const n = 50
	results := make(chan int, n)
	errs := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seq, err := repo.AllocateNext(ctx, key, 1)
			if err != nil {
				errs <- err
				return
			}
			results <- seq
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		t.Fatalf("concurrent allocation failed: %v", err)
	}

	var values []int
	for seq := range results {
		values = append(values, seq)
	}
	require.Len(t, values, n)

	sort.Ints(values)
	for i, v := range values {
		require.Equal(t, i+1, v, "expected gap-free sequence 1..%d", n)
	}
}

func TestCounterRepository_Current(t *testing.T) {
	db := NewTestDB(t)
	repo := NewCounterRepository(db)
	ctx := context.Background()

	key := allocation.ScopeKey{TenantID: "tenant1", Year: 2025}

	_, err := repo.Current(ctx, key)
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.AllocateNext(ctx, key, 1201)
	require.NoError(t, err)
	_, err = repo.AllocateNext(ctx, key, 1201)
	require.NoError(t, err)

	current, err := repo.Current(ctx, key)
	require.NoError(t, err)
	require.Equal(t, 1202, current)
}
