package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/stratdesk/internal/kv"
)

type item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
	Note  string `json:"note,omitempty"`
}

func (i item) RecordID() string { return i.ID }

type settings struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

// failingKV is a backend that is never available.
type failingKV struct{}

var errDown = errors.New("backend down")

func (failingKV) Get(context.Context, string) (string, bool, error) { return "", false, errDown }
func (failingKV) Set(context.Context, string, string) error         { return errDown }
func (failingKV) SetIfAbsent(context.Context, string, string) (bool, error) {
	return false, errDown
}
func (failingKV) Update(context.Context, string, kv.UpdateFunc) error { return errDown }

func newTestCollection(t *testing.T) (*Collection[item], *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	return NewCollection[item](New(mem, nil), "items"), mem
}

func TestReadAll_AbsentIsEmpty(t *testing.T) {
	c, _ := newTestCollection(t)
	items := c.ReadAll(context.Background())
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestReadAll_DegradesOnErrors(t *testing.T) {
	ctx := context.Background()

	down := NewCollection[item](New(failingKV{}, nil), "items")
	require.Empty(t, down.ReadAll(ctx))

	c, mem := newTestCollection(t)
	require.NoError(t, mem.Set(ctx, "items", "{not json"))
	require.Empty(t, c.ReadAll(ctx))

	require.NoError(t, mem.Set(ctx, "items", "null"))
	require.NotNil(t, c.ReadAll(ctx))
}

func TestWriteAllReadAll(t *testing.T) {
	ctx := context.Background()
	c, mem := newTestCollection(t)

	require.NoError(t, c.WriteAll(ctx, []item{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}))
	require.Equal(t, []item{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}, c.ReadAll(ctx))

	require.NoError(t, c.WriteAll(ctx, nil))
	raw, _, _ := mem.Get(ctx, "items")
	require.Equal(t, "[]", raw)

	down := NewCollection[item](New(failingKV{}, nil), "items")
	require.ErrorIs(t, down.WriteAll(ctx, nil), errDown)
}

func TestFindFilter(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)
	require.NoError(t, c.WriteAll(ctx, []item{{ID: "a", Count: 1}, {ID: "b", Count: 2}, {ID: "c", Count: 1}}))

	got, ok := c.Find(ctx, "b")
	require.True(t, ok)
	require.Equal(t, 2, got.Count)

	_, ok = c.Find(ctx, "zz")
	require.False(t, ok)

	ones := c.Filter(ctx, func(i item) bool { return i.Count == 1 })
	require.Len(t, ones, 2)
	require.Equal(t, "a", ones[0].ID)
	require.Equal(t, "c", ones[1].ID)
}

func TestMutate(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)

	err := c.Mutate(ctx, func(items []item) ([]item, error) {
		return append(items, item{ID: "a"}), nil
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = c.Mutate(ctx, func(items []item) ([]item, error) {
		return append(items, item{ID: "b"}), boom
	})
	require.ErrorIs(t, err, boom)
	require.Len(t, c.ReadAll(ctx), 1)
}

func TestMutate_CorruptIsHardError(t *testing.T) {
	ctx := context.Background()
	c, mem := newTestCollection(t)
	require.NoError(t, mem.Set(ctx, "items", "{broken"))

	called := false
	err := c.Mutate(ctx, func(items []item) ([]item, error) {
		called = true
		return items, nil
	})
	require.ErrorIs(t, err, ErrCorrupt)
	require.False(t, called)

	raw, _, _ := mem.Get(ctx, "items")
	require.Equal(t, "{broken", raw, "corrupt slot must not be overwritten")
}

func TestSeedIfAbsent(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)

	wrote, err := c.SeedIfAbsent(ctx, []item{{ID: "seed"}})
	require.NoError(t, err)
	require.True(t, wrote)

	wrote, err = c.SeedIfAbsent(ctx, []item{{ID: "other"}})
	require.NoError(t, err)
	require.False(t, wrote)
	require.Equal(t, []item{{ID: "seed"}}, c.ReadAll(ctx))
}

func TestSeedOnce(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	s := New(mem, nil)
	a := NewCollection[item](s, "a")
	b := NewCollection[item](s, "b")

	// b already holds data and must survive seeding.
	require.NoError(t, b.WriteAll(ctx, []item{{ID: "user"}}))

	seeded, err := s.SeedOnce(ctx, "initialized", a.Seed([]item{{ID: "a1"}}), b.Seed([]item{{ID: "b1"}}))
	require.NoError(t, err)
	require.True(t, seeded)
	require.Equal(t, []item{{ID: "a1"}}, a.ReadAll(ctx))
	require.Equal(t, []item{{ID: "user"}}, b.ReadAll(ctx))

	require.NoError(t, a.WriteAll(ctx, nil))
	seeded, err = s.SeedOnce(ctx, "initialized", a.Seed([]item{{ID: "a1"}}))
	require.NoError(t, err)
	require.False(t, seeded)
	require.Empty(t, a.ReadAll(ctx))

	flag, ok, _ := mem.Get(ctx, "initialized")
	require.True(t, ok)
	require.Equal(t, "true", flag)
}

func TestAdjustCounter(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCollection(t)
	require.NoError(t, c.WriteAll(ctx, []item{{ID: "p", Count: 0}, {ID: "q", Count: 3}}))

	counter := Counter[item]{
		Field: "count",
		Ref:   func(i *item) *int { return &i.Count },
		Touch: func(i *item) { i.Note = "Just now" },
	}

	found, err := AdjustCounter(ctx, c, "p", counter, 1)
	require.NoError(t, err)
	require.True(t, found)

	p, _ := c.Find(ctx, "p")
	require.Equal(t, 1, p.Count)
	require.Equal(t, "Just now", p.Note)

	// Floors at zero and does not touch on decrement.
	for i := 0; i < 3; i++ {
		_, err = AdjustCounter(ctx, c, "p", counter, -1)
		require.NoError(t, err)
	}
	p, _ = c.Find(ctx, "p")
	require.Equal(t, 0, p.Count)

	q, _ := c.Find(ctx, "q")
	require.Equal(t, 3, q.Count)
	require.Empty(t, q.Note)

	found, err = AdjustCounter(ctx, c, "missing", counter, 1)
	require.NoError(t, err)
	require.False(t, found)
}

func TestDocument(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemory()
	d := NewDocument[settings](New(mem, nil), "settings")
	def := func() settings { return settings{Name: "default", Types: []string{"pdf"}} }

	require.Equal(t, def(), d.Get(ctx, def()))

	got, err := d.Mutate(ctx, def(), func(s *settings) error {
		s.Name = "renamed"
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "renamed", got.Name)
	require.Equal(t, []string{"pdf"}, got.Types)
	require.Equal(t, got, d.Get(ctx, def()))

	require.NoError(t, mem.Set(ctx, "settings", "[oops"))
	require.Equal(t, def(), d.Get(ctx, def()))
	_, err = d.Mutate(ctx, def(), func(s *settings) error { return nil })
	require.ErrorIs(t, err, ErrCorrupt)
}
