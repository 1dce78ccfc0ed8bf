package facts

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/logging"
	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/dmitrijs2005/factkeeper/internal/storage"
	"github.com/dmitrijs2005/factkeeper/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFacts() []models.Fact {
	return []models.Fact{
		{ID: "1", Text: "Honey never spoils in a sealed jar.", Category: "Food"},
		{ID: "2", Text: "A day on Venus is longer than its year.", Category: "Space"},
		{ID: "3", Text: "Octopuses have three hearts and blue blood.", Category: "Animals"},
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestRepo(t *testing.T) (*Repository, *storage.MemoryManager) {
	t.Helper()
	m := storage.NewMemoryManager("test", seedFacts())
	r := NewRepository(m, logging.Nop{})
	// Seeds are stamped with the wall clock on first read; stay ahead of it.
	c := &clock{t: time.Now().Add(time.Hour)}
	r.now = c.now
	return r, m
}

func ids(facts []models.Fact) []string {
	out := make([]string, 0, len(facts))
	for _, f := range facts {
		out = append(out, f.ID)
	}
	return out
}

func pendingIDs(subs []models.SubmittedFact) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.ID)
	}
	return out
}

func TestCreate_ApprovedWithFreshID(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	before := ids(r.ListPublished(ctx))
	f, err := r.Create(ctx, models.FactInput{Text: "  Bananas are technically berries.  ", Category: "Food", Source: "botany"})
	require.NoError(t, err)

	assert.True(t, f.Approved)
	assert.NotContains(t, before, f.ID)
	assert.Equal(t, "Bananas are technically berries.", f.Text)
	assert.Equal(t, "botany", f.Source)
	assert.False(t, f.CreatedAt.IsZero())

	after := r.ListPublished(ctx)
	require.Len(t, after, len(before)+1)
	assert.Equal(t, f.ID, after[0].ID, "newest first")
}

func TestCreate_ValidationBeforeMutation(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	before := r.ListPublished(ctx)

	_, err := r.Create(ctx, models.FactInput{Text: "short", Category: "Food"})
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = r.Create(ctx, models.FactInput{Text: "Long enough fact text.", Category: "Cooking"})
	require.ErrorIs(t, err, common.ErrorValidation)

	assert.Equal(t, before, r.ListPublished(ctx))
}

func TestCreate_StorageFailure(t *testing.T) {
	boom := errors.New("disk full")
	r := NewRepository(storagetest.Failing{Err: boom}, logging.Nop{})

	_, err := r.Create(context.Background(), models.FactInput{Text: "Long enough fact text.", Category: "Food"})
	require.ErrorIs(t, err, common.ErrorOperationFailed)
	require.ErrorIs(t, err, boom)
}

func TestCreate_IDGenerationFailure(t *testing.T) {
	r, _ := newTestRepo(t)
	r.newID = func() (string, error) { return "", errors.New("no entropy") }

	_, err := r.Create(context.Background(), models.FactInput{Text: "Long enough fact text.", Category: "Food"})
	require.ErrorIs(t, err, common.ErrorOperationFailed)
}

func TestReads_DegradeToEmpty(t *testing.T) {
	r := NewRepository(storagetest.Failing{Err: errors.New("down")}, logging.Nop{})
	ctx := context.Background()

	assert.NotNil(t, r.ListPublished(ctx))
	assert.Empty(t, r.ListPublished(ctx))
	assert.Empty(t, r.ListPublishedByCategory(ctx, "Food"))
	assert.NotNil(t, r.ListPending(ctx))
	assert.Empty(t, r.ListPending(ctx))
	assert.Empty(t, r.Search(ctx, "honey"))
}

func TestListPublishedByCategory_ExactMatch(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	assert.Equal(t, []string{"2"}, ids(r.ListPublishedByCategory(ctx, "Space")))
	assert.Empty(t, r.ListPublishedByCategory(ctx, "space"))
	assert.Empty(t, r.ListPublishedByCategory(ctx, "Sports"))
}

func TestSubmit_PendingAndUnapproved(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	s, err := r.Submit(ctx, models.SubmissionInput{Text: "Water boils at 100°C at sea level.", Category: "Science", SubmittedBy: "Ann"})
	require.NoError(t, err)
	assert.False(t, s.Approved)
	assert.Contains(t, pendingIDs(r.ListPending(ctx)), s.ID)
	assert.NotContains(t, ids(r.ListPublished(ctx)), s.ID)
}

func TestSubmit_Validation(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := r.Submit(ctx, models.SubmissionInput{Text: "Water boils at 100°C at sea level.", Category: "Science"})
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Empty(t, r.ListPending(ctx))
}

func TestListPending_NewestFirst(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	var want []string
	for i := 0; i < 3; i++ {
		s, err := r.Submit(ctx, models.SubmissionInput{Text: fmt.Sprintf("Submitted fact number %d.", i), Category: "History", SubmittedBy: "Bob"})
		require.NoError(t, err)
		want = append([]string{s.ID}, want...)
	}
	assert.Equal(t, want, pendingIDs(r.ListPending(ctx)))
}

func TestUpdate(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	text := "Honey never spoils, even after 3000 years."
	f, err := r.Update(ctx, "1", models.FactPatch{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, text, f.Text)
	assert.Equal(t, "Food", f.Category)

	got, err := r.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, text, got.Text)
}

func TestUpdate_NotFound(t *testing.T) {
	r, _ := newTestRepo(t)
	text := "Some replacement text here."
	_, err := r.Update(context.Background(), "404", models.FactPatch{Text: &text})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_InvalidMergeLeavesFactUntouched(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	bad := "Cooking"
	_, err := r.Update(ctx, "1", models.FactPatch{Category: &bad})
	require.ErrorIs(t, err, common.ErrorValidation)

	got, err := r.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Food", got.Category)
}

func TestUpdate_StorageFailure(t *testing.T) {
	r, m := newTestRepo(t)
	boom := errors.New("write failed")
	r.manager = &storagetest.FailOn{Manager: m, Ops: map[string]bool{"Replace": true}, Err: boom}

	text := "Honey never spoils, even after 3000 years."
	_, err := r.Update(context.Background(), "1", models.FactPatch{Text: &text})
	require.ErrorIs(t, err, common.ErrorOperationFailed)
	require.ErrorIs(t, err, boom)
}

func TestDelete_Idempotent(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	f, err := r.Create(ctx, models.FactInput{Text: "Sloths can hold their breath longer than dolphins.", Category: "Animals"})
	require.NoError(t, err)

	require.NoError(t, r.Delete(ctx, f.ID))
	assert.NotContains(t, ids(r.ListPublished(ctx)), f.ID)
	require.NoError(t, r.Delete(ctx, f.ID))
}

func TestDelete_StorageFailure(t *testing.T) {
	r := NewRepository(storagetest.Failing{Err: errors.New("down")}, logging.Nop{})
	require.ErrorIs(t, r.Delete(context.Background(), "1"), common.ErrorOperationFailed)
}

func TestGet(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	f, err := r.Get(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Animals", f.Category)

	_, err = r.Get(ctx, "404")
	require.ErrorIs(t, err, common.ErrorNotFound)

	broken := NewRepository(storagetest.Failing{Err: errors.New("down")}, logging.Nop{})
	_, err = broken.Get(ctx, "3")
	require.ErrorIs(t, err, common.ErrorOperationFailed)
}

func TestSearch(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	assert.Equal(t, []string{"1"}, ids(r.Search(ctx, "HONEY")))
	assert.Equal(t, []string{"2"}, ids(r.Search(ctx, "space")))
	assert.Len(t, r.Search(ctx, "  "), 3)
	assert.Empty(t, r.Search(ctx, "zebra"))
}

func TestRandom(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()
	r.intn = func(n int) int { return 0 }

	f, err := r.Random(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, "1", f.ID)

	f, err = r.Random(ctx, "", "1")
	require.NoError(t, err)
	assert.NotEqual(t, "1", f.ID)

	f, err = r.Random(ctx, "Space", "2")
	require.NoError(t, err)
	assert.Equal(t, "2", f.ID, "only candidate is returned even when excluded")

	_, err = r.Random(ctx, "Sports", "")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestImport(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	err := r.Import(ctx, []models.Fact{
		{ID: "x", Text: "Imported fact number one.", Category: "Sports"},
		{Text: "Imported fact number two.", Category: "Anime"},
	})
	require.NoError(t, err)

	all := r.ListPublished(ctx)
	require.Len(t, all, 2)
	for _, f := range all {
		assert.NotEmpty(t, f.ID)
		assert.True(t, f.Approved)
		assert.False(t, f.CreatedAt.IsZero())
	}
}

func TestImport_TrimsFields(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	err := r.Import(ctx, []models.Fact{
		{ID: " x ", Text: "  Imported fact about orbits.  ", Category: " Space ", Source: " NASA "},
	})
	require.NoError(t, err)

	got := r.ListPublishedByCategory(ctx, "Space")
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)
	assert.Equal(t, "Imported fact about orbits.", got[0].Text)
	assert.Equal(t, "Space", got[0].Category)
	assert.Equal(t, "NASA", got[0].Source)
}

func TestImport_RejectsInvalidAndDuplicates(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	err := r.Import(ctx, []models.Fact{{Text: "Imported fact number one.", Category: "Nope"}})
	require.ErrorIs(t, err, common.ErrorValidation)

	err = r.Import(ctx, []models.Fact{
		{ID: "x", Text: "Imported fact number one.", Category: "Sports"},
		{ID: "x", Text: "Imported fact number two.", Category: "Sports"},
	})
	require.ErrorIs(t, err, common.ErrorValidation)

	assert.Len(t, r.ListPublished(ctx), 3)
}
