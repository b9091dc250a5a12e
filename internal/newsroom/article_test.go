package newsroom

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput(title string) ArticleInput {
	return ArticleInput{
		Title:    title,
		Summary:  "Short summary",
		Body:     "<p>Match report</p>",
		ImageURL: "https://img.example.com/match.jpg",
		Category: "premier-league",
	}
}

func TestManager_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("persists article with derived slug", func(t *testing.T) {
		store := newMemStore()
		m := newTestManager(store)

		in := validInput("Mbappé Joins Real Madrid!")
		in.IsFeatured = true
		in.SeoTags = []string{" transfer ", "", "la-liga"}

		article, err := m.Create(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, "mbappe-joins-real-madrid", article.Slug)
		assert.NotEmpty(t, article.ID)
		assert.True(t, article.IsFeatured)
		assert.False(t, article.IsTrending)
		assert.Equal(t, []string{"transfer", "la-liga"}, article.SeoTags)
		assert.Empty(t, article.Updates)
		assert.False(t, article.CreatedAt.IsZero())
		assert.Equal(t, article.CreatedAt, article.UpdatedAt)

		stored, err := m.ByID(ctx, article.ID)
		require.NoError(t, err)
		assert.Equal(t, article.Slug, stored.Slug)
	})

	t.Run("identical titles get numbered slugs", func(t *testing.T) {
		m := newTestManager(newMemStore())

		var slugs []string
		for range 3 {
			article, err := m.Create(ctx, validInput("Goal!"))
			require.NoError(t, err)
			slugs = append(slugs, article.Slug)
		}

		assert.Equal(t, []string{"goal", "goal-1", "goal-2"}, slugs)
	})

	t.Run("distinct titles give distinct slugs", func(t *testing.T) {
		m := newTestManager(newMemStore())

		titles := []string{"Arsenal win", "Arsenal  win!", "Arsenal-win", "Chelsea draw", "Chelsea draw"}
		seen := map[string]struct{}{}
		for _, title := range titles {
			article, err := m.Create(ctx, validInput(title))
			require.NoError(t, err)
			_, dup := seen[article.Slug]
			assert.False(t, dup, "slug %q issued twice", article.Slug)
			seen[article.Slug] = struct{}{}
		}
	})

	t.Run("title without slug characters uses fallback", func(t *testing.T) {
		m := newTestManager(newMemStore())

		article, err := m.Create(ctx, validInput("!!!"))
		require.NoError(t, err)
		assert.Equal(t, fallbackSlug, article.Slug)
	})

	t.Run("empty summary is rejected and nothing persisted", func(t *testing.T) {
		store := newMemStore()
		m := newTestManager(store)

		in := validInput("No summary")
		in.Summary = "   "

		_, err := m.Create(ctx, in)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"summary"}, verr.Fields)
		assert.Empty(t, store.articles)
	})

	t.Run("all missing fields are named", func(t *testing.T) {
		m := newTestManager(newMemStore())

		_, err := m.Create(ctx, ArticleInput{IsFeatured: true})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.ElementsMatch(t, []string{"title", "summary", "body", "imageUrl", "category"}, verr.Fields)
		assert.Contains(t, err.Error(), "imageUrl")
	})

	t.Run("body that sanitises to nothing is rejected", func(t *testing.T) {
		m := newTestManager(newMemStore())

		in := validInput("Script only")
		in.Body = "<script>alert(1)</script>"

		_, err := m.Create(ctx, in)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"body"}, verr.Fields)
	})

	t.Run("unsafe markup is stripped from body", func(t *testing.T) {
		m := newTestManager(newMemStore())

		in := validInput("Sanitised")
		in.Body = `<p onclick="steal()">Full time</p><script>x()</script>`

		article, err := m.Create(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "<p>Full time</p>", article.Body)
	})

	t.Run("lost insert race retries with next slug", func(t *testing.T) {
		store := newMemStore()
		store.stealSlugs = 1
		m := newTestManager(store)

		article, err := m.Create(ctx, validInput("Transfer deadline"))
		require.NoError(t, err)
		assert.Equal(t, "transfer-deadline-1", article.Slug)
	})

	t.Run("unresolved race fails with conflict", func(t *testing.T) {
		store := newMemStore()
		m := newTestManager(store)

		_, err := m.Create(ctx, validInput("Derby day"))
		require.NoError(t, err)

		store.blindSlugs = true
		_, err = m.Create(ctx, validInput("Derby day"))
		assert.ErrorIs(t, err, ErrConflict)
		assert.Len(t, store.articles, 1)
	})

	t.Run("storage failure is reported as storage error", func(t *testing.T) {
		store := newMemStore()
		store.failWith = errors.New("connection refused")
		m := newTestManager(store)

		_, err := m.Create(ctx, validInput("Offline"))
		assert.ErrorIs(t, err, ErrStorage)
	})
}

func TestManager_CreateConcurrentSameTitle(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(newMemStore())

	const n = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		slugs = map[string]struct{}{}
		errs  []error
	)

	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			article, err := m.Create(ctx, validInput("Cup final"))

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			slugs[article.Slug] = struct{}{}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		assert.ErrorIs(t, err, ErrConflict)
	}
	assert.Len(t, slugs, n-len(errs), "every successful create must own a distinct slug")
}

func TestManager_List(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(newMemStore())

	for i := range 15 {
		in := validInput(fmt.Sprintf("Matchday %d", i))
		if i%3 == 0 {
			in.Category = "la-liga"
			in.IsTrending = true
		}
		_, err := m.Create(ctx, in)
		require.NoError(t, err)
	}

	t.Run("paginates with total", func(t *testing.T) {
		page1, total, err := m.List(ctx, ArticleFilter{}, 1, 12)
		require.NoError(t, err)
		assert.Len(t, page1, 12)
		assert.Equal(t, 15, total)

		page2, total, err := m.List(ctx, ArticleFilter{}, 2, 12)
		require.NoError(t, err)
		assert.Len(t, page2, 3)
		assert.Equal(t, 15, total)

		seen := map[string]struct{}{}
		for _, a := range append(page1, page2...) {
			seen[a.ID] = struct{}{}
		}
		assert.Len(t, seen, 15)
	})

	t.Run("newest first", func(t *testing.T) {
		articles, _, err := m.List(ctx, ArticleFilter{}, 1, 100)
		require.NoError(t, err)
		require.Len(t, articles, 15)

		assert.Equal(t, "matchday-14", articles[0].Slug)
		for i := 1; i < len(articles); i++ {
			assert.False(t, articles[i-1].CreatedAt.Before(articles[i].CreatedAt),
				"article %d is newer than article %d", i, i-1)
		}
	})

	t.Run("category filter narrows total", func(t *testing.T) {
		category := "la-liga"
		articles, total, err := m.List(ctx, ArticleFilter{Category: &category}, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, 5, total)
		assert.Len(t, articles, 2)
		for _, a := range articles {
			assert.Equal(t, category, a.Category)
		}
	})

	t.Run("blank category matches everything", func(t *testing.T) {
		blank := ""
		_, total, err := m.List(ctx, ArticleFilter{Category: &blank}, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, 15, total)
	})

	t.Run("trending filter", func(t *testing.T) {
		trending := false
		_, total, err := m.List(ctx, ArticleFilter{Trending: &trending}, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, 10, total)
	})

	t.Run("offset beyond total is empty, not an error", func(t *testing.T) {
		articles, total, err := m.List(ctx, ArticleFilter{}, 5, 12)
		require.NoError(t, err)
		assert.Empty(t, articles)
		assert.Equal(t, 15, total)
	})

	t.Run("invalid pagination", func(t *testing.T) {
		_, _, err := m.List(ctx, ArticleFilter{}, 0, 0)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"page", "limit"}, verr.Fields)
	})
}

func TestManager_Lookup(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(newMemStore())

	created, err := m.Create(ctx, validInput("Title race"))
	require.NoError(t, err)

	bySlug, err := m.BySlug(ctx, "title-race")
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySlug.ID)

	_, err = m.BySlug(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.ByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = m.ByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManager_Replace(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(newMemStore())

	created, err := m.Create(ctx, validInput("Old headline"))
	require.NoError(t, err)

	t.Run("overwrites fields and keeps slug", func(t *testing.T) {
		in := validInput("New headline")
		in.Category = "serie-a"
		in.IsTrending = true
		in.ImageAlt = "Stadium"

		replaced, err := m.Replace(ctx, created.ID, in)
		require.NoError(t, err)

		assert.Equal(t, "New headline", replaced.Title)
		assert.Equal(t, "serie-a", replaced.Category)
		assert.True(t, replaced.IsTrending)
		assert.Equal(t, "Stadium", replaced.ImageAlt)
		assert.Equal(t, "old-headline", replaced.Slug)
		assert.Equal(t, created.CreatedAt, replaced.CreatedAt)
		assert.True(t, replaced.UpdatedAt.After(created.UpdatedAt))
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := m.Replace(ctx, uuid.NewString(), validInput("x"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing fields", func(t *testing.T) {
		in := validInput("x")
		in.Category = ""

		_, err := m.Replace(ctx, created.ID, in)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"category"}, verr.Fields)
	})
}

func TestManager_ThreadUpdates(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(newMemStore())

	article, err := m.Create(ctx, validInput("Live: North London derby"))
	require.NoError(t, err)

	article, err = m.AppendUpdate(ctx, article.ID, ThreadUpdateInput{Title: "Kick-off", Body: "We are under way"})
	require.NoError(t, err)
	article, err = m.AppendUpdate(ctx, article.ID, ThreadUpdateInput{Summary: "Goal", Body: "1-0 after ten minutes"})
	require.NoError(t, err)
	article, err = m.AppendUpdate(ctx, article.ID, ThreadUpdateInput{Body: "Half time"})
	require.NoError(t, err)

	t.Run("appends in order", func(t *testing.T) {
		fetched, err := m.ByID(ctx, article.ID)
		require.NoError(t, err)
		require.Len(t, fetched.Updates, 3)

		assert.Equal(t, "We are under way", fetched.Updates[0].Body)
		require.NotNil(t, fetched.Updates[0].Title)
		assert.Equal(t, "Kick-off", *fetched.Updates[0].Title)
		assert.Nil(t, fetched.Updates[0].Summary)
		assert.Equal(t, "1-0 after ten minutes", fetched.Updates[1].Body)
		assert.Equal(t, "Half time", fetched.Updates[2].Body)
	})

	t.Run("empty body is rejected", func(t *testing.T) {
		_, err := m.AppendUpdate(ctx, article.ID, ThreadUpdateInput{Body: "  "})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "empty reply body", verr.Error())
	})

	t.Run("append to unknown article", func(t *testing.T) {
		_, err := m.AppendUpdate(ctx, uuid.NewString(), ThreadUpdateInput{Body: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("edit changes only body", func(t *testing.T) {
		before, err := m.ByID(ctx, article.ID)
		require.NoError(t, err)
		target := before.Updates[1]

		after, err := m.EditUpdateBody(ctx, article.ID, target.ID, "new text")
		require.NoError(t, err)
		require.Len(t, after.Updates, 3)

		assert.Equal(t, "new text", after.Updates[1].Body)
		assert.Equal(t, target.ID, after.Updates[1].ID)
		assert.Equal(t, target.CreatedAt, after.Updates[1].CreatedAt)
		assert.Equal(t, target.Summary, after.Updates[1].Summary)
		assert.Equal(t, before.Updates[0], after.Updates[0])
		assert.Equal(t, before.Updates[2], after.Updates[2])
	})

	t.Run("edit unknown update", func(t *testing.T) {
		_, err := m.EditUpdateBody(ctx, article.ID, uuid.NewString(), "text")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = m.EditUpdateBody(ctx, article.ID, "bogus", "text")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete removes exactly one", func(t *testing.T) {
		before, err := m.ByID(ctx, article.ID)
		require.NoError(t, err)
		require.Len(t, before.Updates, 3)

		require.NoError(t, m.DeleteUpdate(ctx, article.ID, before.Updates[0].ID))

		after, err := m.ByID(ctx, article.ID)
		require.NoError(t, err)
		require.Len(t, after.Updates, 2)
		assert.Equal(t, before.Updates[1], after.Updates[0])
		assert.Equal(t, before.Updates[2], after.Updates[1])

		err = m.DeleteUpdate(ctx, article.ID, before.Updates[0].ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestManager_ConcurrentAppendsKeepAll(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(newMemStore())

	article, err := m.Create(ctx, validInput("Live: transfer window"))
	require.NoError(t, err)

	const n = 10
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.AppendUpdate(ctx, article.ID, ThreadUpdateInput{Body: fmt.Sprintf("update %d", i)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	fetched, err := m.ByID(ctx, article.ID)
	require.NoError(t, err)
	assert.Len(t, fetched.Updates, n)
}

func TestManager_Delete(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := newTestManager(store)

	article, err := m.Create(ctx, validInput("Sacked"))
	require.NoError(t, err)
	article, err = m.AppendUpdate(ctx, article.ID, ThreadUpdateInput{Body: "Statement released"})
	require.NoError(t, err)
	updateID := article.Updates[0].ID

	require.NoError(t, m.Delete(ctx, article.ID))

	_, err = m.ByID(ctx, article.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = m.DeleteUpdate(ctx, article.ID, updateID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.updates)

	err = m.Delete(ctx, article.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
