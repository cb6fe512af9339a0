package store

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/daewazone/admin-go/internal/client"
	"github.com/daewazone/admin-go/internal/model"
)

// newRegistry spins up a fake API server and a registry with the given
// staleness window.
func newRegistry(t *testing.T, handler http.Handler, staleAfter time.Duration) *Registry {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := New(Options{StaleAfter: staleAfter})
	t.Cleanup(func() { _ = s.Close() })

	return NewRegistry(client.New(client.Options{BaseURL: srv.URL}), s)
}

// speakerAPI is a minimal in-memory speaker endpoint.
type speakerAPI struct {
	mu       sync.Mutex
	speakers []model.Speaker
	nextID   int
	lists    atomic.Int64
}

func (a *speakerAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/speaker", func(w http.ResponseWriter, r *http.Request) {
		a.lists.Add(1)
		a.mu.Lock()
		defer a.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(a.speakers)
	})
	mux.HandleFunc("POST /api/v1/speaker", func(w http.ResponseWriter, r *http.Request) {
		var dto model.CreateSpeakerDTO
		_ = json.NewDecoder(r.Body).Decode(&dto)

		a.mu.Lock()
		a.nextID++
		created := model.Speaker{
			ID:     fmt.Sprintf("spk_%d", a.nextID),
			Name:   dto.Name,
			Email:  dto.Email,
			Status: model.SpeakerStatusActive,
		}
		a.speakers = append(a.speakers, created)
		a.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(created)
	})
	mux.HandleFunc("DELETE /api/v1/speaker/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		a.mu.Lock()
		kept := a.speakers[:0]
		for _, s := range a.speakers {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		a.speakers = kept
		a.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func TestSpeakerCreateListDeleteScenario(t *testing.T) {
	api := &speakerAPI{}
	reg := newRegistry(t, api.handler(), time.Hour)
	ctx := context.Background()

	created, err := reg.Speakers.Create(ctx, &model.CreateSpeakerDTO{Name: "Sheikh A", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	listed, err := reg.Speakers.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	found := false
	for _, s := range listed {
		if s.ID == created.ID {
			found = true
			if s.Name != "Sheikh A" || s.Email != "a@x.com" {
				t.Errorf("listed speaker = %+v, want submitted fields", s)
			}
			if s.Status != model.SpeakerStatusActive {
				t.Errorf("Status = %q, want server default %q", s.Status, model.SpeakerStatusActive)
			}
		}
	}
	if !found {
		t.Fatalf("created speaker %s missing from list", created.ID)
	}

	if err := reg.Speakers.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}

	after, err := reg.Speakers.List(ctx)
	if err != nil {
		t.Fatalf("List() after delete error: %v", err)
	}
	for _, s := range after {
		if s.ID == created.ID {
			t.Errorf("deleted speaker %s still in list", created.ID)
		}
	}
}

func TestListIsCachedUntilMutation(t *testing.T) {
	api := &speakerAPI{}
	reg := newRegistry(t, api.handler(), time.Hour)
	ctx := context.Background()

	for range 3 {
		if _, err := reg.Speakers.List(ctx); err != nil {
			t.Fatalf("List() error: %v", err)
		}
	}
	if got := api.lists.Load(); got != 1 {
		t.Errorf("upstream list calls = %d, want 1 (cached)", got)
	}

	if _, err := reg.Speakers.Create(ctx, &model.CreateSpeakerDTO{Name: "Sheikh B", Email: "b@x.com"}); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if _, err := reg.Speakers.List(ctx); err != nil {
		t.Fatalf("List() after create error: %v", err)
	}
	if got := api.lists.Load(); got != 2 {
		t.Errorf("upstream list calls = %d, want 2 (refetched after mutation)", got)
	}
}

func TestMutationDoesNotInvalidateOtherKinds(t *testing.T) {
	api := &speakerAPI{}
	var categoryLists atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/category", func(w http.ResponseWriter, r *http.Request) {
		categoryLists.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"cat_1","name":"Tafsir","slug":"tafsir"}]`))
	})
	mux.Handle("/api/v1/speaker", api.handler())
	mux.Handle("/api/v1/speaker/", api.handler())

	reg := newRegistry(t, mux, time.Hour)
	ctx := context.Background()

	if _, err := reg.Categories.List(ctx); err != nil {
		t.Fatalf("Categories.List() error: %v", err)
	}
	if _, err := reg.Speakers.Create(ctx, &model.CreateSpeakerDTO{Name: "Sheikh C", Email: "c@x.com"}); err != nil {
		t.Fatalf("Speakers.Create() error: %v", err)
	}
	if _, err := reg.Categories.List(ctx); err != nil {
		t.Fatalf("Categories.List() error: %v", err)
	}

	if got := categoryLists.Load(); got != 1 {
		t.Errorf("category list calls = %d, want 1 (unrelated kind stays cached)", got)
	}
}

func TestConcurrentReadsCoalesce(t *testing.T) {
	var lists atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/user", func(w http.ResponseWriter, r *http.Request) {
		lists.Add(1)
		time.Sleep(20 * time.Millisecond) // hold the flight open
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"usr_1","fullname":"Amina K","email":"amina@x.com","role":"Admin","status":"Active"}]`))
	})

	reg := newRegistry(t, mux, time.Hour)
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Users.List(ctx); err != nil {
				t.Errorf("List() error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := lists.Load(); got != 1 {
		t.Errorf("upstream list calls = %d, want 1 (coalesced)", got)
	}
}

func TestStaleWhileRevalidate(t *testing.T) {
	var version atomic.Int64
	version.Store(1)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/category", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if version.Load() == 1 {
			_, _ = w.Write([]byte(`[{"id":"cat_1","name":"Tafsir","slug":"tafsir"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":"cat_1","name":"Tafsir","slug":"tafsir"},{"id":"cat_2","name":"Seerah","slug":"seerah"}]`))
	})

	reg := newRegistry(t, mux, 10*time.Millisecond)
	ctx := context.Background()

	first, err := reg.Categories.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("len(first) = %d, want 1", len(first))
	}

	version.Store(2)
	time.Sleep(20 * time.Millisecond) // pass the staleness window

	// Stale read: served from cache, revalidation starts in background.
	stale, err := reg.Categories.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(stale) != 1 {
		t.Errorf("stale read len = %d, want 1 (cached value served)", len(stale))
	}

	// The background refetch lands shortly after.
	deadline := time.Now().Add(2 * time.Second)
	for {
		fresh, err := reg.Categories.List(ctx)
		if err != nil {
			t.Fatalf("List() error: %v", err)
		}
		if len(fresh) == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("revalidated value never became visible")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLessonMutationInvalidatesOwningCourse(t *testing.T) {
	var courseGets, courseLists atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/course", func(w http.ResponseWriter, r *http.Request) {
		courseLists.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"crs_1","title":"Seerah","status":"Draft"}]`))
	})
	mux.HandleFunc("GET /api/v1/course/crs_1", func(w http.ResponseWriter, r *http.Request) {
		courseGets.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"crs_1","title":"Seerah","status":"Draft","lessons":[]}`))
	})
	mux.HandleFunc("POST /api/v1/course-lesson", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"lsn_1","courseId":"crs_1","orderIndex":1}`))
	})

	reg := newRegistry(t, mux, time.Hour)
	ctx := context.Background()

	if _, err := reg.Courses.Get(ctx, "crs_1"); err != nil {
		t.Fatalf("Courses.Get() error: %v", err)
	}
	if _, err := reg.Courses.List(ctx); err != nil {
		t.Fatalf("Courses.List() error: %v", err)
	}

	dto := &model.CreateLessonDTO{
		CourseID:   "crs_1",
		OrderIndex: 1,
		AudioFile:  model.NewUpload("lesson-1.mp3", strings.NewReader("audio")),
	}
	if _, err := reg.Lessons.Create(ctx, dto); err != nil {
		t.Fatalf("Lessons.Create() error: %v", err)
	}

	if _, err := reg.Courses.Get(ctx, "crs_1"); err != nil {
		t.Fatalf("Courses.Get() error: %v", err)
	}
	if _, err := reg.Courses.List(ctx); err != nil {
		t.Fatalf("Courses.List() error: %v", err)
	}

	if got := courseGets.Load(); got != 2 {
		t.Errorf("course detail fetches = %d, want 2 (invalidated by lesson create)", got)
	}
	if got := courseLists.Load(); got != 2 {
		t.Errorf("course list fetches = %d, want 2 (invalidated by lesson create)", got)
	}
}

func TestLessonDeleteInvalidatesCourseDetail(t *testing.T) {
	var courseGets atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/course/crs_1", func(w http.ResponseWriter, r *http.Request) {
		courseGets.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"crs_1","title":"Seerah","status":"Draft"}`))
	})
	mux.HandleFunc("DELETE /api/v1/course-lesson/lsn_1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	reg := newRegistry(t, mux, time.Hour)
	ctx := context.Background()

	if _, err := reg.Courses.Get(ctx, "crs_1"); err != nil {
		t.Fatalf("Courses.Get() error: %v", err)
	}
	if err := reg.Lessons.Delete(ctx, "lsn_1", "crs_1"); err != nil {
		t.Fatalf("Lessons.Delete() error: %v", err)
	}
	if _, err := reg.Courses.Get(ctx, "crs_1"); err != nil {
		t.Fatalf("Courses.Get() error: %v", err)
	}

	if got := courseGets.Load(); got != 2 {
		t.Errorf("course detail fetches = %d, want 2", got)
	}
}

func TestContentPagedListCachedPerParams(t *testing.T) {
	var lists atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/content", func(w http.ResponseWriter, r *http.Request) {
		lists.Add(1)
		page := r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		if page == "2" {
			_, _ = w.Write([]byte(`{"data":[],"meta":{"total":1,"page":2,"limit":10,"totalPages":1}}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"cnt_1","title":"On Patience","status":"Published"}],"meta":{"total":1,"page":1,"limit":10,"totalPages":1}}`))
	})

	reg := newRegistry(t, mux, time.Hour)
	ctx := context.Background()

	p1, err := reg.Contents.ListPage(ctx, client.ListParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListPage() error: %v", err)
	}
	if p1.Meta.Page != 1 || len(p1.Data) != 1 {
		t.Errorf("page 1 = %+v, want 1 item on page 1", p1)
	}

	// Same params: served from cache.
	if _, err := reg.Contents.ListPage(ctx, client.ListParams{Page: 1, Limit: 10}); err != nil {
		t.Fatalf("ListPage() error: %v", err)
	}
	if got := lists.Load(); got != 1 {
		t.Errorf("upstream calls = %d, want 1", got)
	}

	// Different params: separate key, separate fetch; beyond the last
	// page the server answers with an empty data array.
	p2, err := reg.Contents.ListPage(ctx, client.ListParams{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("ListPage() error: %v", err)
	}
	if len(p2.Data) != 0 || p2.Meta.Page != 2 {
		t.Errorf("page 2 = %+v, want empty data on page 2", p2)
	}
	if got := lists.Load(); got != 2 {
		t.Errorf("upstream calls = %d, want 2", got)
	}
}

func TestOverlappingUpdatesLastWriteWins(t *testing.T) {
	var featured atomic.Bool
	var gets atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/v1/content/cnt_1", func(w http.ResponseWriter, r *http.Request) {
		var dto struct {
			IsFeatured *bool `json:"isFeatured"`
		}
		_ = json.NewDecoder(r.Body).Decode(&dto)
		if dto.IsFeatured != nil {
			featured.Store(*dto.IsFeatured)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.Content{ID: "cnt_1", Title: "On Patience", IsFeatured: featured.Load(), Status: model.StatusPublished})
	})
	mux.HandleFunc("GET /api/v1/content/cnt_1", func(w http.ResponseWriter, r *http.Request) {
		gets.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(model.Content{ID: "cnt_1", Title: "On Patience", IsFeatured: featured.Load(), Status: model.StatusPublished})
	})

	reg := newRegistry(t, mux, time.Hour)
	ctx := context.Background()

	on, off := true, false
	var wg sync.WaitGroup
	for _, v := range []*bool{&off, &on} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.Contents.Update(ctx, "cnt_1", &model.UpdateContentDTO{IsFeatured: v}); err != nil {
				t.Errorf("Update() error: %v", err)
			}
		}()
	}
	wg.Wait()

	// Both updates invalidated the kind, so this read refetches and
	// reflects whatever the server holds now.
	got, err := reg.Contents.Get(ctx, "cnt_1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.IsFeatured != featured.Load() {
		t.Errorf("cached IsFeatured = %v, server holds %v", got.IsFeatured, featured.Load())
	}
	if gets.Load() != 1 {
		t.Errorf("detail fetches = %d, want 1 (fresh fetch after invalidation)", gets.Load())
	}
}

func TestGetDoesNotMutate(t *testing.T) {
	var patches atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/speaker/spk_1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"spk_1","name":"Sheikh A","email":"a@x.com"}`))
	})
	mux.HandleFunc("PATCH /api/v1/speaker/spk_1", func(w http.ResponseWriter, r *http.Request) {
		patches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"spk_1"}`))
	})

	reg := newRegistry(t, mux, time.Hour)
	ctx := context.Background()

	// Re-opening an edit view is a read; no implicit PATCH may happen.
	for range 3 {
		if _, err := reg.Speakers.Get(ctx, "spk_1"); err != nil {
			t.Fatalf("Get() error: %v", err)
		}
	}
	if patches.Load() != 0 {
		t.Errorf("PATCH calls = %d, want 0", patches.Load())
	}
}

func TestFetchErrorSurfacesWhenNotCached(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/user", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"database unavailable"}`))
	})

	reg := newRegistry(t, mux, time.Hour)
	if _, err := reg.Users.List(context.Background()); err == nil {
		t.Fatal("List() expected error, got nil")
	}
}
