package cache

import (
	"net/url"
	"strings"
	"testing"

	"github.com/daewazone/admin-go/internal/model"
)

func TestKeySchema(t *testing.T) {
	if got, want := ListKey(model.KindCategory, nil), "category:list:all"; got != want {
		t.Errorf("ListKey = %q, want %q", got, want)
	}
	if got, want := DetailKey(model.KindCourse, "crs_1"), "course:detail:crs_1"; got != want {
		t.Errorf("DetailKey = %q, want %q", got, want)
	}
}

func TestListKeyParamsAreCanonical(t *testing.T) {
	a := url.Values{}
	a.Set("page", "2")
	a.Set("limit", "10")
	a.Set("search", "patience")

	b := url.Values{}
	b.Set("search", "patience")
	b.Set("limit", "10")
	b.Set("page", "2")

	if ListKey(model.KindContent, a) != ListKey(model.KindContent, b) {
		t.Error("equivalent params produced different keys")
	}
}

func TestScopesAreDistinctNamespaces(t *testing.T) {
	list := ListKey(model.KindSpeaker, nil)
	detail := DetailKey(model.KindSpeaker, "all")

	if list == detail {
		t.Error("list and detail keys collide")
	}
	if !strings.HasPrefix(list, KindPrefix(model.KindSpeaker)) {
		t.Errorf("list key %q not under kind prefix", list)
	}
	if !strings.HasPrefix(detail, KindPrefix(model.KindSpeaker)) {
		t.Errorf("detail key %q not under kind prefix", detail)
	}
	if !strings.HasPrefix(list, ListPrefix(model.KindSpeaker)) {
		t.Errorf("list key %q not under list prefix", list)
	}
	if strings.HasPrefix(detail, ListPrefix(model.KindSpeaker)) {
		t.Errorf("detail key %q under list prefix", detail)
	}
}

func TestKindPrefixesDoNotOverlap(t *testing.T) {
	for _, a := range model.Kinds {
		for _, b := range model.Kinds {
			if a == b {
				continue
			}
			if strings.HasPrefix(KindPrefix(a), KindPrefix(b)) {
				t.Errorf("kind prefix %q overlaps %q", KindPrefix(a), KindPrefix(b))
			}
		}
	}
}
