package paging

import (
	"errors"
	"testing"
	"time"
)

func TestNewPage(t *testing.T) {
	p := NewPage([]string{"a", "b"}, 3, 2, 7)

	if p.Offset() != 4 {
		t.Errorf("expected offset 4, got %d", p.Offset())
	}
	if p.LastPage() != 4 {
		t.Errorf("expected last page 4, got %d", p.LastPage())
	}

	m := p.Meta()
	if m.From != 5 || m.To != 6 {
		t.Errorf("expected from 5 to 6, got from %d to %d", m.From, m.To)
	}
	if !m.HasNextPage {
		t.Errorf("expected has next page")
	}
	if m.Total != 7 || m.CurrentPage != 3 || m.PerPage != 2 {
		t.Errorf("unexpected meta %+v", m)
	}
}

func TestNewPageNormalizes(t *testing.T) {
	p := NewPage[int](nil, 0, 0, 0)

	if p.CurrentPage != 1 || p.PerPage != 15 {
		t.Errorf("expected page 1 per page 15, got %d %d", p.CurrentPage, p.PerPage)
	}
	if p.Items == nil {
		t.Errorf("expected non-nil items")
	}

	m := p.Meta()
	if m.LastPage != 1 || m.HasNextPage || m.From != 0 {
		t.Errorf("unexpected meta for empty page %+v", m)
	}
}

func TestPaginate(t *testing.T) {
	source := []int{1, 2, 3, 4, 5}

	res, err := Paginate(Params{Limit: 3}, func(cursor string, limit int) ([]int, int, string, error) {
		if limit != 4 {
			t.Errorf("expected limit+1 = 4, got %d", limit)
		}
		return source[:limit], len(source), "c3", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Items) != 3 || !res.HasNextPage {
		t.Errorf("expected 3 items with next page, got %d %v", len(res.Items), res.HasNextPage)
	}

	m := res.Meta()
	if m.NextCursor != "c3" || m.Total != 5 {
		t.Errorf("unexpected meta %+v", m)
	}
	if _, ok := res.Values().([]int); !ok {
		t.Errorf("expected []int values")
	}
}

func TestPaginateError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Paginate(Params{}, func(string, int) ([]int, int, string, error) {
		return nil, 0, "", boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped error, got %v", err)
	}
}

func TestPaginateEmpty(t *testing.T) {
	res, err := Paginate(Params{Limit: -1}, NoopPagingFunc[string])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Items == nil || len(res.Items) != 0 || res.HasNextPage {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestCursor(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 30, 0, 123, time.UTC)

	got, err := DecodeCursor(EncodeCursor(now))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(now) {
		t.Errorf("expected %v, got %v", now, got)
	}

	if _, err := DecodeCursor("%%%"); err == nil {
		t.Errorf("expected error for invalid cursor")
	}
}
