package gmail

import (
	"fmt"
	"testing"
)

// fakePages simulates a paged message listing and records what each request
// asked for.
type fakePages struct {
	pages     [][]string
	calls     int
	pageSizes []int64
	tokens    []string
}

func (f *fakePages) list(pageToken string, pageSize int64) ([]string, string, error) {
	f.calls++
	f.pageSizes = append(f.pageSizes, pageSize)
	f.tokens = append(f.tokens, pageToken)

	page := f.pages[f.calls-1]
	next := ""
	if f.calls < len(f.pages) {
		next = fmt.Sprintf("token_page_%d", f.calls+1)
	}
	return page, next, nil
}

func idPage(start, count int) []string {
	ids := make([]string, count)
	for i := range ids {
		ids[i] = fmt.Sprintf("msg_%d", start+i)
	}
	return ids
}

func TestCollectMessageIDs_SinglePage(t *testing.T) {
	fake := &fakePages{pages: [][]string{idPage(0, 50)}}

	ids, err := collectMessageIDs(50, fake.list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 50 {
		t.Errorf("expected 50 IDs, got %d", len(ids))
	}
	if fake.calls != 1 {
		t.Errorf("expected exactly one listing call, got %d", fake.calls)
	}
}

func TestCollectMessageIDs_MultiplePages(t *testing.T) {
	fake := &fakePages{pages: [][]string{
		idPage(0, 500),
		idPage(500, 500),
		idPage(1000, 200),
	}}

	ids, err := collectMessageIDs(1200, fake.list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ids) != 1200 {
		t.Errorf("expected 1200 IDs, got %d", len(ids))
	}
	if fake.calls != 3 {
		t.Errorf("expected 3 listing calls, got %d", fake.calls)
	}
	if ids[0] != "msg_0" || ids[1199] != "msg_1199" {
		t.Errorf("IDs out of order: first %s last %s", ids[0], ids[len(ids)-1])
	}
	if fake.tokens[0] != "" || fake.tokens[1] != "token_page_2" || fake.tokens[2] != "token_page_3" {
		t.Errorf("page tokens not threaded through: %v", fake.tokens)
	}
}

func TestCollectMessageIDs_ClampsPageSize(t *testing.T) {
	fake := &fakePages{pages: [][]string{
		idPage(0, 500),
		idPage(500, 100),
	}}

	ids, err := collectMessageIDs(600, fake.list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ids) != 600 {
		t.Errorf("expected 600 IDs, got %d", len(ids))
	}
	if fake.pageSizes[0] != maxPageSize {
		t.Errorf("first page should request the page cap, got %d", fake.pageSizes[0])
	}
	if fake.pageSizes[1] != 100 {
		t.Errorf("second page should request only the remainder, got %d", fake.pageSizes[1])
	}
}

func TestCollectMessageIDs_TruncatesToMax(t *testing.T) {
	// Listing returns more than asked for; the collector must not exceed max.
	fake := &fakePages{pages: [][]string{idPage(0, 30)}}

	ids, err := collectMessageIDs(20, fake.list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 20 {
		t.Errorf("expected 20 IDs, got %d", len(ids))
	}
}

func TestCollectMessageIDs_StopsWhenExhausted(t *testing.T) {
	fake := &fakePages{pages: [][]string{idPage(0, 10)}}

	ids, err := collectMessageIDs(1000, fake.list)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 10 {
		t.Errorf("expected all 10 available IDs, got %d", len(ids))
	}
	if fake.calls != 1 {
		t.Errorf("listing without a next token should stop, got %d calls", fake.calls)
	}
}

func TestCollectMessageIDs_PropagatesError(t *testing.T) {
	wantErr := fmt.Errorf("listing blew up")
	_, err := collectMessageIDs(100, func(string, int64) ([]string, string, error) {
		return nil, "", wantErr
	})
	if err == nil {
		t.Fatal("expected the listing error to propagate")
	}
}
