package innebandy

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/tyler180/floorball-appearances/internal/logging"
)

// fake fetcher keyed by URL
type fakeFetcher struct {
	pages map[string]*Page
	errs  map[string]error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) (*Page, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	if p, ok := f.pages[url]; ok {
		return p, nil
	}
	return nil, errors.Newf("no page for %s", url)
}

const annaHTML = `<h2>Säsong 2025/26</h2>
<table>
<thead><tr><th>Tävling</th><th>Lag</th><th>MA</th></tr></thead>
<tbody>
<tr><td>Div1</td><td>X</td><td>3</td></tr>
<tr><td>TOTALT</td><td></td><td>3</td></tr>
</tbody>
</table>`

func newTestCollector(site Site, f PageFetcher) (*Collector, *[]time.Duration) {
	var slept []time.Duration
	c := NewCollector(site, f, logging.NewNop())
	c.sleep = func(d time.Duration) { slept = append(slept, d) }
	return c, &slept
}

func TestCollect_SinglePlayerScenario(t *testing.T) {
	site := DefaultSite()
	entries := site.NormalizeRoster([]RawRosterRow{{Name: "Anna Svensson", Position: "forward", Href: "/spelare/5"}})

	f := &fakeFetcher{pages: map[string]*Page{
		"https://stats.innebandy.se/spelare/5": mustParse(t, annaHTML),
	}}
	c, slept := newTestCollector(site, f)
	got := c.Collect(context.Background(), entries)

	if len(got.Failures) != 0 || len(got.LowConfidence) != 0 {
		t.Fatalf("unexpected failures/low confidence: %+v", got)
	}
	if len(got.Records) != 2 {
		t.Fatalf("records = %d, want 2 (division + total)", len(got.Records))
	}
	r := got.Records[0]
	if r.Player != "F-Anna Svensson" || r.Division != "Div1" || r.Team != "X" || r.Matches != 3 {
		t.Fatalf("record = %+v", r)
	}
	if !got.Records[1].IsTotal() || got.Records[1].Matches != 3 {
		t.Fatalf("total record = %+v", got.Records[1])
	}
	if len(*slept) != 0 {
		t.Fatalf("no delay expected before the first fetch, slept %v", *slept)
	}
}

func TestCollect_FailuresDoNotAbort(t *testing.T) {
	site := NewSite("https://s.test", "2025/26", 150*time.Millisecond)
	entries := []RosterEntry{
		{Name: "A", Position: PositionForward, Link: "https://s.test/a"},
		{Name: "B", Position: PositionBack},
		{Name: "C", Position: PositionBack, Link: "https://s.test/c"},
		{Name: "D", Position: PositionGoalkeeper, Link: "https://s.test/d"},
	}
	page := mustParse(t, annaHTML)
	f := &fakeFetcher{
		pages: map[string]*Page{"https://s.test/a": page, "https://s.test/d": page},
		errs:  map[string]error{"https://s.test/c": errors.New("navigation timeout")},
	}
	c, slept := newTestCollector(site, f)
	got := c.Collect(context.Background(), entries)

	if len(f.calls) != 3 {
		t.Fatalf("fetches = %v, want 3", f.calls)
	}
	if got.NoLink != 1 {
		t.Fatalf("NoLink = %d", got.NoLink)
	}
	if len(got.Failures) != 1 || got.Failures[0].Label != "B-C" {
		t.Fatalf("failures = %+v", got.Failures)
	}
	if len(got.Records) != 4 {
		t.Fatalf("records = %d, want 4", len(got.Records))
	}
	if got.Records[2].Player != "M-D" {
		t.Fatalf("record order = %+v", got.Records)
	}
	if len(*slept) != 2 || (*slept)[0] != 150*time.Millisecond {
		t.Fatalf("slept = %v, want two 150ms pauses", *slept)
	}
}

func TestCollect_LowConfidenceReported(t *testing.T) {
	site := NewSite("https://s.test", "2030/31", 0)
	f := &fakeFetcher{pages: map[string]*Page{"https://s.test/a": mustParse(t, annaHTML)}}
	c, _ := newTestCollector(site, f)

	got := c.Collect(context.Background(), []RosterEntry{{Name: "A", Position: PositionForward, Link: "https://s.test/a"}})
	if len(got.LowConfidence) != 1 || got.LowConfidence[0] != "F-A" {
		t.Fatalf("low confidence = %v", got.LowConfidence)
	}
	if len(got.Records) != 2 {
		t.Fatalf("fallback still extracts, got %d records", len(got.Records))
	}
}

func TestCollect_CancelledContext(t *testing.T) {
	site := DefaultSite()
	f := &fakeFetcher{}
	c, _ := newTestCollector(site, f)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got := c.Collect(ctx, []RosterEntry{{Name: "A", Link: "https://s.test/a"}})
	if len(f.calls) != 0 || len(got.Records) != 0 {
		t.Fatalf("expected no work after cancel, calls=%v", f.calls)
	}
}
