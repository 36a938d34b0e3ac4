// ABOUTME: Tests for init-data providers.
// ABOUTME: Covers the synthetic fallback payload and provider chaining.
package identity

import (
	"net/url"
	"strings"
	"testing"
)

func TestStatic(t *testing.T) {
	if got := Static("query_id=abc").InitData(); got != "query_id=abc" {
		t.Errorf("InitData = %q", got)
	}
}

func TestCachedBuildsSyntheticPayload(t *testing.T) {
	p := Cached{UserID: 6540555219, FirstName: "Аня"}

	got := p.InitData()
	if !strings.HasPrefix(got, "user=") {
		t.Fatalf("InitData = %q, want user= prefix", got)
	}

	decoded, err := url.QueryUnescape(strings.TrimPrefix(got, "user="))
	if err != nil {
		t.Fatalf("unescape: %v", err)
	}
	if !strings.Contains(decoded, `"id":6540555219`) || !strings.Contains(decoded, `"first_name":"Аня"`) {
		t.Errorf("payload = %s", decoded)
	}
}

func TestCachedWithoutUserIsEmpty(t *testing.T) {
	if got := (Cached{}).InitData(); got != "" {
		t.Errorf("InitData = %q, want empty", got)
	}
}

func TestChainPrefersFirstNonEmpty(t *testing.T) {
	c := Chain{Static(""), Cached{UserID: 1}, Static("real")}
	if got := c.InitData(); !strings.HasPrefix(got, "user=") {
		t.Errorf("InitData = %q, want synthetic payload from second provider", got)
	}
}
