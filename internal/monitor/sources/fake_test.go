package sources

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/web3-frozen/hypurr-exporter/internal/hyperliquid"
)

// infoRequest is what the fake Info API decodes from each POST.
type infoRequest struct {
	Type         string `json:"type"`
	User         string `json:"user"`
	VaultAddress string `json:"vaultAddress"`
}

// fakeInfo serves canned bodies keyed by request type. A missing key answers
// 500.
type fakeInfo struct {
	t       *testing.T
	replies map[string]string

	mu   sync.Mutex
	seen []infoRequest
}

func newFakeInfo(t *testing.T, replies map[string]string) (*fakeInfo, *hyperliquid.Client) {
	t.Helper()
	f := &fakeInfo{t: t, replies: replies}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, hyperliquid.NewClient(srv.URL, srv.Client(), nil)
}

func (f *fakeInfo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req infoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		f.t.Errorf("decode info request: %v", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.seen = append(f.seen, req)
	f.mu.Unlock()

	body, ok := f.replies[req.Type]
	if !ok {
		http.Error(w, "unexpected request", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeInfo) requests() []infoRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]infoRequest(nil), f.seen...)
}

const dayPortfolio = `[
	["day", {"accountValueHistory": [[100, "10.5"], [300, "12.25"], [200, "11.0"]], "pnlHistory": [[100, "1.0"], [300, "-0.75"]], "vlm": "0.0"}],
	["week", {"accountValueHistory": [[999, "1.0"]], "pnlHistory": [[999, "1.0"]], "vlm": "0.0"}]
]`
