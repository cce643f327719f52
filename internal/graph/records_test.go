package graph

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openmind-services/helpdesk-dashboard/internal/auth"
	"github.com/openmind-services/helpdesk-dashboard/internal/config"
	"github.com/openmind-services/helpdesk-dashboard/pkg/util"
)

// fakeGraph serves the minimal slice of the list API the gateway touches.
type fakeGraph struct {
	mu            sync.Mutex
	siteRequests  int
	itemsStatus   int
	itemsBody     string
	patchStatus   int
	lastPatchBody string
	lastAuth      string
	lookupBody    string
	lookupStatus  int
}

func (f *fakeGraph) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastAuth = r.Header.Get("Authorization")
		f.mu.Unlock()

		path := r.URL.Path
		switch {
		case strings.Contains(path, "contoso.sharepoint.com"):
			f.mu.Lock()
			f.siteRequests++
			f.mu.Unlock()
			json.NewEncoder(w).Encode(map[string]string{"id": "site-1"})

		case strings.HasSuffix(path, "/lists"):
			filter := r.URL.Query().Get("$filter")
			id := "tickets-list"
			if strings.Contains(filter, "User Information List") {
				id = "user-list"
			}
			json.NewEncoder(w).Encode(map[string]any{
				"value": []map[string]string{{"id": id}},
			})

		case strings.Contains(path, "/lists/tickets-list/items") && r.Method == http.MethodGet:
			status := f.itemsStatus
			if status == 0 {
				status = http.StatusOK
			}
			w.WriteHeader(status)
			io.WriteString(w, f.itemsBody)

		case strings.HasSuffix(path, "/fields") && r.Method == http.MethodPatch:
			body, _ := io.ReadAll(r.Body)
			f.mu.Lock()
			f.lastPatchBody = string(body)
			f.mu.Unlock()
			status := f.patchStatus
			if status == 0 {
				status = http.StatusOK
			}
			w.WriteHeader(status)

		case strings.Contains(path, "/lists/user-list/items/"):
			status := f.lookupStatus
			if status == 0 {
				status = http.StatusOK
			}
			w.WriteHeader(status)
			io.WriteString(w, f.lookupBody)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func newTestClient(t *testing.T, fake *fakeGraph) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	cfg := config.GraphConfig{
		BaseURL:               server.URL,
		Hostname:              "contoso.sharepoint.com",
		SitePath:              "/sites/Helpdesk",
		TicketsListName:       "Tickets Management",
		UserInfoListName:      "User Information List",
		PageSize:              1000,
		RequestTimeoutSeconds: 5,
	}
	tokens := auth.NewStaticTokenSource("test-token")
	return NewClient(cfg, tokens, zap.NewNop()), server
}

func TestFetchAllParsesRecords(t *testing.T) {
	fake := &fakeGraph{itemsBody: `{
		"value": [
			{"id": "1", "createdDateTime": "2024-01-01T00:00:00Z", "fields": {"Status": "Open", "TicketID": "TKT-1"}},
			{"id": "2", "fields": {"Status": "Resolved"}}
		]
	}`}
	client, _ := newTestClient(t, fake)

	records, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID)
	assert.Equal(t, "Open", records[0].Fields["Status"])
	assert.Equal(t, "Bearer test-token", fake.lastAuth)
}

func TestFetchAllTruncationIsAnError(t *testing.T) {
	fake := &fakeGraph{itemsBody: `{
		"value": [{"id": "1", "fields": {}}],
		"@odata.nextLink": "https://example.invalid/next"
	}`}
	client, _ := newTestClient(t, fake)

	_, err := client.FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, util.KindRemoteRead, util.KindOf(err))
	assert.Contains(t, err.Error(), "truncated")
}

func TestFetchAllAuthRejection(t *testing.T) {
	fake := &fakeGraph{itemsStatus: http.StatusUnauthorized, itemsBody: `{}`}
	client, _ := newTestClient(t, fake)

	_, err := client.FetchAll(context.Background())
	require.Error(t, err)
	assert.Equal(t, util.KindAuth, util.KindOf(err))
}

func TestPatchStatusSendsSingleField(t *testing.T) {
	fake := &fakeGraph{itemsBody: `{"value": []}`}
	client, _ := newTestClient(t, fake)

	require.NoError(t, client.PatchStatus(context.Background(), "42", "Resolved"))
	assert.JSONEq(t, `{"Status": "Resolved"}`, fake.lastPatchBody)

	require.NoError(t, client.PatchStatusDetails(context.Background(), "42", "note"))
	assert.JSONEq(t, `{"StatusDetails": "note"}`, fake.lastPatchBody)
}

func TestPatchStatusNon2xxIsRemoteWriteError(t *testing.T) {
	fake := &fakeGraph{patchStatus: http.StatusInternalServerError}
	client, _ := newTestClient(t, fake)

	err := client.PatchStatus(context.Background(), "42", "Resolved")
	require.Error(t, err)
	assert.Equal(t, util.KindRemoteWrite, util.KindOf(err))
}

func TestLookupUserNamePrecedence(t *testing.T) {
	fake := &fakeGraph{lookupBody: `{"fields": {"Name": "i:0#.f|membership|x", "EMail": "x@contoso.com"}}`}
	client, _ := newTestClient(t, fake)

	name, err := client.LookupUserName(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "i:0#.f|membership|x", name)

	fake.lookupBody = `{"fields": {"Title": "Reena Sharma", "EMail": "reena@contoso.com"}}`
	name, err = client.LookupUserName(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Reena Sharma", name)
}

func TestLookupUserNameFailureIsResolutionError(t *testing.T) {
	fake := &fakeGraph{lookupStatus: http.StatusNotFound}
	client, _ := newTestClient(t, fake)

	_, err := client.LookupUserName(context.Background(), "7")
	require.Error(t, err)
	assert.Equal(t, util.KindResolution, util.KindOf(err))
}

func TestResetClearsCachedIdentifiers(t *testing.T) {
	fake := &fakeGraph{itemsBody: `{"value": []}`}
	client, _ := newTestClient(t, fake)

	_, err := client.FetchAll(context.Background())
	require.NoError(t, err)
	_, err = client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fake.siteRequests, "identifiers cached across calls")

	client.Reset()
	_, err = client.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, fake.siteRequests)
}
