package ghostfolio

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Rhymond/go-money"
	"github.com/matakite/kourasync"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q, want bearer test-token", got)
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-token")
}

func TestNewClientFromKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/anonymous" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var body struct {
			AccessToken string `json:"accessToken"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if body.AccessToken != "security-token" {
			t.Errorf("accessToken = %q, want security-token", body.AccessToken)
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"authToken": "bearer-123"}`)
	}))
	defer server.Close()

	c, err := NewClientFromKey(server.URL, "security-token")
	if err != nil {
		t.Fatalf("NewClientFromKey() unexpected error: %v", err)
	}
	if c.token != "bearer-123" {
		t.Errorf("token = %q, want bearer-123", c.token)
	}
}

func TestClient_Activities(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/order" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("accounts"); got != "acc-1" {
			t.Errorf("accounts = %q, want acc-1", got)
		}
		fmt.Fprint(w, `{"activities": [
			{"id": "x1", "accountId": "acc-1", "type": "BUY", "symbol": "GF_KOURAGROW",
			 "quantity": 10, "unitPrice": 1, "fee": 0, "currency": "NZD",
			 "date": "2024-05-01T00:00:00.000Z"}
		]}`)
	})

	activities, err := c.Activities("acc-1")
	if err != nil {
		t.Fatalf("Activities() unexpected error: %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("Activities() returned %d activities, want 1", len(activities))
	}
	if activities[0].Symbol != "GF_KOURAGROW" {
		t.Errorf("symbol = %q, want GF_KOURAGROW", activities[0].Symbol)
	}
}

func TestClient_Import_chunksAndSorts(t *testing.T) {
	var batches [][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/import" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body struct {
			Activities []kourasync.Activity `json:"activities"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		dates := make([]string, 0, len(body.Activities))
		for _, a := range body.Activities {
			dates = append(dates, a.Date)
		}
		batches = append(batches, dates)
		w.WriteHeader(http.StatusCreated)
	})

	// 25 activities in reverse date order must arrive oldest first, in
	// batches of 10, 10 and 5.
	activities := make([]kourasync.Activity, 0, 25)
	for i := 25; i > 0; i-- {
		activities = append(activities, kourasync.Activity{
			Date: fmt.Sprintf("2024-01-%02dT00:00:00Z", i),
		})
	}
	if err := c.Import(activities); err != nil {
		t.Fatalf("Import() unexpected error: %v", err)
	}

	if len(batches) != 3 {
		t.Fatalf("Import() sent %d batches, want 3", len(batches))
	}
	if len(batches[0]) != 10 || len(batches[1]) != 10 || len(batches[2]) != 5 {
		t.Errorf("batch sizes = %d/%d/%d, want 10/10/5", len(batches[0]), len(batches[1]), len(batches[2]))
	}
	if batches[0][0] != "2024-01-01T00:00:00Z" {
		t.Errorf("first imported date = %s, want the oldest", batches[0][0])
	}
	if last := batches[2][len(batches[2])-1]; last != "2024-01-25T00:00:00Z" {
		t.Errorf("last imported date = %s, want the newest", last)
	}
}

func TestClient_Import_stopsOnFailure(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad batch", http.StatusBadRequest)
	})

	activities := make([]kourasync.Activity, 15)
	if err := c.Import(activities); err == nil {
		t.Error("Import() error = nil, want failure on 400")
	}
	if calls != 1 {
		t.Errorf("Import() sent %d batches after a failure, want 1", calls)
	}
}

func TestClient_EnsureAccount(t *testing.T) {
	t.Run("Existing account is reused", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			}
			fmt.Fprint(w, `{"accounts": [
				{"id": "other", "name": "Broker"},
				{"id": "acc-7", "name": "Koura Wealth"}
			]}`)
		})

		id, err := c.EnsureAccount("Koura Wealth", "NZD", "")
		if err != nil {
			t.Fatalf("EnsureAccount() unexpected error: %v", err)
		}
		if id != "acc-7" {
			t.Errorf("EnsureAccount() = %q, want acc-7", id)
		}
	})

	t.Run("Missing account is created", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				fmt.Fprint(w, `{"accounts": []}`)
			case http.MethodPost:
				var account Account
				if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
					t.Errorf("decoding body: %v", err)
				}
				if account.Name != "Koura Wealth" || account.Currency != "NZD" {
					t.Errorf("created account = %+v", account)
				}
				if account.PlatformID != "platform-1" {
					t.Errorf("platformId = %q, want platform-1", account.PlatformID)
				}
				w.WriteHeader(http.StatusCreated)
				fmt.Fprint(w, `{"id": "acc-new", "name": "Koura Wealth"}`)
			default:
				t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			}
		})

		id, err := c.EnsureAccount("Koura Wealth", "NZD", "platform-1")
		if err != nil {
			t.Fatalf("EnsureAccount() unexpected error: %v", err)
		}
		if id != "acc-new" {
			t.Errorf("EnsureAccount() = %q, want acc-new", id)
		}
	})
}

func TestClient_SetCash(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/v1/account/acc-7" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var account Account
		if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		if account.Balance != 1234.56 {
			t.Errorf("balance = %v, want 1234.56", account.Balance)
		}
		if account.Currency != "NZD" {
			t.Errorf("currency = %q, want NZD", account.Currency)
		}
		if account.IsExcluded {
			t.Error("isExcluded = true, want false")
		}
	})

	cash := money.New(123456, money.NZD)
	if err := c.SetCash("acc-7", "Koura Wealth", "", cash); err != nil {
		t.Fatalf("SetCash() unexpected error: %v", err)
	}
}

func TestClient_CreateAsset(t *testing.T) {
	var methods []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/admin/profile-data/MANUAL/GF_KOURABTC" {
			t.Errorf("path = %q", r.URL.Path)
		}
		methods = append(methods, r.Method)
		if r.Method == http.MethodPatch {
			var details map[string]string
			if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
				t.Errorf("decoding body: %v", err)
			}
			if details["name"] != "Koura Bitcoin Fund" || details["currency"] != "NZD" {
				t.Errorf("details = %v", details)
			}
		}
		w.WriteHeader(http.StatusCreated)
	})

	if err := c.CreateAsset("GF_KOURABTC", "Koura Bitcoin Fund", "NZD"); err != nil {
		t.Fatalf("CreateAsset() unexpected error: %v", err)
	}
	if len(methods) != 2 || methods[0] != http.MethodPost || methods[1] != http.MethodPatch {
		t.Errorf("CreateAsset() requests = %v, want create then details patch", methods)
	}
}
