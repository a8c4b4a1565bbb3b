package spotify

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/musedata/tracklab/internal/core/ports"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		response    string
		wantNil     bool
		wantErr     error
		wantRaw     string
		wantYear    int
		wantMonth   int
		wantDay     int
		wantPop     int
		wantNoPop   bool
		wantNoMonth bool
		wantNoDay   bool
	}{
		{
			name:       "full date and popularity",
			statusCode: http.StatusOK,
			response: `{"tracks":{"items":[{
				"name":"Song",
				"album":{"release_date":"2021-05-17"},
				"popularity":63
			}]}}`,
			wantRaw:   "2021-05-17",
			wantYear:  2021,
			wantMonth: 5,
			wantDay:   17,
			wantPop:   63,
		},
		{
			name:       "year-only release date",
			statusCode: http.StatusOK,
			response: `{"tracks":{"items":[{
				"album":{"release_date":"2021"},
				"popularity":10
			}]}}`,
			wantRaw:     "2021",
			wantYear:    2021,
			wantNoMonth: true,
			wantNoDay:   true,
			wantPop:     10,
		},
		{
			name:       "popularity omitted",
			statusCode: http.StatusOK,
			response: `{"tracks":{"items":[{
				"album":{"release_date":"1999-01"}
			}]}}`,
			wantRaw:     "1999-01",
			wantYear:    1999,
			wantMonth:   1,
			wantNoDay:   true,
			wantNoPop:   true,
			wantNoMonth: false,
		},
		{
			name:       "no matching results",
			statusCode: http.StatusOK,
			response:   `{"tracks":{"items":[]}}`,
			wantNil:    true,
		},
		{
			name:       "item with no usable fields",
			statusCode: http.StatusOK,
			response:   `{"tracks":{"items":[{"name":"Song"}]}}`,
			wantNil:    true,
		},
		{
			name:       "malformed payload",
			statusCode: http.StatusOK,
			response:   `{"tracks":`,
			wantNil:    true,
		},
		{
			name:       "unauthorized signals expired credential",
			statusCode: http.StatusUnauthorized,
			response:   `{"error":{"status":401}}`,
			wantNil:    true,
			wantErr:    ports.ErrTokenExpired,
		},
		{
			name:       "other non-200 is a miss",
			statusCode: http.StatusBadGateway,
			response:   `oops`,
			wantNil:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("q"); got != "track:Song artist:Artist" {
					t.Errorf("query: got %q", got)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer tok" {
					t.Errorf("authorization: got %q", got)
				}
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.response))
			}))
			defer ts.Close()

			client := NewClient(ts.Client(), ts.URL, zap.NewNop())
			res, err := client.Lookup(context.Background(), "tok", "Song", "Artist")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error: got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantNil {
				if res != nil {
					t.Fatalf("result: got %+v, want nil", res)
				}
				return
			}
			if res == nil {
				t.Fatal("result: got nil")
			}

			if res.ReleaseDateRaw != tt.wantRaw {
				t.Errorf("raw date: got %q, want %q", res.ReleaseDateRaw, tt.wantRaw)
			}
			if res.ReleaseDate.Year == nil || *res.ReleaseDate.Year != tt.wantYear {
				t.Errorf("year: got %v, want %d", res.ReleaseDate.Year, tt.wantYear)
			}
			if tt.wantNoMonth {
				if res.ReleaseDate.Month != nil {
					t.Errorf("month: got %d, want nil", *res.ReleaseDate.Month)
				}
			} else if res.ReleaseDate.Month == nil || *res.ReleaseDate.Month != tt.wantMonth {
				t.Errorf("month: got %v, want %d", res.ReleaseDate.Month, tt.wantMonth)
			}
			if tt.wantNoDay {
				if res.ReleaseDate.Day != nil {
					t.Errorf("day: got %d, want nil", *res.ReleaseDate.Day)
				}
			} else if res.ReleaseDate.Day == nil || *res.ReleaseDate.Day != tt.wantDay {
				t.Errorf("day: got %v, want %d", res.ReleaseDate.Day, tt.wantDay)
			}
			if tt.wantNoPop {
				if res.Popularity != nil {
					t.Errorf("popularity: got %d, want nil", *res.Popularity)
				}
			} else if res.Popularity == nil || *res.Popularity != tt.wantPop {
				t.Errorf("popularity: got %v, want %d", res.Popularity, tt.wantPop)
			}
		})
	}
}

func TestLookupTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // connection refused from here on

	client := NewClient(http.DefaultClient, ts.URL, zap.NewNop())
	res, err := client.Lookup(context.Background(), "tok", "Song", "Artist")
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if errors.Is(err, ports.ErrTokenExpired) {
		t.Fatal("transport error must not look like credential expiry")
	}
	if res != nil {
		t.Fatalf("result: got %+v, want nil", res)
	}
}

func TestLookupFirstItemWins(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tracks":{"items":[
			{"album":{"release_date":"2001"},"popularity":1},
			{"album":{"release_date":"2020"},"popularity":99}
		]}}`))
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), ts.URL, zap.NewNop())
	res, err := client.Lookup(context.Background(), "tok", "Song", "Artist")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || res.ReleaseDateRaw != "2001" {
		t.Fatalf("expected first (best-ranked) item, got %+v", res)
	}
}
