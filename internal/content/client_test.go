package content_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/storefront-gateway/internal/content"
	"github.com/donaldgifford/storefront-gateway/internal/fetch"
)

func TestHTTPClient_Suggestions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		body      string
		want      []string
		wantErr   error
		anyErr    bool
		wantCalls int32
	}{
		{
			name: "titles in upstream order with duplicates",
			body: `{"sections":[
				{"subsections":[{"title":"Jordan 4"},{"title":"Dunk Low"},{"title":"Jordan 4"},{"title":""},{}]},
				{"subsections":[{"title":"ignored"}]}
			]}`,
			want:      []string{"Jordan 4", "Dunk Low", "Jordan 4"},
			wantCalls: 1,
		},
		{
			name:      "empty subsections is valid",
			body:      `{"sections":[{"subsections":[]}]}`,
			want:      []string{},
			wantCalls: 1,
		},
		{
			name:      "missing sections is a structural failure without retry",
			body:      `{"hero":{}}`,
			wantErr:   content.ErrUnexpectedShape,
			wantCalls: 1,
		},
		{
			name:      "empty sections is a structural failure",
			body:      `{"sections":[]}`,
			wantErr:   content.ErrUnexpectedShape,
			wantCalls: 1,
		},
		{
			name:      "missing subsections is a structural failure",
			body:      `{"sections":[{"title":"Popular"}]}`,
			wantErr:   content.ErrUnexpectedShape,
			wantCalls: 1,
		},
		{
			name:      "upstream error retried then surfaced",
			status:    http.StatusBadGateway,
			body:      `bad gateway`,
			anyErr:    true,
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := fetch.New("content", fetch.WithSleep(func(context.Context, time.Duration) error { return nil }))
			got, err := content.NewHTTPClient(f, srv.URL).Suggestions(context.Background())

			assert.Equal(t, tt.wantCalls, calls.Load())

			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				require.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
