package handlers_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/storefront-gateway/internal/api/handlers"
	"github.com/donaldgifford/storefront-gateway/internal/content"
	contentMocks "github.com/donaldgifford/storefront-gateway/internal/content/mocks"
)

func TestSuggestionsHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		setupMock  func(*contentMocks.MockClient)
		wantStatus int
		wantBody   []string
	}{
		{
			name: "returns suggestions in order",
			setupMock: func(m *contentMocks.MockClient) {
				m.EXPECT().Suggestions(mock.Anything).
					Return([]string{"Jordan 4", "Dunk Low", "Jordan 4"}, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantBody:   []string{`"suggestions":["Jordan 4","Dunk Low","Jordan 4"]`},
		},
		{
			name: "structural mismatch returns 500",
			setupMock: func(m *contentMocks.MockClient) {
				m.EXPECT().Suggestions(mock.Anything).
					Return(nil, fmt.Errorf("%w: missing sections", content.ErrUnexpectedShape)).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody: []string{
				`"error":"suggestions feed has an unexpected shape"`,
				`missing sections`,
			},
		},
		{
			name: "upstream error returns 500",
			setupMock: func(m *contentMocks.MockClient) {
				m.EXPECT().Suggestions(mock.Anything).
					Return(nil, errors.New("dial tcp: connection refused")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   []string{`"error":"suggestions lookup failed: dial tcp: connection refused"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mockClient := contentMocks.NewMockClient(t)
			tt.setupMock(mockClient)

			_, api := humatest.New(t)
			handlers.RegisterSuggestionsRoutes(api, handlers.NewSuggestionsHandler(mockClient))

			resp := api.Get("/api/v1/search-suggestions")
			require.Equal(t, tt.wantStatus, resp.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}
