package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		skip     int
		limit    int
		count    int
		wantPage int
		wantNext bool
		wantPrev bool
	}{
		{name: "first page of many", total: 25, skip: 0, limit: 10, count: 10, wantPage: 1, wantNext: true, wantPrev: false},
		{name: "middle page", total: 25, skip: 10, limit: 10, count: 10, wantPage: 2, wantNext: true, wantPrev: true},
		{name: "last short page", total: 25, skip: 20, limit: 10, count: 5, wantPage: 3, wantNext: false, wantPrev: true},
		{name: "exactly full last page", total: 20, skip: 10, limit: 10, count: 10, wantPage: 2, wantNext: false, wantPrev: true},
		{name: "empty collection", total: 0, skip: 0, limit: 10, count: 0, wantPage: 1, wantNext: false, wantPrev: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := pageEnvelope(tt.total, tt.skip, tt.limit, tt.count, nil)
			assert.Equal(t, tt.total, env["total"])
			assert.Equal(t, tt.wantPage, env["page"])
			assert.Equal(t, tt.limit, env["per_page"])
			assert.Equal(t, tt.wantNext, env["has_next"])
			assert.Equal(t, tt.wantPrev, env["has_prev"])
		})
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
	}{
		{name: "defaults", query: "", wantSkip: 0, wantLimit: 10},
		{name: "explicit values", query: "?skip=20&limit=50", wantSkip: 20, wantLimit: 50},
		{name: "limit capped at 100", query: "?limit=500", wantSkip: 0, wantLimit: 100},
		{name: "negative skip clamped", query: "?skip=-5", wantSkip: 0, wantLimit: 10},
		{name: "zero limit falls back to default", query: "?limit=0", wantSkip: 0, wantLimit: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSkip, gotLimit int
			app := fiber.New()
			app.Get("/", func(c fiber.Ctx) error {
				gotSkip, gotLimit = pagination(c)
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)

			assert.Equal(t, tt.wantSkip, gotSkip)
			assert.Equal(t, tt.wantLimit, gotLimit)
		})
	}
}
