package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/models"
)

// listingLines returns the lines between the listing header and the blank separator
func listingLines(t *testing.T, page string) []string {
	t.Helper()

	lines := strings.Split(page, "\n")
	require.Equal(t, "Product Listing", lines[0])
	var out []string
	for _, line := range lines[1:] {
		if line == "" {
			break
		}
		out = append(out, line)
	}
	return out
}

func TestRender_ListingMatchesCatalogLength(t *testing.T) {
	for _, n := range []int{0, 1, 3, 12} {
		t.Run(fmt.Sprintf("%d products", n), func(t *testing.T) {
			products := make([]models.Product, n)
			for i := range products {
				products[i] = product(fmt.Sprint(i+1), "1.5")
			}
			s := newSession(t, Unbounded)
			_, err := s.Load(context.Background(), &stubFetcher{products: products})
			require.NoError(t, err)

			var buf strings.Builder
			require.NoError(t, s.Render(&buf))

			assert.Len(t, listingLines(t, buf.String()), n)
		})
	}
}

func TestRender_EmptyCart(t *testing.T) {
	s := newSession(t, Unbounded)
	_, _ = s.Load(context.Background(), &stubFetcher{products: []models.Product{product("1", "12.5")}})

	var buf strings.Builder
	require.NoError(t, s.Render(&buf))

	page := buf.String()
	assert.Contains(t, page, "$12.50")
	assert.Contains(t, page, "Your Cart\nYour cart is empty\n")
	assert.NotContains(t, page, "Subtotal")
}

func TestRender_CartWithSubtotal(t *testing.T) {
	s := newSession(t, Unbounded)
	ten := product("1", "10")
	five := product("2", "5")
	s.Add(ten)
	s.Add(ten)
	s.Add(ten)
	s.Add(five)

	var buf strings.Builder
	require.NoError(t, s.Render(&buf))

	page := buf.String()
	assert.Contains(t, page, "x 3")
	assert.Contains(t, page, "x 1")
	assert.Contains(t, page, "Subtotal: $35.00\n")
}

func TestRender_FailedLoadShowsNoProducts(t *testing.T) {
	s := newSession(t, Unbounded)
	_, _ = s.Load(context.Background(), &stubFetcher{err: errors.New("offline")})

	var buf strings.Builder
	require.NoError(t, s.Render(&buf))

	assert.Empty(t, listingLines(t, buf.String()))
	assert.NotContains(t, buf.String(), "offline")
}
