package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFields() Fields {
	return Fields{
		Details: Details{
			Title:       "Desk Lamp",
			Description: "Adjustable LED lamp",
			Brand:       "Lumio",
			Category:    "home-decoration",
			Rating:      4.2,
			Stock:       12,
		},
		OriginalPrice:      NewMoneyFromFloat(100),
		DiscountPercentage: MustPercent(25),
	}
}

func TestNewLocalProduct(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("derives price from original price and discount", func(t *testing.T) {
		p, err := NewLocalProduct(1_000_000, testFields(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(1_000_000), p.ID())
		assert.Equal(t, OriginLocal, p.Origin())
		assert.True(t, p.IsLocal())
		assert.Equal(t, "75.00", p.Price().String())
		assert.Equal(t, "100.00", p.OriginalPrice().String())
		assert.Equal(t, now, p.CreatedAt())
	})

	t.Run("nil discount means none", func(t *testing.T) {
		f := testFields()
		f.DiscountPercentage = nil
		p, err := NewLocalProduct(1, f, now)
		require.NoError(t, err)
		assert.True(t, p.DiscountPercentage().IsZero())
		assert.Equal(t, "100.00", p.Price().String())
	})

	t.Run("empty title returns error", func(t *testing.T) {
		f := testFields()
		f.Title = ""
		_, err := NewLocalProduct(1, f, now)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("missing or negative original price returns error", func(t *testing.T) {
		f := testFields()
		f.OriginalPrice = nil
		_, err := NewLocalProduct(1, f, now)
		assert.ErrorIs(t, err, ErrInvalidPrice)

		f.OriginalPrice = NewMoneyFromFloat(-1)
		_, err = NewLocalProduct(1, f, now)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("rating out of range returns error", func(t *testing.T) {
		f := testFields()
		f.Rating = 5.5
		_, err := NewLocalProduct(1, f, now)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("negative stock returns error", func(t *testing.T) {
		f := testFields()
		f.Stock = -1
		_, err := NewLocalProduct(1, f, now)
		assert.ErrorIs(t, err, ErrInvalidStock)
	})
}

func TestProduct_Apply(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Minute)

	t.Run("full discount zeroes price and keeps original price", func(t *testing.T) {
		p, _ := NewLocalProduct(1, testFields(), now)

		err := p.Apply(NewPatch().WithDiscountPercentage(MustPercent(100)), later)
		require.NoError(t, err)
		assert.Equal(t, "0.00", p.Price().String())
		assert.Equal(t, "100.00", p.OriginalPrice().String())
		assert.Equal(t, later, p.UpdatedAt())
	})

	t.Run("original price change recomputes price", func(t *testing.T) {
		p, _ := NewLocalProduct(1, testFields(), now)

		err := p.Apply(NewPatch().WithOriginalPrice(NewMoneyFromFloat(200)), later)
		require.NoError(t, err)
		assert.Equal(t, "150.00", p.Price().String())
		assert.True(t, p.Changes().Dirty(FieldPrice))
		assert.True(t, p.Changes().Dirty(FieldOriginalPrice))
	})

	t.Run("detail change leaves price alone", func(t *testing.T) {
		p, _ := NewLocalProduct(1, testFields(), now)

		err := p.Apply(NewPatch().WithTitle("Floor Lamp").WithStock(3), later)
		require.NoError(t, err)
		assert.Equal(t, "Floor Lamp", p.Title())
		assert.Equal(t, int64(3), p.Stock())
		assert.False(t, p.Changes().Dirty(FieldPrice))
	})

	t.Run("invalid patch leaves product untouched", func(t *testing.T) {
		p, _ := NewLocalProduct(1, testFields(), now)

		err := p.Apply(NewPatch().WithTitle("Renamed").WithRating(9), later)
		assert.ErrorIs(t, err, ErrInvalidRating)
		assert.Equal(t, "Desk Lamp", p.Title())
		assert.Equal(t, now, p.UpdatedAt())
		assert.False(t, p.Changes().HasChanges())
	})

	t.Run("negative original price is rejected", func(t *testing.T) {
		p, _ := NewLocalProduct(1, testFields(), now)

		err := p.Apply(NewPatch().WithOriginalPrice(NewMoneyFromFloat(-3)), later)
		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.Equal(t, "75.00", p.Price().String())
	})
}

func TestReconstructRemoteProduct(t *testing.T) {
	details := Details{Title: "Essence Mascara Lash Princess", Category: "beauty", Rating: 4.94, Stock: 5}

	p := ReconstructRemoteProduct(1, details, NewMoneyFromFloat(9.99), MustPercent(7.17))
	assert.Equal(t, OriginRemote, p.Origin())
	assert.Equal(t, "9.99", p.Price().String())
	assert.Equal(t, "10.76", p.OriginalPrice().String())
	assert.False(t, p.Changes().HasChanges())
}

func TestProduct_Clone(t *testing.T) {
	p, _ := NewLocalProduct(1, testFields(), time.Now())
	c := p.Clone()

	require.NoError(t, c.Apply(NewPatch().WithTitle("Changed"), time.Now()))
	assert.Equal(t, "Desk Lamp", p.Title())
	assert.Equal(t, "Changed", c.Title())
}

func TestSearchFilter_Matches(t *testing.T) {
	p, _ := NewLocalProduct(1, testFields(), time.Now())

	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"lamp", true},
		{"LED", true},
		{"lumio", true},
		{"DECORATION", true},
		{"phone", false},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, SearchFilter{Term: tt.term}.Matches(p))
		})
	}
}

func TestCatalogPage_TotalPages(t *testing.T) {
	assert.Equal(t, 6, (&CatalogPage{TotalCount: 32, PageSize: 6}).TotalPages())
	assert.Equal(t, 5, (&CatalogPage{TotalCount: 30, PageSize: 6}).TotalPages())
	assert.Equal(t, 0, (&CatalogPage{TotalCount: 0, PageSize: 6}).TotalPages())
}
