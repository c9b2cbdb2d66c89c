package testutil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/invcat-service/internal/app/catalog/remote/memcatalog"
)

// NewDummyJSONServer serves catalog over the dummyjson products API
// (/products, /products/search, PUT and DELETE /products/{id}).
func NewDummyJSONServer(t *testing.T, catalog *memcatalog.Catalog) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		listProducts(w, r, catalog, "")
	})
	mux.HandleFunc("GET /products/search", func(w http.ResponseWriter, r *http.Request) {
		listProducts(w, r, catalog, r.URL.Query().Get("q"))
	})
	mux.HandleFunc("PUT /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		updateProduct(w, r, catalog)
	})
	mux.HandleFunc("DELETE /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		if err := catalog.Delete(r.Context(), id); err != nil {
			writeCatalogError(w, err)
			return
		}
		writeJSON(w, map[string]any{"id": id, "isDeleted": true})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func listProducts(w http.ResponseWriter, r *http.Request, catalog *memcatalog.Catalog, term string) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))

	page, err := catalog.List(r.Context(), contracts.ListQuery{Skip: skip, Limit: limit, Term: term})
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	products := make([]map[string]any, 0, len(page.Items))
	for _, p := range page.Items {
		products = append(products, productJSON(p))
	}
	writeJSON(w, map[string]any{"products": products, "total": page.Total, "skip": skip, "limit": limit})
}

func updateProduct(w http.ResponseWriter, r *http.Request, catalog *memcatalog.Catalog) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "bad id", http.StatusBadRequest)
		return
	}

	var body struct {
		Title              *string      `json:"title"`
		Description        *string      `json:"description"`
		Brand              *string      `json:"brand"`
		Category           *string      `json:"category"`
		Thumbnail          *string      `json:"thumbnail"`
		Price              *json.Number `json:"price"`
		DiscountPercentage *json.Number `json:"discountPercentage"`
		Rating             *float64     `json:"rating"`
		Stock              *int64       `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	update := &contracts.RemoteUpdate{
		Title:       body.Title,
		Description: body.Description,
		Brand:       body.Brand,
		Category:    body.Category,
		Thumbnail:   body.Thumbnail,
		Rating:      body.Rating,
		Stock:       body.Stock,
	}
	if body.Price != nil {
		if update.Price, err = domain.ParseMoney(body.Price.String()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	if body.DiscountPercentage != nil {
		if update.DiscountPercentage, err = domain.ParsePercent(body.DiscountPercentage.String()); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	raw, err := catalog.Update(r.Context(), id, update)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	writeJSON(w, productJSON(raw))
}

func productJSON(p *contracts.RawProduct) map[string]any {
	discount := domain.ZeroPercent()
	if p.DiscountPercentage != nil {
		discount = p.DiscountPercentage
	}
	return map[string]any{
		"id":                 p.ID,
		"title":              p.Title,
		"description":        p.Description,
		"brand":              p.Brand,
		"category":           p.Category,
		"thumbnail":          p.Thumbnail,
		"price":              json.Number(p.Price.String()),
		"discountPercentage": json.Number(discount.String()),
		"rating":             p.Rating,
		"stock":              p.Stock,
	}
}

func writeCatalogError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrProductNotFound) {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusServiceUnavailable)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
