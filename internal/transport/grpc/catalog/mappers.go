package catalog

import (
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/invcat-service/internal/app/catalog/controller"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
)

// viewToStruct renders a view as {view_id, status, page_index, page_size,
// total_count, total_pages, term, error, items}.
func viewToStruct(viewID string, v controller.View) (*structpb.Struct, error) {
	items := make([]any, 0, len(v.Items()))
	for _, p := range v.Items() {
		items = append(items, productToMap(p))
	}

	doc := map[string]any{
		"view_id":     viewID,
		"status":      string(v.Status),
		"page_index":  v.PageIndex,
		"page_size":   v.PageSize,
		"total_count": v.TotalCount(),
		"total_pages": v.TotalPages(),
		"term":        v.Term,
		"items":       items,
	}
	if v.Err != nil {
		doc["error"] = v.Err.Error()
	}

	return structpb.NewStruct(doc)
}

func productToStruct(p *domain.Product) (*structpb.Struct, error) {
	return structpb.NewStruct(productToMap(p))
}

func productToMap(p *domain.Product) map[string]any {
	m := map[string]any{
		"id":                  p.ID(),
		"title":               p.Title(),
		"description":         p.Description(),
		"brand":               p.Brand(),
		"category":            p.Category(),
		"thumbnail":           p.Thumbnail(),
		"price":               p.Price().Float64(),
		"original_price":      p.OriginalPrice().Float64(),
		"discount_percentage": p.DiscountPercentage().Float64(),
		"rating":              p.Rating(),
		"stock":               p.Stock(),
		"origin":              string(p.Origin()),
	}
	if !p.CreatedAt().IsZero() {
		m["created_at"] = p.CreatedAt().Format(time.RFC3339)
		m["updated_at"] = p.UpdatedAt().Format(time.RFC3339)
	}
	return m
}

// fieldsFromStruct maps a product document to the input of a new local product.
func fieldsFromStruct(s *structpb.Struct) (domain.Fields, error) {
	var f domain.Fields
	if s == nil {
		return f, fmt.Errorf("product is required")
	}
	fields := s.GetFields()

	if _, ok := fields["price"]; ok {
		return f, errPriceNotEditable
	}

	var err error
	if f.Title, err = optionalString(fields, "title"); err != nil {
		return f, err
	}
	if f.Description, err = optionalString(fields, "description"); err != nil {
		return f, err
	}
	if f.Brand, err = optionalString(fields, "brand"); err != nil {
		return f, err
	}
	if f.Category, err = optionalString(fields, "category"); err != nil {
		return f, err
	}
	if f.Thumbnail, err = optionalString(fields, "thumbnail"); err != nil {
		return f, err
	}
	if v, ok := fields["rating"]; ok {
		if f.Rating, err = numberValue("rating", v); err != nil {
			return f, err
		}
	}
	if v, ok := fields["stock"]; ok {
		if f.Stock, err = integerValue("stock", v); err != nil {
			return f, err
		}
	}

	v, ok := fields["original_price"]
	if !ok {
		return f, fmt.Errorf("original_price is required")
	}
	if f.OriginalPrice, err = moneyValue("original_price", v); err != nil {
		return f, err
	}

	if v, ok := fields["discount_percentage"]; ok {
		if f.DiscountPercentage, err = percentValue("discount_percentage", v); err != nil {
			return f, err
		}
	}

	return f, nil
}

// patchFromStruct maps the keys present in a product document to a patch.
func patchFromStruct(s *structpb.Struct) (*domain.Patch, error) {
	patch := domain.NewPatch()
	if s == nil {
		return patch, nil
	}

	for key, v := range s.GetFields() {
		switch key {
		case "title", "description", "brand", "category", "thumbnail":
			str, ok := v.GetKind().(*structpb.Value_StringValue)
			if !ok {
				return nil, fmt.Errorf("%s must be a string", key)
			}
			applyStringPatch(patch, key, str.StringValue)
		case "rating":
			f, err := numberValue(key, v)
			if err != nil {
				return nil, err
			}
			patch.WithRating(f)
		case "stock":
			n, err := integerValue(key, v)
			if err != nil {
				return nil, err
			}
			patch.WithStock(n)
		case "original_price":
			m, err := moneyValue(key, v)
			if err != nil {
				return nil, err
			}
			patch.WithOriginalPrice(m)
		case "discount_percentage":
			p, err := percentValue(key, v)
			if err != nil {
				return nil, err
			}
			patch.WithDiscountPercentage(p)
		case "price":
			return nil, errPriceNotEditable
		case "id", "origin", "created_at", "updated_at":
			// read-only, echoed back by clients editing a rendered item
		default:
			return nil, fmt.Errorf("unknown product field %q", key)
		}
	}
	return patch, nil
}

func applyStringPatch(patch *domain.Patch, key, value string) {
	switch key {
	case "title":
		patch.WithTitle(value)
	case "description":
		patch.WithDescription(value)
	case "brand":
		patch.WithBrand(value)
	case "category":
		patch.WithCategory(value)
	case "thumbnail":
		patch.WithThumbnail(value)
	}
}

func optionalString(fields map[string]*structpb.Value, key string) (string, error) {
	v, ok := fields[key]
	if !ok {
		return "", nil
	}
	str, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return str.StringValue, nil
}

func numberValue(key string, v *structpb.Value) (float64, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return n.NumberValue, nil
}

func integerValue(key string, v *structpb.Value) (int64, error) {
	f, err := numberValue(key, v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return int64(f), nil
}

// moneyValue accepts a number or a decimal string.
func moneyValue(key string, v *structpb.Value) (*domain.Money, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		if math.IsNaN(k.NumberValue) || math.IsInf(k.NumberValue, 0) {
			return nil, fmt.Errorf("%s must be a finite number", key)
		}
		m, err := domain.MoneyFromFloat(k.NumberValue)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return m, nil
	case *structpb.Value_StringValue:
		m, err := domain.ParseMoney(k.StringValue)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%s must be a number or a decimal string", key)
	}
}

// percentValue accepts a number or a decimal string in [0, 100].
func percentValue(key string, v *structpb.Value) (*domain.Percent, error) {
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		return domain.NewPercent(k.NumberValue)
	case *structpb.Value_StringValue:
		return domain.ParsePercent(k.StringValue)
	default:
		return nil, fmt.Errorf("%s must be a number or a decimal string", key)
	}
}
