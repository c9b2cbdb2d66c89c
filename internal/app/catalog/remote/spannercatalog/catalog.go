package spannercatalog

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/invcat-service/internal/app/catalog/contracts"
	"github.com/light-bringer/invcat-service/internal/app/catalog/domain"
	"github.com/light-bringer/invcat-service/internal/models/m_product"
	"github.com/light-bringer/invcat-service/internal/pkg/committer"
	"github.com/light-bringer/invcat-service/internal/pkg/query"
)

// Catalog is a RemoteCatalog stored in Cloud Spanner.
type Catalog struct {
	client    *spanner.Client
	model     *m_product.Model
	committer *committer.Committer
}

var _ contracts.RemoteCatalog = (*Catalog)(nil)

// New creates a Spanner backed catalog.
func New(client *spanner.Client) *Catalog {
	return &Catalog{
		client:    client,
		model:     m_product.NewModel(),
		committer: committer.NewCommitter(client),
	}
}

// ListStatements builds the page query and the matching count query.
func ListStatements(q contracts.ListQuery) (page spanner.Statement, count spanner.Statement) {
	sel := query.From(m_product.TableName).
		Columns(m_product.Columns()...).
		Ascending(m_product.ProductID)
	if q.Term != "" {
		sel = sel.Where(query.ContainsAny(q.Term, m_product.SearchColumns()...))
	}
	return sel.Paged(q.Skip, q.Limit)
}

// List reads one page and the total from the same snapshot.
func (c *Catalog) List(ctx context.Context, q contracts.ListQuery) (*contracts.RemotePage, error) {
	pageStmt, countStmt := ListStatements(q)

	txn := c.client.ReadOnlyTransaction()
	defer txn.Close()

	var total int64
	countIter := txn.Query(ctx, countStmt)
	defer countIter.Stop()
	row, err := countIter.Next()
	if err != nil {
		return nil, contracts.RemoteError("count catalog products", err)
	}
	if err := row.Column(0, &total); err != nil {
		return nil, contracts.RemoteError("parse catalog count", err)
	}

	iter := txn.Query(ctx, pageStmt)
	defer iter.Stop()

	items := make([]*contracts.RawProduct, 0, q.Limit)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, contracts.RemoteError("list catalog products", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, contracts.RemoteError("parse catalog product", err)
		}
		raw, err := dataToRaw(&data)
		if err != nil {
			return nil, contracts.RemoteError("parse catalog product", err)
		}
		items = append(items, raw)
	}

	return &contracts.RemotePage{Items: items, Total: int(total)}, nil
}

// Update reads the row, writes only the changed columns and returns the merged product.
func (c *Catalog) Update(ctx context.Context, id int64, update *contracts.RemoteUpdate) (*contracts.RawProduct, error) {
	var merged *contracts.RawProduct

	err := c.committer.ApplyWithReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.Columns())
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return domain.ErrProductNotFound
			}
			return fmt.Errorf("failed to read product: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return fmt.Errorf("failed to parse product: %w", err)
		}
		raw, err := dataToRaw(&data)
		if err != nil {
			return err
		}
		update.ApplyTo(raw)
		merged = raw

		plan := committer.NewPlan()
		plan.Add(c.model.UpdateMut(id, updateColumns(update)))
		if plan.IsEmpty() {
			return nil
		}
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		return nil, contracts.RemoteError("update catalog product", err)
	}

	return merged, nil
}

// Delete removes a product.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	err := c.committer.ApplyWithReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		if _, err := txn.ReadRow(ctx, m_product.TableName, spanner.Key{id}, []string{m_product.ProductID}); err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return domain.ErrProductNotFound
			}
			return fmt.Errorf("failed to read product: %w", err)
		}
		return txn.BufferWrite([]*spanner.Mutation{c.model.DeleteMut(id)})
	})
	if err != nil {
		return contracts.RemoteError("delete catalog product", err)
	}
	return nil
}

// Seed inserts or replaces products in one commit.
func (c *Catalog) Seed(ctx context.Context, products []*contracts.RawProduct) error {
	plan := committer.NewPlan()
	for _, p := range products {
		plan.Add(c.model.InsertMut(rawToData(p)))
	}
	return c.committer.Apply(ctx, plan)
}

// updateColumns maps the set fields of an update to column values.
func updateColumns(u *contracts.RemoteUpdate) map[string]interface{} {
	updates := make(map[string]interface{})

	if u.Title != nil {
		updates[m_product.Title] = *u.Title
	}
	if u.Description != nil {
		updates[m_product.Description] = *u.Description
	}
	if u.Brand != nil {
		updates[m_product.Brand] = *u.Brand
	}
	if u.Category != nil {
		updates[m_product.Category] = *u.Category
	}
	if u.Thumbnail != nil {
		updates[m_product.Thumbnail] = *u.Thumbnail
	}
	if u.Price != nil {
		updates[m_product.Price] = u.Price.Rat()
	}
	if u.DiscountPercentage != nil {
		updates[m_product.DiscountPercent] = spanner.NullNumeric{Numeric: *u.DiscountPercentage.Rat(), Valid: true}
	}
	if u.Rating != nil {
		updates[m_product.Rating] = *u.Rating
	}
	if u.Stock != nil {
		updates[m_product.Stock] = *u.Stock
	}

	return updates
}

func dataToRaw(data *m_product.Data) (*contracts.RawProduct, error) {
	discount := domain.ZeroPercent()
	if data.DiscountPercent.Valid {
		var err error
		discount, err = domain.NewPercentFromRat(&data.DiscountPercent.Numeric)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", data.ProductID, err)
		}
	}

	return &contracts.RawProduct{
		ID: data.ProductID,
		Details: domain.Details{
			Title:       data.Title,
			Description: data.Description,
			Brand:       data.Brand,
			Category:    data.Category,
			Thumbnail:   data.Thumbnail,
			Rating:      data.Rating,
			Stock:       data.Stock,
		},
		Price:              domain.NewMoneyFromRat(&data.Price),
		DiscountPercentage: discount,
	}, nil
}

func rawToData(raw *contracts.RawProduct) *m_product.Data {
	data := &m_product.Data{
		ProductID:   raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Brand:       raw.Brand,
		Category:    raw.Category,
		Thumbnail:   raw.Thumbnail,
		Rating:      raw.Rating,
		Stock:       raw.Stock,
	}
	if raw.Price != nil {
		data.Price.Set(raw.Price.Rat())
	}
	if raw.DiscountPercentage != nil && !raw.DiscountPercentage.IsZero() {
		data.DiscountPercent = spanner.NullNumeric{Numeric: *raw.DiscountPercentage.Rat(), Valid: true}
	}
	return data
}
