package search

import (
	"context"
	"strconv"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"

	"github.com/olivere/elastic/v7"
)

// ProductIndex is the full-text search index over the catalog. The catalog
// service falls back to SQL LIKE filtering when a search call fails.
type ProductIndex interface {
	Index(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	// Search returns matching product IDs, best match first.
	Search(ctx context.Context, query string, limit int) ([]uint, error)
}

type productDoc struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Tags        string  `json:"tags"`
	ShopID      uint    `json:"shop_id"`
	Price       float64 `json:"price"`
}

type elasticIndex struct {
	client *elastic.Client
	index  string
}

// NewElasticIndex connects to Elasticsearch. Sniffing is disabled so a
// single-node docker setup works out of the box.
func NewElasticIndex(url, index string) (ProductIndex, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
	)
	if err != nil {
		return nil, err
	}
	return &elasticIndex{client: client, index: index}, nil
}

func (e *elasticIndex) Index(ctx context.Context, product *models.Product) error {
	doc := productDoc{
		Name:        product.Name,
		Description: product.Description,
		Tags:        product.Tags,
		ShopID:      product.ShopID,
		Price:       product.Price,
	}
	_, err := e.client.Index().
		Index(e.index).
		Id(strconv.FormatUint(uint64(product.ID), 10)).
		BodyJson(doc).
		Do(ctx)
	return err
}

func (e *elasticIndex) Delete(ctx context.Context, id uint) error {
	_, err := e.client.Delete().
		Index(e.index).
		Id(strconv.FormatUint(uint64(id), 10)).
		Do(ctx)
	if elastic.IsNotFound(err) {
		return nil
	}
	return err
}

func (e *elasticIndex) Search(ctx context.Context, query string, limit int) ([]uint, error) {
	if limit <= 0 {
		limit = 50
	}
	res, err := e.client.Search().
		Index(e.index).
		Query(elastic.NewMultiMatchQuery(query, "name^2", "description", "tags")).
		Size(limit).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		id, err := strconv.ParseUint(hit.Id, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
