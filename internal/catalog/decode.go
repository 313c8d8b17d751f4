// Package catalog reads and writes store catalogs in JSON form.
//
// A catalog document has two arrays. "promotions" declares named promotions;
// "products" declares products in listing order and may refer to a promotion
// by name:
//
//	{
//	  "promotions": [{"name": "30% off!", "type": "percent_off", "percent": 30}],
//	  "products": [
//	    {"name": "Windows License", "type": "unlimited", "price": 125, "promotion": "30% off!"},
//	    {"name": "Shipping", "type": "limited", "price": 10, "quantity": 250, "max_per_order": 1}
//	  ]
//	}
//
// A product without "type" is a standard product.
package catalog

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	pgzip "github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"

	"github.com/xenking/best-buy/db"
	"github.com/xenking/best-buy/internal/domain/domainerr"
	"github.com/xenking/best-buy/internal/domain/product"
	"github.com/xenking/best-buy/internal/domain/promotion"
)

// Catalog is a decoded catalog document.
type Catalog struct {
	Promotions []promotion.Promotion
	Products   []*product.Product
}

type rawPromotion struct {
	name       string
	kind       string
	percent    decimal.Decimal
	hasPercent bool
}

type rawProduct struct {
	name        string
	kind        string
	price       decimal.Decimal
	quantity    int
	maxPerOrder int
	promotion   string
}

// Default returns a fresh copy of the embedded default catalog.
func Default() (*Catalog, error) {
	c, err := Decode(db.DefaultCatalog)
	if err != nil {
		return nil, errors.Wrap(err, "decode default catalog")
	}
	return c, nil
}

// Load reads a catalog file. Files ending in ".gz" are decompressed first.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := pgzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "create gzip reader for %s", path)
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	c, err := Decode(buf.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return c, nil
}

// Decode parses a catalog document and builds its promotions and products.
// Construction failures unwrap to domainerr.ErrInvalidArgument.
func Decode(data []byte) (*Catalog, error) {
	var (
		promos   []rawPromotion
		products []rawProduct
	)

	d := jx.DecodeBytes(data)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "promotions":
			return d.Arr(func(d *jx.Decoder) error {
				p, err := decodePromotion(d)
				if err != nil {
					return errors.Wrapf(err, "promotion %d", len(promos)+1)
				}
				promos = append(promos, p)
				return nil
			})
		case "products":
			return d.Arr(func(d *jx.Decoder) error {
				p, err := decodeProduct(d)
				if err != nil {
					return errors.Wrapf(err, "product %d", len(products)+1)
				}
				products = append(products, p)
				return nil
			})
		default:
			return d.Skip()
		}
	}); err != nil {
		return nil, errors.Wrap(err, "parse catalog")
	}

	return build(promos, products)
}

func build(promos []rawPromotion, products []rawProduct) (*Catalog, error) {
	c := &Catalog{
		Promotions: make([]promotion.Promotion, 0, len(promos)),
		Products:   make([]*product.Product, 0, len(products)),
	}

	byName := make(map[string]promotion.Promotion, len(promos))
	for _, raw := range promos {
		if _, dup := byName[raw.name]; dup {
			return nil, errors.Errorf("duplicate promotion %q", raw.name)
		}
		if promotion.Kind(raw.kind) == promotion.KindPercentOff && !raw.hasPercent {
			return nil, errors.Wrapf(
				&domainerr.ArgumentError{Field: "percent", Reason: "required"},
				"promotion %q", raw.name,
			)
		}
		p, err := promotion.New(promotion.Rule{
			Kind:    promotion.Kind(raw.kind),
			Name:    raw.name,
			Percent: raw.percent,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "promotion %q", raw.name)
		}
		byName[raw.name] = p
		c.Promotions = append(c.Promotions, p)
	}

	for _, raw := range products {
		p, err := newProduct(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "product %q", raw.name)
		}
		if raw.promotion != "" {
			promo, ok := byName[raw.promotion]
			if !ok {
				return nil, errors.Errorf("product %q: unknown promotion %q", raw.name, raw.promotion)
			}
			p.SetPromotion(promo)
		}
		c.Products = append(c.Products, p)
	}

	return c, nil
}

func newProduct(raw rawProduct) (*product.Product, error) {
	switch product.Kind(raw.kind) {
	case "", product.KindStandard:
		return product.NewStandard(raw.name, raw.price, raw.quantity)
	case product.KindUnlimited:
		return product.NewUnlimited(raw.name, raw.price)
	case product.KindLimited:
		return product.NewLimited(raw.name, raw.price, raw.quantity, raw.maxPerOrder)
	default:
		return nil, errors.Errorf("unsupported product type %q", raw.kind)
	}
}

func decodePromotion(d *jx.Decoder) (rawPromotion, error) {
	var p rawPromotion
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			p.name, err = d.Str()
		case "type":
			p.kind, err = d.Str()
		case "percent":
			p.percent, err = decodeDecimal(d)
			p.hasPercent = true
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	})
	return p, err
}

func decodeProduct(d *jx.Decoder) (rawProduct, error) {
	var p rawProduct
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			p.name, err = d.Str()
		case "type":
			p.kind, err = d.Str()
		case "price":
			p.price, err = decodeDecimal(d)
		case "quantity":
			p.quantity, err = d.Int()
		case "max_per_order":
			p.maxPerOrder, err = d.Int()
		case "promotion":
			p.promotion, err = d.Str()
		default:
			err = d.Skip()
		}
		if err != nil {
			return errors.Wrapf(err, "field %q", key)
		}
		return nil
	})
	return p, err
}

// decodeDecimal accepts both JSON numbers and numeric strings.
func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	n, err := d.Num()
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(strings.Trim(string(n), `"`))
}
