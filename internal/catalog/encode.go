package catalog

import (
	"github.com/go-faster/jx"

	"github.com/xenking/best-buy/internal/domain/product"
	"github.com/xenking/best-buy/internal/domain/promotion"
)

// Encode writes products in the format read by Decode. Promotions are
// emitted once each, in order of first use; products sharing a promotion
// keep sharing it after a round trip.
func Encode(products []*product.Product) []byte {
	var promos []promotion.Promotion
	seen := make(map[promotion.Promotion]bool)
	for _, p := range products {
		if promo := p.Promotion(); promo != nil && !seen[promo] {
			seen[promo] = true
			promos = append(promos, promo)
		}
	}

	e := jx.GetEncoder()
	defer jx.PutEncoder(e)
	e.SetIdent(2)

	e.Obj(func(e *jx.Encoder) {
		e.Field("promotions", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, promo := range promos {
					encodePromotion(e, promo)
				}
			})
		})
		e.Field("products", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, p := range products {
					encodeProduct(e, p)
				}
			})
		})
	})

	out := make([]byte, len(e.Bytes()))
	copy(out, e.Bytes())
	return out
}

func encodePromotion(e *jx.Encoder, p promotion.Promotion) {
	rule := promotion.RuleOf(p)
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(rule.Name) })
		e.Field("type", func(e *jx.Encoder) { e.Str(string(rule.Kind)) })
		if rule.Kind == promotion.KindPercentOff {
			e.Field("percent", func(e *jx.Encoder) { e.Num(jx.Num(rule.Percent.String())) })
		}
	})
}

func encodeProduct(e *jx.Encoder, p *product.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name()) })
		e.Field("type", func(e *jx.Encoder) { e.Str(string(p.Kind())) })
		e.Field("price", func(e *jx.Encoder) { e.Num(jx.Num(p.Price().String())) })
		if p.Tracked() {
			e.Field("quantity", func(e *jx.Encoder) { e.Int(p.Quantity()) })
		}
		if p.Kind() == product.KindLimited {
			e.Field("max_per_order", func(e *jx.Encoder) { e.Int(p.MaxPerOrder()) })
		}
		if promo := p.Promotion(); promo != nil {
			e.Field("promotion", func(e *jx.Encoder) { e.Str(promo.Name()) })
		}
	})
}
