package query

import (
	"github.com/catalog-dash-poc-v1/client/internal/catalog"
	"github.com/catalog-dash-poc-v1/client/internal/mutation"
	logx "github.com/catalog-dash-poc-v1/client/pkg/logger"
)

// Apply consumes a cache-update event from the mutation layer. The whole
// patch happens under one lock, so every cached page reflects the event
// before any reader sees it.
//
// Created: the new record is prepended to every cached page and every total
// is incremented, whatever filter key the page was cached under. Updated: the
// record replaces any entry with the same id; pages without the id and all
// totals stay untouched.
func (c *PageCache) Apply(ev mutation.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch ev.Kind {
	case mutation.EventCreated:
		for key, page := range c.pages {
			products := make([]catalog.Product, 0, len(page.Products)+1)
			products = append(products, ev.Product)
			products = append(products, page.Products...)
			page.Products = products
			page.Total++
			c.pages[key] = page
		}
	case mutation.EventUpdated:
		for key, page := range c.pages {
			replaced := false
			for i := range page.Products {
				if page.Products[i].ID == ev.Product.ID {
					if !replaced {
						products := make([]catalog.Product, len(page.Products))
						copy(products, page.Products)
						page.Products = products
						replaced = true
					}
					page.Products[i] = ev.Product
				}
			}
			if replaced {
				c.pages[key] = page
			}
		}
	default:
		logx.Warn().Str("kind", ev.Kind.String()).Msg("ignoring unknown cache-update event")
	}
}

var _ mutation.Patcher = (*PageCache)(nil)
