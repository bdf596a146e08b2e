package controllers

import (
	"context"
	"fmt"

	"marketplace-client/logger"
	"marketplace-client/models"
	"marketplace-client/session"
	"marketplace-client/view"

	"go.uber.org/zap"
)

type CatalogController struct {
	api  MarketplaceAPI
	view view.View
	seq  *Sequencer
	cart *CartController
}

func NewCatalogController(api MarketplaceAPI, v view.View, seq *Sequencer, cart *CartController) *CatalogController {
	return &CatalogController{api: api, view: v, seq: seq, cart: cart}
}

// CreateProduct posts a new listing for the signed-in user and shows the
// server's answer.
func (c *CatalogController) CreateProduct(ctx context.Context, sess *session.Session, input models.ProductInput) error {
	token, err := sess.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		c.view.Alert(PromptSignIn)
		return nil
	}

	out, err := c.api.CreateProduct(ctx, token, input)
	if err != nil {
		if msg, ok := apiMessage(err); ok {
			c.view.SetText(view.ProductMsg, msg)
			return nil
		}
		return err
	}

	text := out.Text()
	if out.ID != "" {
		text = fmt.Sprintf("%s (id %s)", text, out.ID)
	}
	c.view.SetText(view.ProductMsg, text)
	return nil
}

// SearchProducts replaces the product list with the matches for query in
// location. Choosing an entry adds that product to the cart. A response that
// arrives after a newer search has started is dropped.
func (c *CatalogController) SearchProducts(ctx context.Context, sess *session.Session, query, location string) error {
	scope := "search:" + sess.Key()
	gen := c.seq.Begin(scope)

	products, err := c.api.SearchProducts(ctx, query, location)
	if err != nil {
		if msg, ok := apiMessage(err); ok {
			c.view.Alert(msg)
			return nil
		}
		return err
	}

	if !c.seq.Current(scope, gen) {
		logger.Debug(ctx, "dropping stale search response", zap.String("query", query), zap.String("location", location))
		return nil
	}

	items := make([]view.Item, 0, len(products))
	for _, p := range products {
		productID := p.ID
		items = append(items, view.Item{
			Text:      fmt.Sprintf("%s - %s₫ - %s", p.Name, p.DisplayPrice(), p.Location),
			ProductID: productID,
			OnSelect: func(ctx context.Context) error {
				return c.cart.AddToCart(ctx, sess, productID)
			},
		})
	}
	c.view.RenderList(view.ProductList, items)
	return nil
}
