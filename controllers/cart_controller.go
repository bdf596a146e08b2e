package controllers

import (
	"context"
	"fmt"

	"marketplace-client/logger"
	"marketplace-client/session"
	"marketplace-client/view"

	"go.uber.org/zap"
)

type CartController struct {
	api  MarketplaceAPI
	view view.View
	seq  *Sequencer
}

func NewCartController(api MarketplaceAPI, v view.View, seq *Sequencer) *CartController {
	return &CartController{api: api, view: v, seq: seq}
}

// AddToCart puts a product in the cart and confirms. Only transport
// failures are reported; the API's answer is not inspected.
func (c *CartController) AddToCart(ctx context.Context, sess *session.Session, productID string) error {
	token, err := sess.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		c.view.Alert(PromptAddToCart)
		return nil
	}

	if err := c.api.AddToCart(ctx, token, productID); err != nil {
		msg, ok := apiMessage(err)
		if !ok {
			return err
		}
		logger.Warn(ctx, "add to cart rejected", zap.String("product_id", productID), zap.String("detail", msg))
	}
	c.view.Alert(AddedToCart)
	return nil
}

// ViewCart fetches the cart and renders its contents
func (c *CartController) ViewCart(ctx context.Context, sess *session.Session) error {
	token, err := sess.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		c.view.Alert(PromptViewCart)
		return nil
	}

	scope := "cart:" + sess.Key()
	gen := c.seq.Begin(scope)

	products, err := c.api.ViewCart(ctx, token)
	if err != nil {
		if msg, ok := apiMessage(err); ok {
			c.view.Alert(msg)
			return nil
		}
		return err
	}

	if !c.seq.Current(scope, gen) {
		logger.Debug(ctx, "dropping stale cart response")
		return nil
	}

	items := make([]view.Item, 0, len(products))
	for _, p := range products {
		items = append(items, view.Item{
			Text:      fmt.Sprintf("%s - %s", p.Name, p.DisplayPrice()),
			ProductID: p.ID,
		})
	}
	c.view.RenderList(view.CartList, items)
	return nil
}

// Checkout asks the API to check the cart out, shows its answer whatever it
// is, then refreshes the cart.
func (c *CartController) Checkout(ctx context.Context, sess *session.Session) error {
	token, err := sess.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		c.view.Alert(PromptCheckout)
		return nil
	}

	out, err := c.api.Checkout(ctx, token)
	if err != nil {
		msg, ok := apiMessage(err)
		if !ok {
			return err
		}
		c.view.Alert(msg)
	} else {
		c.view.Alert(out.Text())
	}

	return c.ViewCart(ctx, sess)
}
