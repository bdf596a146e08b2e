package controllers

import (
	"marketplace-client/view"
)

// Handlers groups the handlers bound to one view
type Handlers struct {
	Session *SessionController
	Catalog *CatalogController
	Cart    *CartController
}

// NewHandlers binds every handler to v. seq may be shared between Handlers
// built for different views of the same user; nil gets a private one.
func NewHandlers(api MarketplaceAPI, v view.View, seq *Sequencer) *Handlers {
	if seq == nil {
		seq = NewSequencer()
	}
	cart := NewCartController(api, v, seq)
	return &Handlers{
		Session: NewSessionController(api, v),
		Catalog: NewCatalogController(api, v, seq, cart),
		Cart:    cart,
	}
}
