// Package view is where handlers put their results. Element and page names
// match the marketplace pages so both front ends share one vocabulary.
package view

import "context"

// Pages
const (
	PageHome   = "home"
	PageSignIn = "signin"
)

// Elements
const (
	SignInMsg   = "signin-msg"
	SignUpMsg   = "signup-msg"
	ProductMsg  = "product-msg"
	ProductList = "product-list"
	CartList    = "cart-list"
	SessionInfo = "session-info"
)

// Item is one rendered list entry. OnSelect is nil for entries that do
// nothing when chosen.
type Item struct {
	Text      string
	ProductID string
	OnSelect  func(ctx context.Context) error
}

// View receives handler output
type View interface {
	// SetText replaces the text of an element
	SetText(element, text string)
	// RenderList replaces the entries of a list element
	RenderList(element string, items []Item)
	// Alert shows a blocking message
	Alert(message string)
	// Navigate moves to another page
	Navigate(page string)
}
