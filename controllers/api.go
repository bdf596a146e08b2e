package controllers

import (
	"context"
	"errors"

	apperrors "marketplace-client/errors"
	"marketplace-client/models"
)

// MarketplaceAPI is the remote API the handlers drive.
// *clients.MarketplaceClient implements it.
type MarketplaceAPI interface {
	SignIn(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error)
	SignUp(ctx context.Context, creds models.Credentials) (*models.Message, error)
	CreateProduct(ctx context.Context, token string, input models.ProductInput) (*models.Message, error)
	SearchProducts(ctx context.Context, query, location string) ([]models.Product, error)
	AddToCart(ctx context.Context, token, productID string) error
	ViewCart(ctx context.Context, token string) ([]models.Product, error)
	Checkout(ctx context.Context, token string) (*models.Message, error)
}

// Prompts shown instead of calling the API when nobody is signed in
const (
	PromptSignIn    = "Please sign in first"
	PromptAddToCart = "Sign in before adding to the cart"
	PromptViewCart  = "Sign in before viewing the cart"
	PromptCheckout  = "Sign in before checking out"

	AddedToCart = "Added to cart!"
)

// apiMessage returns the server's text for err when the API answered with a
// non-success status. ok is false for transport failures.
func apiMessage(err error) (msg string, ok bool) {
	var apiErr *apperrors.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message, true
	}
	return "", false
}
