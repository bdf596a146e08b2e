package routes

import (
	"net/http"

	"marketplace-client/auth"
	"marketplace-client/controllers"
	"marketplace-client/logger"
	"marketplace-client/middleware"
	"marketplace-client/models"
	"marketplace-client/session"
	"marketplace-client/view"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	signInPage = "signin.html"
	homePage   = "home.html"
)

// Storefront serves the marketplace pages. Each request gets its own view;
// the handlers behind it are the ones the CLI drives.
type Storefront struct {
	api       controllers.MarketplaceAPI
	seq       *controllers.Sequencer
	locations []string
}

func NewStorefront(api controllers.MarketplaceAPI, locations []string) *Storefront {
	return &Storefront{
		api:       api,
		seq:       controllers.NewSequencer(),
		locations: locations,
	}
}

// pageState carries form values echoed back into the page. A zero status
// renders as 200.
type pageState struct {
	status   int
	query    string
	location string
}

type actionFunc func(c *gin.Context, h *controllers.Handlers, sess *session.Session, v view.View) (pageState, error)

// action runs fn against a fresh view and renders the result on page
func (s *Storefront) action(page string, fn actionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		rec := view.NewRecorder()
		h := controllers.NewHandlers(s.api, rec, s.seq)
		sess := middleware.Session(c)

		state, err := fn(c, h, sess, rec)
		if err != nil {
			_ = c.Error(err)
			logger.Error(c, "storefront action failed", err, zap.String("path", c.FullPath()))
			rec.Alert("The marketplace is unavailable, please try again")
			s.render(c, http.StatusBadGateway, page, rec, sess, state)
			return
		}

		if target := rec.Location(); target != "" {
			c.Redirect(http.StatusSeeOther, "/"+target+".html")
			return
		}
		status := state.status
		if status == 0 {
			status = http.StatusOK
		}
		s.render(c, status, page, rec, sess, state)
	}
}

func (s *Storefront) render(c *gin.Context, status int, page string, rec *view.Recorder, sess *session.Session, state pageState) {
	data := rec.Data()
	data.Query = state.query
	data.Location = state.location
	data.Locations = s.locations

	if claims := sess.Claims(c.Request.Context()); claims != nil {
		data.SignedIn = true
		data.UserID = auth.Subject(claims)
	} else if token, err := sess.Token(c.Request.Context()); err == nil && token != "" {
		// opaque tokens still count as signed in
		data.SignedIn = true
	}

	c.HTML(status, page, data)
}

// Index sends the browser to home when a token is stored, else to sign-in
func (s *Storefront) Index(c *gin.Context) {
	token, err := middleware.Session(c).Token(c.Request.Context())
	if err != nil {
		logger.Error(c, "failed to read session", err)
	}
	if token != "" {
		c.Redirect(http.StatusSeeOther, "/"+homePage)
		return
	}
	c.Redirect(http.StatusSeeOther, "/"+signInPage)
}

func (s *Storefront) SignInPage(c *gin.Context) {
	s.render(c, http.StatusOK, signInPage, view.NewRecorder(), middleware.Session(c), pageState{})
}

func (s *Storefront) HomePage(c *gin.Context) {
	s.render(c, http.StatusOK, homePage, view.NewRecorder(), middleware.Session(c), pageState{})
}

func (s *Storefront) SignIn() gin.HandlerFunc {
	return s.action(signInPage, func(c *gin.Context, h *controllers.Handlers, sess *session.Session, _ view.View) (pageState, error) {
		return pageState{}, h.Session.SignIn(c.Request.Context(), sess, c.PostForm("username"), c.PostForm("password"))
	})
}

func (s *Storefront) SignUp() gin.HandlerFunc {
	return s.action(signInPage, func(c *gin.Context, h *controllers.Handlers, sess *session.Session, _ view.View) (pageState, error) {
		return pageState{}, h.Session.SignUp(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	})
}

func (s *Storefront) SignOut() gin.HandlerFunc {
	return s.action(signInPage, func(c *gin.Context, h *controllers.Handlers, sess *session.Session, _ view.View) (pageState, error) {
		return pageState{}, h.Session.SignOut(c.Request.Context(), sess)
	})
}

func (s *Storefront) CreateProduct() gin.HandlerFunc {
	return s.action(homePage, func(c *gin.Context, h *controllers.Handlers, sess *session.Session, v view.View) (pageState, error) {
		var input models.ProductInput
		if err := c.ShouldBind(&input); err != nil {
			v.SetText(view.ProductMsg, "Invalid product: "+err.Error())
			return pageState{status: http.StatusBadRequest}, nil
		}
		return pageState{}, h.Catalog.CreateProduct(c.Request.Context(), sess, input)
	})
}

func (s *Storefront) SearchProducts() gin.HandlerFunc {
	return s.action(homePage, func(c *gin.Context, h *controllers.Handlers, sess *session.Session, _ view.View) (pageState, error) {
		state := pageState{query: c.Query("q"), location: c.Query("location")}
		return state, h.Catalog.SearchProducts(c.Request.Context(), sess, state.query, state.location)
	})
}

func (s *Storefront) AddToCart() gin.HandlerFunc {
	return s.action(homePage, func(c *gin.Context, h *controllers.Handlers, sess *session.Session, _ view.View) (pageState, error) {
		return pageState{}, h.Cart.AddToCart(c.Request.Context(), sess, c.PostForm("product_id"))
	})
}

func (s *Storefront) ViewCart() gin.HandlerFunc {
	return s.action(homePage, func(c *gin.Context, h *controllers.Handlers, sess *session.Session, _ view.View) (pageState, error) {
		return pageState{}, h.Cart.ViewCart(c.Request.Context(), sess)
	})
}

func (s *Storefront) Checkout() gin.HandlerFunc {
	return s.action(homePage, func(c *gin.Context, h *controllers.Handlers, sess *session.Session, _ view.View) (pageState, error) {
		return pageState{}, h.Cart.Checkout(c.Request.Context(), sess)
	})
}
