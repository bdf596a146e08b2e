package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_Home(t *testing.T) {
	r := NewRecorder()
	r.SetText(ProductMsg, "Product created")
	r.RenderList(ProductList, []Item{{Text: "Chair - 10₫ - Hanoi", ProductID: "p1"}})
	r.RenderList(CartList, []Item{{Text: "<b>Lamp</b> - 5"}})
	r.Alert("Added to cart!")

	data := r.Data()
	data.SignedIn = true
	data.Location = "Hanoi"
	data.Locations = []string{"Hanoi", "Da Nang"}

	var buf bytes.Buffer
	require.NoError(t, Templates().ExecuteTemplate(&buf, "home.html", data))
	html := buf.String()

	assert.Contains(t, html, `<p id="product-msg">Product created</p>`)
	assert.Contains(t, html, `name="product_id" value="p1"`)
	assert.Contains(t, html, "&lt;b&gt;Lamp&lt;/b&gt; - 5")
	assert.Contains(t, html, "Added to cart!")
	assert.Contains(t, html, `<option value="Hanoi" selected>Hanoi</option>`)
	assert.Contains(t, html, "Sign out")
	assert.True(t, data.CartShown)
}

func TestTemplates_SignIn(t *testing.T) {
	r := NewRecorder()
	r.SetText(SignInMsg, "Invalid username or password")

	var buf bytes.Buffer
	require.NoError(t, Templates().ExecuteTemplate(&buf, "signin.html", r.Data()))
	assert.Contains(t, buf.String(), `<p id="signin-msg">Invalid username or password</p>`)
}
