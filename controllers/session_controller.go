package controllers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace-client/auth"
	"marketplace-client/logger"
	"marketplace-client/models"
	"marketplace-client/session"
	"marketplace-client/view"

	"go.uber.org/zap"
)

// ErrNoToken is returned by SignIn when the API answered success without a token
var ErrNoToken = errors.New("sign-in response carried no access token")

type SessionController struct {
	api  MarketplaceAPI
	view view.View
}

func NewSessionController(api MarketplaceAPI, v view.View) *SessionController {
	return &SessionController{api: api, view: v}
}

// SignIn exchanges credentials for a token. On success the token is stored
// and the view moves to the home page; on failure the server's detail is
// shown and the stored token is left as it was.
func (s *SessionController) SignIn(ctx context.Context, sess *session.Session, username, password string) error {
	out, err := s.api.SignIn(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		if msg, ok := apiMessage(err); ok {
			s.view.SetText(view.SignInMsg, msg)
			return nil
		}
		return err
	}
	if out.AccessToken == "" {
		return ErrNoToken
	}

	if err := sess.Save(ctx, out.AccessToken); err != nil {
		return err
	}
	logger.Info(ctx, "signed in", zap.String("user_id", auth.Subject(auth.DecodeToken(out.AccessToken))))
	s.view.Navigate(view.PageHome)
	return nil
}

// SignUp registers an account and shows the server's answer. It does not
// sign in.
func (s *SessionController) SignUp(ctx context.Context, username, password string) error {
	out, err := s.api.SignUp(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		if msg, ok := apiMessage(err); ok {
			s.view.SetText(view.SignUpMsg, msg)
			return nil
		}
		return err
	}
	s.view.SetText(view.SignUpMsg, out.Text())
	return nil
}

// SignOut forgets the token and moves to the sign-in page
func (s *SessionController) SignOut(ctx context.Context, sess *session.Session) error {
	if err := sess.Clear(ctx); err != nil {
		return err
	}
	s.view.Navigate(view.PageSignIn)
	return nil
}

// WhoAmI shows who the stored token was issued to and when it expires.
// Nothing is enforced: an expired token is still sent until the server
// rejects it.
func (s *SessionController) WhoAmI(ctx context.Context, sess *session.Session) error {
	token, err := sess.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		s.view.Alert(PromptSignIn)
		return nil
	}

	claims := auth.DecodeToken(token)
	if claims == nil {
		s.view.SetText(view.SessionInfo, "stored token cannot be decoded")
		return nil
	}

	text := "user " + auth.Subject(claims)
	if exp, ok := auth.ExpiresAt(claims); ok {
		state := "expires"
		if exp.Before(time.Now()) {
			state = "expired"
		}
		text += fmt.Sprintf(", %s %s", state, exp.Local().Format(time.RFC1123))
	}
	s.view.SetText(view.SessionInfo, text)
	return nil
}
