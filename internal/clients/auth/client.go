package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/quoc48/expense-tracker/internal/model/customerr"
)

const (
	tokenPath      = "/auth/v1/token?grant_type=password"
	defaultTimeout = 10 * time.Second
)

type config interface {
	URL() string
	AnonKey() string
}

// Client signs users in against the hosted auth endpoint. The rest of the
// core only ever reads a user id and a liveness flag from the resulting
// session.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func New(cfg config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.URL(), "/"),
		anonKey: cfg.AnonKey(),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`

	expiresAt time.Time
}

func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshalling credentials")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "building sign-in request")
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "sign-in request")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading sign-in response")
	}
	if res.StatusCode != http.StatusOK {
		return nil, &customerr.RequestError{Status: res.StatusCode}
	}

	session := &Session{}
	if err = json.Unmarshal(body, session); err != nil {
		return nil, &customerr.ParseError{Err: err}
	}
	if session.AccessToken == "" {
		return nil, errors.New("sign-in response carries no access token")
	}
	session.expiresAt = time.Now().Add(time.Duration(session.ExpiresIn) * time.Second)
	return session, nil
}

// Token implements the bearer source the data store client expects.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.AccessToken
}

// UserID reports the authenticated user and whether the session is still
// live. An expired or empty session reads as "no current user".
func (s *Session) UserID() (uuid.UUID, bool) {
	if s == nil || s.AccessToken == "" {
		return uuid.Nil, false
	}
	if !s.expiresAt.IsZero() && time.Now().After(s.expiresAt) {
		return uuid.Nil, false
	}
	return s.User.ID, true
}
