package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnauthenticated is returned when the server rejects the session token.
// The client has already cleared the session and run the OnExpired callback
// by the time callers see this error.
var ErrUnauthenticated = errors.New("unauthenticated")

// APIError is any non-2xx response other than an authentication failure.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

// Client calls the rebyuwer API, attaching the session token to every
// protected request. On a 401 it clears the session, marks it expired, and
// invokes OnExpired; there is no silent token refresh.
type Client struct {
	baseURL   string
	http      *http.Client
	session   *Session
	onExpired func(reason string)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithOnExpired registers a callback invoked when the server rejects the
// session token. The reason is the server's message ("token expired" or
// "token invalid").
func WithOnExpired(fn func(reason string)) Option {
	return func(c *Client) { c.onExpired = fn }
}

// New creates a Client bound to baseURL and session.
func New(baseURL string, session *Session, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type authPayload struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	User  *User  `json:"user,omitempty"`
}

// User is the API's user representation (password never present).
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CardSet is a set with its cards as returned by ListCardSets.
type CardSet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Cards []Card `json:"cards"`
}

// Card is a single flashcard.
type Card struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Register creates an account and stores the issued token in the session.
func (c *Client) Register(ctx context.Context, username, password, confirmPassword string) (*User, error) {
	body := map[string]string{
		"username":        username,
		"password":        password,
		"confirmPassword": confirmPassword,
	}
	var out authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &out, false); err != nil {
		return nil, err
	}
	c.session.Set(out.Token, out.Role)
	return out.User, nil
}

// Login authenticates and stores the issued token in the session.
func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	body := map[string]string{"username": username, "password": password}
	var out authPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &out, false); err != nil {
		return nil, err
	}
	c.session.Set(out.Token, out.Role)
	return out.User, nil
}

// Logout clears the session. The server keeps no session state, so this is
// purely client-side beyond the courtesy call.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, true)
	c.session.Clear(false)
	return err
}

// Me returns the authenticated user's own record.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodGet, "/user/me", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns all users; the server restricts this to admins.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, http.MethodGet, "/user", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCardSets returns the caller's sets with cards attached.
func (c *Client) ListCardSets(ctx context.Context) ([]CardSet, error) {
	var out []CardSet
	if err := c.do(ctx, http.MethodGet, "/cardSet", nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCardSet creates a new, empty set.
func (c *Client) CreateCardSet(ctx context.Context, name string) (*CardSet, error) {
	var out CardSet
	if err := c.do(ctx, http.MethodPost, "/cardSet", map[string]string{"name": name}, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// RenameCardSet changes a set's name.
func (c *Client) RenameCardSet(ctx context.Context, setID, name string) (*CardSet, error) {
	var out CardSet
	if err := c.do(ctx, http.MethodPut, "/cardSet/"+setID, map[string]string{"name": name}, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCardSet deletes a set and all of its cards.
func (c *Client) DeleteCardSet(ctx context.Context, setID string) error {
	return c.do(ctx, http.MethodDelete, "/cardSet/"+setID, nil, nil, true)
}

// ListCards returns the cards of a set the caller owns.
func (c *Client) ListCards(ctx context.Context, setID string) ([]Card, error) {
	var out []Card
	if err := c.do(ctx, http.MethodGet, "/card/"+setID, nil, &out, true); err != nil {
		return nil, err
	}
	return out, nil
}

// AddCard creates a card in a set.
func (c *Client) AddCard(ctx context.Context, setID, question, answer string) (*Card, error) {
	body := map[string]string{"question": question, "answer": answer}
	var out Card
	if err := c.do(ctx, http.MethodPost, "/card/"+setID, body, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// EditCard updates a card's question and answer.
func (c *Client) EditCard(ctx context.Context, setID, cardID, question, answer string) (*Card, error) {
	body := map[string]string{"question": question, "answer": answer}
	var out Card
	if err := c.do(ctx, http.MethodPut, "/card/"+setID+"/"+cardID, body, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCard removes a card from its set.
func (c *Client) DeleteCard(ctx context.Context, setID, cardID string) error {
	return c.do(ctx, http.MethodDelete, "/card/"+setID+"/"+cardID, nil, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, auth bool) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		reason := apiMessage(resp.Body)
		c.session.Clear(true)
		if c.onExpired != nil {
			c.onExpired(reason)
		}
		return fmt.Errorf("%w: %s", ErrUnauthenticated, reason)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: apiMessage(resp.Body)}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// apiMessage extracts the {"error": "..."} envelope, falling back to the
// raw body.
func apiMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var envelope struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
		return envelope.Error
	}
	return string(bytes.TrimSpace(raw))
}
