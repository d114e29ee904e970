// Package client is the hosted-backend implementation of chat.Service. It
// talks to a running clackd over HTTP and maps wire error codes back onto the
// chat domain errors, so the TUI works identically in local and remote mode.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/clack-chat/clack/internal/api"
	"github.com/clack-chat/clack/internal/chat"
)

// codeToErr maps wire error codes back to the chat sentinels.
var codeToErr = map[string]error{
	api.CodeValidation:         chat.ErrValidation,
	api.CodePasswordMismatch:   chat.ErrPasswordMismatch,
	api.CodeDuplicateUsername:  chat.ErrDuplicateUsername,
	api.CodeInvalidCredentials: chat.ErrInvalidCredentials,
	api.CodeSelfReference:      chat.ErrSelfReference,
	api.CodeUnknownUser:        chat.ErrUnknownUser,
	api.CodeAlreadyContact:     chat.ErrAlreadyContact,
	api.CodeEmptyContent:       chat.ErrEmptyContent,
	api.CodeUnauthorized:       chat.ErrInvalidCredentials,
}

// Client implements chat.Service against a clackd HTTP endpoint. The session
// and bearer token live in memory only; a new process logs in again.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	token   string
	session *chat.Session
}

// New creates a client for the daemon at baseURL (for example
// "http://127.0.0.1:7465").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// do performs one request. A non-2xx response is decoded into its domain
// error; transport failures surface as ErrBackendUnavailable.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", chat.ErrBackendUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		var wire api.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
			return fmt.Errorf("%w: status %d", chat.ErrBackendUnavailable, resp.StatusCode)
		}
		if sentinel, ok := codeToErr[wire.Code]; ok {
			return sentinel
		}
		return fmt.Errorf("%w: %s", chat.ErrBackendUnavailable, wire.Message)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return fmt.Errorf("%w: %v", chat.ErrBackendUnavailable, err)
		}
	}
	return nil
}

// authenticate stores the minted token and session from a register or login
// response.
func (c *Client) authenticate(resp api.AuthResponse) *chat.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = resp.Token
	c.session = &chat.Session{Username: resp.Username}
	return c.session
}

func (c *Client) Register(ctx context.Context, username, password, confirm string) (*chat.Session, error) {
	var resp api.AuthResponse
	err := c.do(ctx, http.MethodPost, "/v1/register", api.RegisterRequest{
		Username:        username,
		Password:        password,
		PasswordConfirm: confirm,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return c.authenticate(resp), nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*chat.Session, error) {
	var resp api.AuthResponse
	err := c.do(ctx, http.MethodPost, "/v1/login", api.LoginRequest{
		Username: username,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return c.authenticate(resp), nil
}

func (c *Client) CurrentSession(ctx context.Context) (*chat.Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session, nil
}

func (c *Client) Logout(ctx context.Context, s *chat.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.session = nil
	return nil
}

func (c *Client) ListContacts(ctx context.Context, owner string) ([]chat.Contact, error) {
	var resp []api.ContactResponse
	if err := c.do(ctx, http.MethodGet, "/v1/contacts", nil, &resp); err != nil {
		return nil, err
	}
	contacts := make([]chat.Contact, 0, len(resp))
	for _, ct := range resp {
		contacts = append(contacts, chat.Contact{Username: ct.Username, Unread: ct.Unread})
	}
	return contacts, nil
}

func (c *Client) AddContact(ctx context.Context, owner, candidate string) error {
	return c.do(ctx, http.MethodPost, "/v1/contacts", api.AddContactRequest{
		Username: candidate,
	}, nil)
}

// counterpartOf picks whichever of the pair is not the active session user.
// The server always resolves the caller's side from the bearer token.
func (c *Client) counterpartOf(userA, userB string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session != nil && userA == c.session.Username {
		return userB
	}
	return userA
}

func (c *Client) Messages(ctx context.Context, userA, userB string) ([]chat.Message, error) {
	other := c.counterpartOf(userA, userB)
	var resp []api.MessageResponse
	if err := c.do(ctx, http.MethodGet, "/v1/messages/"+url.PathEscape(other), nil, &resp); err != nil {
		return nil, err
	}
	msgs := make([]chat.Message, 0, len(resp))
	for _, m := range resp {
		msgs = append(msgs, chat.Message{
			ID:        m.ID,
			Sender:    m.Sender,
			Content:   m.Content,
			Timestamp: m.Timestamp,
		})
	}
	return msgs, nil
}

func (c *Client) Send(ctx context.Context, sender, recipient, text string) (*chat.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, chat.ErrEmptyContent
	}
	var resp api.MessageResponse
	err := c.do(ctx, http.MethodPost, "/v1/messages/"+url.PathEscape(recipient), api.SendRequest{
		Content: text,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &chat.Message{
		ID:        resp.ID,
		Sender:    resp.Sender,
		Content:   resp.Content,
		Timestamp: resp.Timestamp,
	}, nil
}

func (c *Client) MarkRead(ctx context.Context, viewer, counterpart string) error {
	return c.do(ctx, http.MethodPost, "/v1/messages/"+url.PathEscape(counterpart)+"/read", nil, nil)
}

func (c *Client) UnreadCount(ctx context.Context, viewer, counterpart string) (int, error) {
	var resp api.UnreadResponse
	if err := c.do(ctx, http.MethodGet, "/v1/messages/"+url.PathEscape(counterpart)+"/unread", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Unread, nil
}

// Transcript renders the plain-text form of the pair's log. The server keeps
// no text mirror, so the client renders it from the fetched log.
func (c *Client) Transcript(ctx context.Context, userA, userB string) (string, error) {
	msgs, err := c.Messages(ctx, userA, userB)
	if err != nil {
		return "", err
	}
	return chat.RenderTranscript(msgs), nil
}

// Health fetches the daemon's health report. Used by clackctl status.
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

var _ chat.Service = (*Client)(nil)
