// Package graph is the gateway to the remote record store: a SharePoint site
// reached through the Microsoft Graph list API. It owns the session-scoped
// site/list identifier cache and converts every remote failure into the
// engine's structured error kinds at this boundary.
package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/openmind-services/helpdesk-dashboard/internal/auth"
	"github.com/openmind-services/helpdesk-dashboard/internal/config"
	"github.com/openmind-services/helpdesk-dashboard/pkg/util"
)

// Client is the long-lived gateway instance. Site and list identifiers are
// resolved once and cached for the session; Reset clears them for test
// isolation or a site change.
type Client struct {
	cfg    config.GraphConfig
	tokens auth.TokenSource
	logger *zap.Logger

	mu             sync.Mutex
	siteID         string
	ticketsListID  string
	userInfoListID string
}

// NewClient builds the gateway around a token source.
func NewClient(cfg config.GraphConfig, tokens auth.TokenSource, logger *zap.Logger) *Client {
	return &Client{cfg: cfg, tokens: tokens, logger: logger}
}

// Reset drops the cached site and list identifiers.
func (c *Client) Reset() {
	c.mu.Lock()
	c.siteID = ""
	c.ticketsListID = ""
	c.userInfoListID = ""
	c.mu.Unlock()
}

// SiteID resolves and caches the site identifier for the configured
// hostname and site path.
func (c *Client) SiteID(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.siteID
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	endpoint := fmt.Sprintf("%s/sites/%s:%s", c.cfg.BaseURL, c.cfg.Hostname, c.cfg.SitePath)
	code, body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", util.NewRemoteReadError("failed to resolve site", 0, err)
	}
	if !is2xx(code) {
		return "", classifyRead(code, "failed to resolve site")
	}

	var site struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &site); err != nil {
		return "", util.NewRemoteReadError("malformed site response", code, err)
	}
	if site.ID == "" {
		return "", util.NewRemoteReadError("site response missing id", code, nil)
	}

	c.mu.Lock()
	c.siteID = site.ID
	c.mu.Unlock()
	return site.ID, nil
}

// TicketsListID resolves and caches the tickets list identifier by its
// display name.
func (c *Client) TicketsListID(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.ticketsListID
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	id, err := c.listIDByName(ctx, c.cfg.TicketsListName)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.ticketsListID = id
	c.mu.Unlock()
	return id, nil
}

// UserInfoListID resolves and caches the author lookup list identifier.
// A missing list is not cached, so a later cycle may find it.
func (c *Client) UserInfoListID(ctx context.Context) (string, error) {
	c.mu.Lock()
	cached := c.userInfoListID
	c.mu.Unlock()
	if cached != "" {
		return cached, nil
	}

	id, err := c.listIDByName(ctx, c.cfg.UserInfoListName)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.userInfoListID = id
	c.mu.Unlock()
	return id, nil
}

func (c *Client) listIDByName(ctx context.Context, displayName string) (string, error) {
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("$filter", fmt.Sprintf("displayName eq '%s'", displayName))
	endpoint := fmt.Sprintf("%s/sites/%s/lists?%s", c.cfg.BaseURL, siteID, query.Encode())

	code, body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", util.NewRemoteReadError("failed to resolve list "+displayName, 0, err)
	}
	if !is2xx(code) {
		return "", classifyRead(code, "failed to resolve list "+displayName)
	}

	var lists struct {
		Value []struct {
			ID string `json:"id"`
		} `json:"value"`
	}
	if err := json.Unmarshal(body, &lists); err != nil {
		return "", util.NewRemoteReadError("malformed list response", code, err)
	}
	if len(lists.Value) == 0 {
		return "", util.NewRemoteReadError("list not found: "+displayName, code, nil)
	}
	return lists.Value[0].ID, nil
}

// get performs an authorized GET. Returned errors cover token and transport
// failures only; status classification belongs to the caller.
func (c *Client) get(ctx context.Context, endpoint string) (int, []byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return 0, nil, err
	}
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	agent := fiber.Get(endpoint)
	agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	agent.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if timeout := c.cfg.RequestTimeout(); timeout > 0 {
		agent.Timeout(timeout)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return code, body, errors.Join(errs...)
	}
	return code, body, nil
}

// patch performs an authorized single-field PATCH with a JSON body.
func (c *Client) patch(ctx context.Context, endpoint string, payload any) (int, []byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return 0, nil, err
	}
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	agent := fiber.Patch(endpoint)
	agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
	agent.JSON(payload)
	if timeout := c.cfg.RequestTimeout(); timeout > 0 {
		agent.Timeout(timeout)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return code, body, errors.Join(errs...)
	}
	return code, body, nil
}

func is2xx(code int) bool {
	return code >= 200 && code < 300
}

func classifyRead(code int, message string) error {
	if util.IsAuthStatus(code) {
		return util.NewAuthError(message+": token rejected", code)
	}
	return util.NewRemoteReadError(message, code, nil)
}

func classifyWrite(code int, message string) error {
	if util.IsAuthStatus(code) {
		return util.NewAuthError(message+": token rejected", code)
	}
	return util.NewRemoteWriteError(message, code, nil)
}
