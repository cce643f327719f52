package graph

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openmind-services/helpdesk-dashboard/pkg/util"
)

// LookupUserName resolves an opaque author reference to a display name via
// the user information list. Returns "" with a nil error when the record
// exists but carries no usable name field; any failure is a ResolutionError,
// which callers degrade to a placeholder instead of aborting the cycle.
func (c *Client) LookupUserName(ctx context.Context, ref string) (string, error) {
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return "", util.NewResolutionError("lookup unavailable", err)
	}
	userListID, err := c.UserInfoListID(ctx)
	if err != nil {
		return "", util.NewResolutionError("user info list unavailable", err)
	}

	endpoint := fmt.Sprintf("%s/sites/%s/lists/%s/items/%s?$expand=fields", c.cfg.BaseURL, siteID, userListID, ref)
	code, body, err := c.get(ctx, endpoint)
	if err != nil {
		return "", util.NewResolutionError("lookup request failed", err)
	}
	if !is2xx(code) {
		return "", util.NewResolutionError(fmt.Sprintf("lookup rejected with status %d", code), nil)
	}

	var item struct {
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(body, &item); err != nil {
		return "", util.NewResolutionError("malformed lookup response", err)
	}

	// Display name precedence mirrors what the user list actually populates.
	for _, field := range []string{"Title", "Name", "EMail"} {
		if name := stringField(item.Fields, field); name != "" {
			return name, nil
		}
	}
	return "", nil
}

func stringField(fields map[string]any, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}
	return ""
}
