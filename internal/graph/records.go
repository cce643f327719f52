package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/openmind-services/helpdesk-dashboard/pkg/util"
)

// RawRecord is one list item as the store serializes it: an opaque id, the
// item-level timestamps, and the drift-prone field map the normalizer reads.
type RawRecord struct {
	ID                   string         `json:"id"`
	CreatedDateTime      string         `json:"createdDateTime"`
	LastModifiedDateTime string         `json:"lastModifiedDateTime"`
	Fields               map[string]any `json:"fields"`
}

type listItemsResponse struct {
	Value    []RawRecord `json:"value"`
	NextLink string      `json:"@odata.nextLink"`
}

// FetchAll retrieves the full record snapshot with fields expanded. The
// expected volume fits one page; a continuation link in the response means
// the page size no longer covers the list and is treated as an error rather
// than silent data loss.
func (c *Client) FetchAll(ctx context.Context) ([]RawRecord, error) {
	listID, err := c.TicketsListID(ctx)
	if err != nil {
		return nil, err
	}
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("$expand", "fields")
	query.Set("$top", strconv.Itoa(c.cfg.PageSize))
	endpoint := fmt.Sprintf("%s/sites/%s/lists/%s/items?%s", c.cfg.BaseURL, siteID, listID, query.Encode())

	code, body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, util.NewRemoteReadError("failed to fetch tickets", 0, err)
	}
	if !is2xx(code) {
		return nil, classifyRead(code, "failed to fetch tickets")
	}

	var items listItemsResponse
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, util.NewRemoteReadError("malformed ticket list response", code, err)
	}
	if items.NextLink != "" {
		return nil, util.NewRemoteReadError(
			fmt.Sprintf("ticket list truncated at %d items, raise GRAPH_PAGE_SIZE", len(items.Value)), code, nil)
	}

	c.logger.Debug("fetched ticket records", zap.Int("count", len(items.Value)))
	return items.Value, nil
}

// PatchStatus updates the status field of one record. No retry; failure is
// surfaced to the caller.
func (c *Client) PatchStatus(ctx context.Context, id, status string) error {
	return c.patchField(ctx, id, map[string]string{"Status": status}, "status")
}

// PatchStatusDetails updates the free-text status remark of one record.
func (c *Client) PatchStatusDetails(ctx context.Context, id, details string) error {
	return c.patchField(ctx, id, map[string]string{"StatusDetails": details}, "status details")
}

func (c *Client) patchField(ctx context.Context, id string, payload map[string]string, what string) error {
	listID, err := c.TicketsListID(ctx)
	if err != nil {
		return err
	}
	siteID, err := c.SiteID(ctx)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/sites/%s/lists/%s/items/%s/fields", c.cfg.BaseURL, siteID, listID, id)
	code, _, err := c.patch(ctx, endpoint, payload)
	if err != nil {
		return util.NewRemoteWriteError("failed to update "+what, 0, err)
	}
	if !is2xx(code) {
		return classifyWrite(code, "failed to update "+what)
	}

	c.logger.Info("updated ticket field", zap.String("ticket_id", id), zap.String("field", what))
	return nil
}
