package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// createdTimeLayout is the timestamp format the lead ads API expects
// for created-time filters.
const createdTimeLayout = "2006-01-02 15:04:05"

// Lead is a single lead collected by a lead ads form.
type Lead struct {
	ID          int64  `json:"id"`
	CreatedTime string `json:"created_time"`
	CampaignID  int64  `json:"campaign_id"`
	BannerID    int64  `json:"banner_id"`
}

// LeadList is a page of leads.
type LeadList struct {
	Count  int    `json:"count"`
	Offset int    `json:"offset"`
	Items  []Lead `json:"items"`
}

// LeadFilter narrows an OKLeads listing. The zero value applies no
// filters; the server default page size is 20, maximum 50.
type LeadFilter struct {
	Limit  int
	Offset int

	CreatedBefore    time.Time // strictly before
	CreatedAfter     time.Time // strictly after
	CreatedNotAfter  time.Time // before or at
	CreatedNotBefore time.Time // at or after

	FromCampaigns []int64
	FromBanners   []int64
}

func (f *LeadFilter) values() url.Values {
	params := url.Values{}
	if f == nil {
		return params
	}

	if f.Limit > 0 {
		params.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		params.Set("offset", strconv.Itoa(f.Offset))
	}

	setTime := func(key string, value time.Time) {
		if !value.IsZero() {
			params.Set(key, value.Format(createdTimeLayout))
		}
	}
	setTime("_created_time__lt", f.CreatedBefore)
	setTime("_created_time__gt", f.CreatedAfter)
	setTime("_created_time__lte", f.CreatedNotAfter)
	setTime("_created_time__gte", f.CreatedNotBefore)

	setIDs := func(singleKey, listKey string, ids []int64) {
		switch len(ids) {
		case 0:
		case 1:
			params.Set(singleKey, strconv.FormatInt(ids[0], 10))
		default:
			joined := make([]string, len(ids))
			for i, id := range ids {
				joined[i] = strconv.FormatInt(id, 10)
			}
			params.Set(listKey, strings.Join(joined, ","))
		}
	}
	setIDs("_campaign_id", "_campaign_id__in", f.FromCampaigns)
	setIDs("_banner_id", "_banner_id__in", f.FromBanners)

	return params
}

// OKLeads lists the leads collected by an Odnoklassniki lead ads form.
func (c *Client) OKLeads(ctx context.Context, formID string, filter *LeadFilter) (*LeadList, error) {
	resource := fmt.Sprintf("v2/ok/lead_ads/%s.json", url.PathEscape(formID))

	var list LeadList
	if err := c.Get(ctx, resource, filter.values(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}
