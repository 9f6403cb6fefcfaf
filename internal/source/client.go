package source

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"time"

	resty "github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	utils "github.com/studycove/studytime-cron/internal/utils"
	models "github.com/studycove/studytime-cron/models"
)

// EventSource is the platform-integration boundary: it supplies each member's
// ordered enter/leave event log. The engine never persists events itself.
type EventSource interface {
	GetActiveMembers(since time.Time) ([]string, error)
	GetMemberEvents(memberID string, options *models.EventsOptions) ([]models.Event, error)
}

type HubClient struct {
	baseUrl    string
	httpClient *resty.Client
}

func NewHubClient(baseUrl string) *HubClient {
	httpClient := resty.New()
	httpClient.SetRetryCount(3).
		SetRetryWaitTime(2 * time.Second).
		SetRetryMaxWaitTime(30 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return r.StatusCode() == 429 || r.StatusCode() == 500 ||
				r.StatusCode() >= 502 && r.StatusCode() <= 504
		})
	return &HubClient{
		baseUrl:    baseUrl,
		httpClient: httpClient,
	}
}

// GetActiveMembers retrieves the IDs of members with session activity since
// the given instant. Returns an empty slice when nobody has been active.
func (c *HubClient) GetActiveMembers(since time.Time) ([]string, error) {
	url := c.baseUrl + "/members/active"

	params := map[string]string{
		"since": since.Format(time.RFC3339),
	}

	var memberIds []string
	if err := c.sendGetRequest(url, params, map[string]string{}, &memberIds); err != nil {
		return nil, err
	}

	return memberIds, nil
}

// GetMemberEvents retrieves one member's enter/leave events, sorted by
// creation time:
// - options.Since: only events at or after this instant
// - options.Until: only events before this instant
// If options is nil, the member's full retained log is returned.
func (c *HubClient) GetMemberEvents(memberID string, options *models.EventsOptions) ([]models.Event, error) {
	url := c.baseUrl + "/members/" + memberID + "/events"

	params := make(map[string]string)

	if options != nil {
		if !options.Since.IsZero() {
			params["since"] = options.Since.Format(time.RFC3339)
		}
		if !options.Until.IsZero() {
			params["until"] = options.Until.Format(time.RFC3339)
		}
	}

	var events []models.Event
	if err := c.sendGetRequest(url, params, map[string]string{}, &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (c *HubClient) sendGetRequest(
	url string,
	params map[string]string,
	headers map[string]string,
	v interface{},
) error {
	var defaultHeaders = map[string]string{
		"Content-Type": "application/json",
	}

	if headers == nil {
		headers = make(map[string]string)
	}

	maps.Copy(headers, defaultHeaders)
	fullUrl := url + "?" + utils.BuildQueryParams(params)

	logrus.Debug("Sending GET request on url: " + fullUrl +
		" with params: " + utils.BuildQueryParams(params))

	resp, err := c.httpClient.R().EnableTrace().
		SetHeaders(headers).
		Get(fullUrl)

	if err != nil {
		return err
	}

	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("sending GET request on url %s returned %d", fullUrl, resp.StatusCode())
	}

	if err := json.Unmarshal(resp.Body(), v); err != nil {
		return err
	}

	return nil
}
