package panther

import "context"

// AlertsPage fetches one page of alerts for the given filter input, decoding
// the raw connection into out.
func (c *Client) AlertsPage(ctx context.Context, input map[string]interface{}, out interface{}) error {
	return c.RunGraphQL(ctx, alertsQuery, map[string]interface{}{"input": input}, out)
}

// AlertByID fetches a single alert. A nil result means the instance has no
// alert with that ID.
func (c *Client) AlertByID(ctx context.Context, alertID string) (map[string]interface{}, error) {
	var resp struct {
		Alert map[string]interface{} `json:"alert"`
	}
	if err := c.RunGraphQL(ctx, alertByIDQuery, map[string]interface{}{"id": alertID}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Alert) == 0 {
		return nil, nil
	}
	return resp.Alert, nil
}

// UpdateAlertStatus sets the status of the given alerts and returns their
// updated records.
func (c *Client) UpdateAlertStatus(ctx context.Context, alertIDs []string, status string) ([]map[string]interface{}, error) {
	var resp struct {
		UpdateAlertStatusByID struct {
			Alerts []map[string]interface{} `json:"alerts"`
		} `json:"updateAlertStatusById"`
	}
	vars := map[string]interface{}{
		"input": map[string]interface{}{
			"ids":    alertIDs,
			"status": status,
		},
	}
	if err := c.RunGraphQL(ctx, updateAlertStatusMutation, vars, &resp); err != nil {
		return nil, err
	}
	return resp.UpdateAlertStatusByID.Alerts, nil
}

// AddAlertComment attaches a comment to an alert and returns the created
// comment.
func (c *Client) AddAlertComment(ctx context.Context, alertID, body string) (map[string]interface{}, error) {
	var resp struct {
		CreateAlertComment struct {
			Comment map[string]interface{} `json:"comment"`
		} `json:"createAlertComment"`
	}
	vars := map[string]interface{}{
		"input": map[string]interface{}{
			"alertId": alertID,
			"body":    body,
		},
	}
	if err := c.RunGraphQL(ctx, addAlertCommentMutation, vars, &resp); err != nil {
		return nil, err
	}
	return resp.CreateAlertComment.Comment, nil
}

// UpdateAlertAssignee assigns the given alerts to a user and returns their
// updated records.
func (c *Client) UpdateAlertAssignee(ctx context.Context, alertIDs []string, assigneeID string) ([]map[string]interface{}, error) {
	var resp struct {
		UpdateAlertsAssigneeByID struct {
			Alerts []map[string]interface{} `json:"alerts"`
		} `json:"updateAlertsAssigneeById"`
	}
	vars := map[string]interface{}{
		"input": map[string]interface{}{
			"ids":        alertIDs,
			"assigneeId": assigneeID,
		},
	}
	if err := c.RunGraphQL(ctx, updateAlertsAssigneeMutation, vars, &resp); err != nil {
		return nil, err
	}
	return resp.UpdateAlertsAssigneeByID.Alerts, nil
}
