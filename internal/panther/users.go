package panther

import "context"

// ListUsers returns all user accounts of the instance.
func (c *Client) ListUsers(ctx context.Context) ([]map[string]interface{}, error) {
	var resp struct {
		Users []map[string]interface{} `json:"users"`
	}
	if err := c.RunGraphQL(ctx, listUsersQuery, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}
