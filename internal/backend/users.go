package backend

import (
	"context"
	"net/http"
)

// GetUser resolves one account record by id. The backend wraps the record
// in a "user" envelope on some deployments and returns it bare on others;
// both shapes are accepted.
func (c *Client) GetUser(ctx context.Context, userID string) (*RawUser, error) {
	var out struct {
		User *RawUser `json:"user"`
		RawUser
	}
	if err := c.doJSON(ctx, http.MethodGet, "/users/"+userID, nil, &out); err != nil {
		return nil, err
	}
	if out.User != nil {
		return out.User, nil
	}
	u := out.RawUser
	return &u, nil
}
