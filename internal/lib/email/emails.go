package email

import (
	"fmt"

	"github.com/deppfellow/villains-api/internal/model"
)

// SendVillainCreatedEmail tells to that a villain joined the catalogue.
func (c *Client) SendVillainCreatedEmail(to string, v model.Villain) error {
	return c.SendEmail(
		to,
		fmt.Sprintf("New villain: %s", v.Name),
		TemplateVillainCreated,
		map[string]string{
			"Name":  v.Name,
			"Movie": v.Movie,
			"Slug":  v.Slug,
		},
	)
}
