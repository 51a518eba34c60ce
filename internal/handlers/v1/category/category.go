package category

import (
	"github.com/carson-networks/finance-server/internal/service"
)

// Category is the API response model for a category.
type Category struct {
	ID        string  `json:"id" doc:"Category UUID"`
	UserID    *string `json:"userId" doc:"Owner UUID, null for shared defaults"`
	Name      string  `json:"name" doc:"Display name"`
	Kind      string  `json:"type" doc:"INCOME or EXPENSE"`
	IconCode  string  `json:"iconCode" doc:"Client icon identifier"`
	IsDeleted bool    `json:"isDeleted" doc:"Soft-delete marker"`
}

func fromService(c service.Category) Category {
	converted := Category{
		ID:        c.ID.String(),
		Name:      c.Name,
		Kind:      string(c.Kind),
		IconCode:  c.IconCode,
		IsDeleted: c.IsDeleted,
	}
	if c.UserID != nil {
		userID := c.UserID.String()
		converted.UserID = &userID
	}
	return converted
}

var bearerSecurity = []map[string][]string{{"bearer": {}}}
