package models

// Category is reference data expenses are filed under. A category without
// CreatedByUserID is global and visible to every user.
type Category struct {
	Base
	Name            string  `gorm:"not null"`
	Description     *string
	CreatedByUserID *string `gorm:"type:uuid;index"`
}

// CategoryView is the outward form of a category.
type CategoryView struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	CreatedByUserID *string `json:"created_by_user_id,omitempty"`
}

// ToView projects c for callers outside the store.
func (c *Category) ToView() *CategoryView {
	return &CategoryView{
		ID:              c.ID,
		Name:            c.Name,
		Description:     c.Description,
		CreatedByUserID: c.CreatedByUserID,
	}
}

// IsGlobal reports whether the category has no owner.
func (c *Category) IsGlobal() bool {
	return c.CreatedByUserID == nil
}
