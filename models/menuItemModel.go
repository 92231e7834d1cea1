package models

import "gorm.io/gorm"

type MenuItem struct {
	gorm.Model
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	CategoryID  uint    `json:"category_id"`
	Image       string  `json:"image"`
	Available   bool    `json:"available" gorm:"default:true"`
}

// MenuItemRow is a menu item joined with its category name for listings.
type MenuItemRow struct {
	MenuItem
	CategoryName string `json:"category_name"`
}

func GetMenuItems(db *gorm.DB, includeUnavailable bool) ([]MenuItemRow, error) {
	query := db.Table("menu_items").
		Select("menu_items.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON menu_items.category_id = categories.id").
		Where("menu_items.deleted_at IS NULL")
	if !includeUnavailable {
		query = query.Where("menu_items.available = ?", true)
	}

	var rows []MenuItemRow
	result := query.Order("categories.name, menu_items.name").Scan(&rows)
	return rows, result.Error
}

func FindMenuItemByID(db *gorm.DB, id uint) (MenuItemRow, error) {
	var row MenuItemRow
	result := db.Table("menu_items").
		Select("menu_items.*, categories.name AS category_name").
		Joins("LEFT JOIN categories ON menu_items.category_id = categories.id").
		Where("menu_items.id = ? AND menu_items.deleted_at IS NULL", id).
		Take(&row)
	return row, result.Error
}

func CreateMenuItem(db *gorm.DB, item *MenuItem) error {
	return db.Create(item).Error
}

func UpdateMenuItem(db *gorm.DB, id uint, item MenuItem) error {
	updates := map[string]any{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"category_id": item.CategoryID,
		"available":   item.Available,
	}
	if item.Image != "" {
		updates["image"] = item.Image
	}
	return db.Model(&MenuItem{}).Where("id = ?", id).Updates(updates).Error
}

func UpdateMenuItemImage(db *gorm.DB, id uint, imageURL string) error {
	return db.Model(&MenuItem{}).Where("id = ?", id).Update("image", imageURL).Error
}

func DeleteMenuItem(db *gorm.DB, id uint) error {
	return db.Delete(&MenuItem{}, id).Error
}
