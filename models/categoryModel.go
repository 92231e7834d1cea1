package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func GetCategories(db *gorm.DB) ([]Category, error) {
	var categories []Category
	result := db.Order("name").Find(&categories)
	return categories, result.Error
}

func FindCategoryByID(db *gorm.DB, id uint) (Category, error) {
	var category Category
	result := db.First(&category, id)
	return category, result.Error
}

func CreateCategory(db *gorm.DB, category *Category) error {
	return db.Create(category).Error
}

func UpdateCategory(db *gorm.DB, id uint, category Category) error {
	updates := map[string]any{
		"name":        category.Name,
		"description": category.Description,
	}
	// An empty image means "keep the current one".
	if category.Image != "" {
		updates["image"] = category.Image
	}
	return db.Model(&Category{}).Where("id = ?", id).Updates(updates).Error
}

func DeleteCategory(db *gorm.DB, id uint) error {
	return db.Delete(&Category{}, id).Error
}
