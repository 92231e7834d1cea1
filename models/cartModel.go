package models

import (
	"errors"

	"gorm.io/gorm"
)

type CartItem struct {
	gorm.Model
	UserID     uint `json:"user_id"`
	MenuItemID uint `json:"menu_item_id"`
	Quantity   int  `json:"quantity"`
}

// CartLine is a cart item joined with the current menu-item data. Subtotal is
// computed from the live price; the snapshot only happens at order time.
type CartLine struct {
	ID         uint    `json:"id"`
	UserID     uint    `json:"user_id"`
	MenuItemID uint    `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Image      string  `json:"image"`
	Subtotal   float64 `json:"subtotal"`
}

func GetCartByUserID(db *gorm.DB, userID uint) ([]CartLine, error) {
	var lines []CartLine
	result := db.Table("cart_items").
		Select(`cart_items.id, cart_items.user_id, cart_items.menu_item_id,
			cart_items.quantity, menu_items.name, menu_items.price, menu_items.image,
			menu_items.price * cart_items.quantity AS subtotal`).
		Joins("JOIN menu_items ON cart_items.menu_item_id = menu_items.id").
		Where("cart_items.user_id = ? AND cart_items.deleted_at IS NULL", userID).
		Order("cart_items.created_at DESC").
		Scan(&lines)
	return lines, result.Error
}

func FindCartItemByID(db *gorm.DB, id uint) (CartItem, error) {
	var item CartItem
	result := db.First(&item, id)
	return item, result.Error
}

// AddToCart merges additively: adding an item already in the cart bumps the
// existing line's quantity instead of inserting a second row.
func AddToCart(db *gorm.DB, userID, menuItemID uint, quantity int) error {
	var existing CartItem
	err := db.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).First(&existing).Error
	if err == nil {
		return db.Model(&existing).Update("quantity", existing.Quantity+quantity).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	item := CartItem{UserID: userID, MenuItemID: menuItemID, Quantity: quantity}
	return db.Create(&item).Error
}

// UpdateCartQuantity deletes the line when the new quantity is zero or
// negative; a non-positive quantity never persists.
func UpdateCartQuantity(db *gorm.DB, id uint, quantity int) error {
	if quantity <= 0 {
		return RemoveCartItem(db, id)
	}
	return db.Model(&CartItem{}).Where("id = ?", id).Update("quantity", quantity).Error
}

func RemoveCartItem(db *gorm.DB, id uint) error {
	return db.Delete(&CartItem{}, id).Error
}

func ClearCart(db *gorm.DB, userID uint) error {
	return db.Where("user_id = ?", userID).Delete(&CartItem{}).Error
}
