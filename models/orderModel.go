package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

// statusFlow enforces the forward-only lifecycle. Cancellation is reachable
// from every non-terminal state; delivered and cancelled are terminal.
var statusFlow = map[string][]string{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderDelivered, OrderCancelled},
	OrderDelivered: {},
	OrderCancelled: {},
}

func IsValidStatus(status string) bool {
	_, ok := statusFlow[status]
	return ok
}

func CanTransition(from, to string) bool {
	for _, next := range statusFlow[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Order struct {
	gorm.Model
	UserID          uint        `json:"user_id"`
	TotalAmount     float64     `json:"total_amount"`
	PaymentMethod   string      `json:"payment_method"`
	DeliveryAddress string      `json:"delivery_address"`
	Notes           string      `json:"notes"`
	CouponID        *uint       `json:"coupon_id"`
	Discount        float64     `json:"discount"`
	Status          string      `json:"status" gorm:"default:pending"`
	OrderItems      []OrderItem `json:"order_items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem freezes the menu item's price and quantity at order time. Later
// price changes never touch placed orders.
type OrderItem struct {
	gorm.Model
	OrderID    uint    `json:"order_id"`
	MenuItemID uint    `json:"menu_item_id"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
}

// OrderSummary is an order row with a readable one-line items summary.
type OrderSummary struct {
	Order
	ItemsSummary  string `json:"items_summary"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

// OrderDetailRow is one line item joined with menu item presentation data.
type OrderDetailRow struct {
	OrderItem
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type OrderStats struct {
	TotalOrders     int64   `json:"total_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	ConfirmedOrders int64   `json:"confirmed_orders"`
	DeliveredOrders int64   `json:"delivered_orders"`
	CancelledOrders int64   `json:"cancelled_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCustomers  int64   `json:"total_customers"`
}

type DailyOrderStats struct {
	Date        string  `json:"date"`
	OrdersCount int64   `json:"orders_count"`
	Revenue     float64 `json:"revenue"`
}

type TopMenuItem struct {
	Name         string  `json:"name"`
	TotalSold    int64   `json:"total_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

type DetailedOrderStats struct {
	TotalOrders     int64   `json:"total_orders"`
	PendingOrders   int64   `json:"pending_orders"`
	ConfirmedOrders int64   `json:"confirmed_orders"`
	PreparingOrders int64   `json:"preparing_orders"`
	ReadyOrders     int64   `json:"ready_orders"`
	DeliveredOrders int64   `json:"delivered_orders"`
	CancelledOrders int64   `json:"cancelled_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	AvgOrderValue   float64 `json:"avg_order_value"`
}

type RecentActivity struct {
	OrderID      uint      `json:"order_id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	CustomerName string    `json:"customer_name"`
	ActivityType string    `json:"activity_type"`
}

type OrderCustomerStats struct {
	TotalCustomers  int64   `json:"totalCustomers"`
	ActiveCustomers int64   `json:"activeCustomers"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

// CreateOrderWithItems inserts the order, its line items and, when a coupon
// is attached, consumes one coupon use — all in a single transaction. Any
// failure rolls the whole set back.
func CreateOrderWithItems(db *gorm.DB, order *Order, items []OrderItem) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(order).Error; err != nil {
		tx.Rollback()
		return err
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	if order.CouponID != nil {
		if err := RedeemCoupon(tx, *order.CouponID); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

func GetOrdersByUserID(db *gorm.DB, userID uint) ([]OrderSummary, error) {
	var orders []OrderSummary
	err := db.Raw(`
		SELECT o.*,
		       GROUP_CONCAT(CONCAT(oi.quantity, 'x ', m.name) ORDER BY m.name SEPARATOR ', ') AS items_summary
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		LEFT JOIN menu_items m ON oi.menu_item_id = m.id
		WHERE o.user_id = ? AND o.deleted_at IS NULL
		GROUP BY o.id
		ORDER BY o.created_at DESC`, userID).Scan(&orders).Error
	return orders, err
}

func GetAllOrders(db *gorm.DB) ([]OrderSummary, error) {
	var orders []OrderSummary
	err := db.Raw(`
		SELECT o.*, u.name AS customer_name, u.email AS customer_email,
		       GROUP_CONCAT(CONCAT(oi.quantity, 'x ', m.name) ORDER BY m.name SEPARATOR ', ') AS items_summary
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		LEFT JOIN order_items oi ON o.id = oi.order_id
		LEFT JOIN menu_items m ON oi.menu_item_id = m.id
		WHERE o.deleted_at IS NULL
		GROUP BY o.id
		ORDER BY o.created_at DESC`).Scan(&orders).Error
	return orders, err
}

func FindOrderByID(db *gorm.DB, id uint) (Order, error) {
	var order Order
	result := db.First(&order, id)
	return order, result.Error
}

func GetOrderDetails(db *gorm.DB, orderID uint) ([]OrderDetailRow, error) {
	var rows []OrderDetailRow
	err := db.Raw(`
		SELECT oi.*, m.name, m.description, m.image
		FROM order_items oi
		JOIN menu_items m ON oi.menu_item_id = m.id
		WHERE oi.order_id = ?`, orderID).Scan(&rows).Error
	return rows, err
}

func UpdateOrderStatus(db *gorm.DB, orderID uint, status string) error {
	return db.Model(&Order{}).Where("id = ?", orderID).Update("status", status).Error
}

func GetOrderStats(db *gorm.DB) (OrderStats, error) {
	var stats OrderStats
	err := db.Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending_orders,
			COUNT(CASE WHEN status = 'confirmed' THEN 1 END) AS confirmed_orders,
			COUNT(CASE WHEN status = 'delivered' THEN 1 END) AS delivered_orders,
			COUNT(CASE WHEN status = 'cancelled' THEN 1 END) AS cancelled_orders,
			COALESCE(SUM(CASE WHEN status = 'delivered' THEN total_amount ELSE 0 END), 0) AS total_revenue
		FROM orders
		WHERE deleted_at IS NULL`).Scan(&stats).Error
	if err != nil {
		return stats, err
	}

	err = db.Model(&User{}).Where("role = ?", RoleCustomer).Count(&stats.TotalCustomers).Error
	return stats, err
}

func GetDetailedOrderStats(db *gorm.DB) (DetailedOrderStats, []DailyOrderStats, []TopMenuItem, error) {
	var overview DetailedOrderStats
	if err := db.Raw(`
		SELECT
			COUNT(*) AS total_orders,
			COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending_orders,
			COUNT(CASE WHEN status = 'confirmed' THEN 1 END) AS confirmed_orders,
			COUNT(CASE WHEN status = 'preparing' THEN 1 END) AS preparing_orders,
			COUNT(CASE WHEN status = 'ready' THEN 1 END) AS ready_orders,
			COUNT(CASE WHEN status = 'delivered' THEN 1 END) AS delivered_orders,
			COUNT(CASE WHEN status = 'cancelled' THEN 1 END) AS cancelled_orders,
			COALESCE(SUM(CASE WHEN status = 'delivered' THEN total_amount ELSE 0 END), 0) AS total_revenue,
			COALESCE(AVG(CASE WHEN status = 'delivered' THEN total_amount END), 0) AS avg_order_value
		FROM orders
		WHERE deleted_at IS NULL`).Scan(&overview).Error; err != nil {
		return overview, nil, nil, err
	}

	var daily []DailyOrderStats
	if err := db.Raw(`
		SELECT DATE(created_at) AS date,
		       COUNT(*) AS orders_count,
		       COALESCE(SUM(CASE WHEN status = 'delivered' THEN total_amount ELSE 0 END), 0) AS revenue
		FROM orders
		WHERE created_at >= DATE_SUB(CURDATE(), INTERVAL 7 DAY) AND deleted_at IS NULL
		GROUP BY DATE(created_at)
		ORDER BY date DESC`).Scan(&daily).Error; err != nil {
		return overview, nil, nil, err
	}

	var topItems []TopMenuItem
	if err := db.Raw(`
		SELECT m.name,
		       SUM(oi.quantity) AS total_sold,
		       SUM(oi.quantity * oi.price) AS total_revenue
		FROM order_items oi
		JOIN menu_items m ON oi.menu_item_id = m.id
		JOIN orders o ON oi.order_id = o.id
		WHERE o.status = 'delivered'
		GROUP BY m.id, m.name
		ORDER BY total_sold DESC
		LIMIT 5`).Scan(&topItems).Error; err != nil {
		return overview, daily, nil, err
	}

	return overview, daily, topItems, nil
}

func GetRecentActivities(db *gorm.DB) ([]RecentActivity, error) {
	var activities []RecentActivity
	err := db.Raw(`
		SELECT o.id AS order_id, o.status, o.created_at, o.updated_at,
		       u.name AS customer_name, 'order' AS activity_type
		FROM orders o
		LEFT JOIN users u ON o.user_id = u.id
		WHERE o.deleted_at IS NULL
		ORDER BY o.updated_at DESC
		LIMIT 10`).Scan(&activities).Error
	return activities, err
}

func GetOrderCustomerStats(db *gorm.DB) (OrderCustomerStats, error) {
	var stats OrderCustomerStats
	if err := db.Model(&User{}).Where("role = ?", RoleCustomer).Count(&stats.TotalCustomers).Error; err != nil {
		return stats, err
	}
	if err := db.Raw(`
		SELECT COUNT(DISTINCT user_id) FROM orders
		WHERE status = 'delivered' AND created_at >= DATE_SUB(CURDATE(), INTERVAL 30 DAY)`).
		Scan(&stats.ActiveCustomers).Error; err != nil {
		return stats, err
	}
	err := db.Raw(`
		SELECT COALESCE(SUM(total_amount), 0) FROM orders
		WHERE status = 'delivered' AND deleted_at IS NULL`).
		Scan(&stats.TotalRevenue).Error
	return stats, err
}
