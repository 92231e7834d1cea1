package models

import "gorm.io/gorm"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	gorm.Model
	Email    string `json:"email" gorm:"uniqueIndex;size:191"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role" gorm:"default:customer"`
}

type RegisterData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CustomerStats are the admin dashboard aggregates over registered customers.
type CustomerStats struct {
	TotalCustomers int64 `json:"totalCustomers"`
	NewThisMonth   int64 `json:"newThisMonth"`
	NewThisWeek    int64 `json:"newThisWeek"`
}

func FindUserByEmail(db *gorm.DB, email string) (User, error) {
	var user User
	result := db.Where("email = ?", email).First(&user)
	return user, result.Error
}

func FindUserByID(db *gorm.DB, id uint) (User, error) {
	var user User
	result := db.First(&user, id)
	return user, result.Error
}

func CreateUser(db *gorm.DB, user *User) error {
	return db.Create(user).Error
}

func UpdateUserProfile(db *gorm.DB, id uint, name, phone, address string) error {
	return db.Model(&User{}).Where("id = ?", id).Updates(map[string]any{
		"name":    name,
		"phone":   phone,
		"address": address,
	}).Error
}

func UpdateUserPassword(db *gorm.DB, id uint, hashedPassword string) error {
	return db.Model(&User{}).Where("id = ?", id).Update("password", hashedPassword).Error
}

func GetAllUsers(db *gorm.DB) ([]User, error) {
	var users []User
	result := db.Order("created_at DESC").Find(&users)
	return users, result.Error
}

func GetCustomers(db *gorm.DB) ([]User, error) {
	var customers []User
	result := db.Where("role = ?", RoleCustomer).Order("created_at DESC").Find(&customers)
	return customers, result.Error
}

func GetCustomerStats(db *gorm.DB) (CustomerStats, error) {
	var stats CustomerStats
	err := db.Raw(`
		SELECT
			COUNT(*) AS total_customers,
			COUNT(CASE WHEN created_at >= DATE_SUB(CURDATE(), INTERVAL 30 DAY) THEN 1 END) AS new_this_month,
			COUNT(CASE WHEN created_at >= DATE_SUB(CURDATE(), INTERVAL 7 DAY) THEN 1 END) AS new_this_week
		FROM users
		WHERE role = ? AND deleted_at IS NULL`, RoleCustomer).Scan(&stats).Error
	return stats, err
}
