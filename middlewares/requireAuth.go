package middlewares

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authUserKey = "authUser"

// AuthUser is the authenticated identity attached to the request after the
// bearer token checks out. Handlers read it through GetAuthUser instead of
// poking at raw claims.
type AuthUser struct {
	UserID  uint
	Email   string
	IsAdmin bool
}

// CanAccess reports whether the caller may act on the given user's resources:
// owners and admins only.
func (u AuthUser) CanAccess(userID uint) bool {
	return u.IsAdmin || u.UserID == userID
}

func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		if header == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing access token"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid Authorization format"})
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Invalid token claims"})
			return
		}

		userID, _ := claims["userId"].(float64)
		email, _ := claims["email"].(string)
		isAdmin, _ := claims["isAdmin"].(bool)

		ctx.Set(authUserKey, AuthUser{UserID: uint(userID), Email: email, IsAdmin: isAdmin})
		ctx.Next()
	}
}

func GetAuthUser(ctx *gin.Context) (AuthUser, bool) {
	value, exists := ctx.Get(authUserKey)
	if !exists {
		return AuthUser{}, false
	}
	user, ok := value.(AuthUser)
	return user, ok
}
