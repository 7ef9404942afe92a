package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/config"
	"github.com/elhaiti30/short-form-video-blitz-sub000/common/logger"
)

// UserAuth verifies the bearer JWT issued by the hosted auth platform. A
// verified username is persisted into the session so subsequent dashboard
// requests pass on the cookie alone. When AUTH_SECRET is unset the check is
// skipped so local development and tests run without tokens.
func UserAuth() func(c *gin.Context) {
	return func(c *gin.Context) {
		if config.AuthSecret == "" {
			c.Next()
			return
		}

		session := sessions.Default(c)
		if username, ok := session.Get("username").(string); ok && username != "" {
			c.Set("username", username)
			c.Next()
			return
		}

		accessToken := strings.TrimPrefix(c.Request.Header.Get("Authorization"), "Bearer ")
		if accessToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized for this operation, no access token provided",
			})
			c.Abort()
			return
		}

		token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(config.AuthSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Not authorized to perform this operation, access token is invalid",
			})
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(string); ok && sub != "" {
				c.Set("username", sub)
				session.Set("username", sub)
				if err := session.Save(); err != nil {
					logger.SysError("failed to save session: " + err.Error())
				}
			}
		}
		c.Next()
	}
}
