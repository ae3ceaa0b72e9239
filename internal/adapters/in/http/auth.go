package http

import (
	"errors"
	"net/http"
	"strings"

	"agrimarket/internal/core/domain/model/kernel"
	"agrimarket/internal/core/domain/model/order"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// AuthMiddleware verifies the Bearer token on every request and resolves it
// into the acting order.Actor. Tokens carry the actor's ID in the "sub"
// claim and the role ("buyer" or "seller") in the "role" claim, signed
// HS256. Requests without a valid token are rejected with 401.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := actorFromToken(c.Request().Header.Get("Authorization"), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or missing token",
				})
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFromToken(header string, secret []byte) (order.Actor, error) {
	if header == "" {
		return order.Actor{}, errors.New("authorization header is missing")
	}

	tokenString := strings.TrimPrefix(header, "Bearer ")
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected token signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return order.Actor{}, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return order.Actor{}, errors.New("unexpected token claims")
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return order.Actor{}, err
	}

	actorID, err := kernel.UUIDFromString(subject)
	if err != nil {
		return order.Actor{}, err
	}

	roleClaim, ok := claims["role"].(string)
	if !ok {
		return order.Actor{}, errors.New("role claim is missing")
	}

	role, err := order.RoleFromString(roleClaim)
	if err != nil {
		return order.Actor{}, err
	}

	return order.NewActor(actorID, role)
}

func actorFrom(c echo.Context) (order.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(order.Actor)
	return actor, ok
}
