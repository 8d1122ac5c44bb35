package middleware

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"agendakids/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Read per call so the key set by godotenv in main is picked up.
func jwtKey() []byte {
	return []byte(os.Getenv("BYTE_KEY"))
}

const parentIDKey = "parent_id"

// IdentityResolver turns an inbound request into a parent identifier. The
// default header resolver trusts whatever the caller asserts; the JWT one
// verifies a signed token. Both hand downstream code nothing but an int, so
// swapping one for the other never touches the services.
type IdentityResolver interface {
	Resolve(c *fiber.Ctx) (int, error)
}

// HeaderIdentity reads the parent id from X-User-ID. No lookup, no
// signature: this is request scoping, not authentication.
type HeaderIdentity struct{}

func (HeaderIdentity) Resolve(c *fiber.Ctx) (int, error) {
	raw := c.Get("X-User-ID")
	if raw == "" {
		return 0, fmt.Errorf("missing identity header")
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("malformed identity header")
	}

	return id, nil
}

// JWTIdentity verifies an HS256 token from the Authorization header and uses
// the user_id claim as the parent identifier.
type JWTIdentity struct{}

func (JWTIdentity) Resolve(c *fiber.Ctx) (int, error) {
	token := c.Get("Authorization")
	if token == "" {
		return 0, fmt.Errorf("missing authorization header")
	}
	token = strings.TrimPrefix(token, "Bearer ")

	claims, err := VerifyJWT(token)
	if err != nil {
		return 0, err
	}

	return claims.UserID, nil
}

// NewIdentityResolver picks the resolver from AUTH_MODE (header|jwt).
func NewIdentityResolver() IdentityResolver {
	if os.Getenv("AUTH_MODE") == "jwt" {
		return JWTIdentity{}
	}
	return HeaderIdentity{}
}

// ParentRequired rejects the request with 401 before any handler or store
// work when the resolver cannot produce a parent id.
func ParentRequired(resolver IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := resolver.Resolve(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthenticated",
			})
		}

		c.Locals(parentIDKey, id)
		return c.Next()
	}
}

// ParentID returns the parent identifier ParentRequired attached.
func ParentID(c *fiber.Ctx) int {
	id, _ := c.Locals(parentIDKey).(int)
	return id
}

func GenerateJWT(userID int, name string) (string, error) {
	expirationTime := time.Now().Add(24 * time.Hour) // Token valid for 24 hours
	claims := &domain.Claims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey())
}

func VerifyJWT(tokenString string) (*domain.Claims, error) {
	claims := &domain.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
