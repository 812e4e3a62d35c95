package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type claims struct {
	UserID      string   `json:"user_id"`
	TenantID    uint     `json:"tenant_id"`
	TenantSlug  string   `json:"tenant_slug"`
	SchemaName  string   `json:"schema_name"`
	Role        string   `json:"role"`
	AllowedApps []string `json:"allowed_apps"`
	jwt.RegisteredClaims
}

// Signs a session token from the command line, for local development and
// operator access. The tenant must still resolve as active for the token to
// validate.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}

	userID := flag.String("user", "", "User ID for the token")
	tenantID := flag.Uint("tenant-id", 0, "Tenant ID")
	tenantSlug := flag.String("tenant", "", "Tenant slug")
	role := flag.String("role", "user", "Role for the token")
	apps := flag.String("apps", "hub", "Comma-separated allowed applications")
	expirationHours := flag.Int("exp", 24, "Token expiration in hours")
	flag.Parse()

	if *userID == "" {
		log.Fatal("User ID is required")
	}
	if *tenantSlug == "" || *tenantID == 0 {
		log.Fatal("Tenant slug and id are required")
	}

	tokenClaims := &claims{
		UserID:      *userID,
		TenantID:    *tenantID,
		TenantSlug:  *tenantSlug,
		SchemaName:  "tenant_" + *tenantSlug,
		Role:        *role,
		AllowedApps: strings.Split(*apps, ","),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(*expirationHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)

	jwtSecret := []byte(getEnvOrDefault("JWT_SECRET_KEY", "your-default-secret-key"))

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		log.Fatalf("Error signing token: %v", err)
	}

	fmt.Printf("Generated session token:\n%s\n", tokenString)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
