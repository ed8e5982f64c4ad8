package testing

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"coffeebar-server-go/internal/domain/auth"
	"coffeebar-server-go/internal/platform/config"
	"coffeebar-server-go/internal/platform/storage"
)

const (
	TestIssuer   = "https://issuer.test/"
	TestAudience = "drinks"
)

var testSecret = []byte("coffeebar-test-secret")

func SetupTestConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Server: config.ServerConfig{
			IP:   "127.0.0.1",
			Port: 8080,
		},
		Log: config.LogConfig{
			Level: "debug",
		},
		Database: config.DatabaseConfig{
			DSN: "file::memory:",
		},
		Auth: config.AuthConfig{
			Domain:   "issuer.test",
			Audience: TestAudience,
			Issuer:   TestIssuer,
		},
	}
}

func SetupTestLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.Default()
}

// NewTestDB opens a unique in-memory database with the drink table
// migrated.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:webapi-%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&storage.DrinkRecord{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	return db
}

// NewTestVerifier builds a verifier sharing an HS256 secret with SignToken,
// exercising the same verification path production uses with JWKS keys.
func NewTestVerifier(t *testing.T) *auth.Verifier {
	t.Helper()

	keyfunc := func(token *jwt.Token) (interface{}, error) {
		return testSecret, nil
	}
	return auth.NewVerifier(keyfunc, TestIssuer, TestAudience)
}

// SignToken mints a valid test token carrying the given permissions. A nil
// slice still produces a token with an (empty) permissions claim; use
// SignTokenWithoutPermissions for a token missing the claim entirely.
func SignToken(t *testing.T, permissions ...string) string {
	t.Helper()

	if permissions == nil {
		permissions = []string{}
	}
	claims := &auth.Claims{
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TestIssuer,
			Audience:  jwt.ClaimStrings{TestAudience},
			Subject:   "user|test",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return sign(t, claims)
}

// SignTokenWithoutPermissions mints a valid token whose claims carry no
// permissions set at all.
func SignTokenWithoutPermissions(t *testing.T) string {
	t.Helper()

	return sign(t, jwt.MapClaims{
		"iss": TestIssuer,
		"aud": TestAudience,
		"sub": "user|test",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
}

func sign(t *testing.T, claims jwt.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return token
}

func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error but got nil")
	}
}
