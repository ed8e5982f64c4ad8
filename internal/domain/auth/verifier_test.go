package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer   = "https://issuer.test/"
	testAudience = "drinks"
)

var testSecret = []byte("verifier-test-secret")

func testKeyfunc(token *jwt.Token) (interface{}, error) {
	return testSecret, nil
}

func signHS256(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func baseClaims(permissions []string) *Claims {
	return &Claims{
		Permissions: permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			Audience:  jwt.ClaimStrings{testAudience},
			Subject:   "user|123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		fail   bool
	}{
		{name: "missing header", header: "", fail: true},
		{name: "scheme only", header: "Bearer", fail: true},
		{name: "wrong scheme", header: "Token abc", fail: true},
		{name: "three parts", header: "Bearer abc def", fail: true},
		{name: "valid", header: "Bearer abc", token: "abc"},
		{name: "lowercase scheme", header: "bearer abc", token: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, aerr := BearerToken(tt.header)
			if tt.fail {
				if aerr != ErrHeaderMalformed {
					t.Errorf("expected ErrHeaderMalformed, got %v", aerr)
				}
				return
			}
			if aerr != nil {
				t.Fatalf("unexpected error: %v", aerr)
			}
			if token != tt.token {
				t.Errorf("token = %q, want %q", token, tt.token)
			}
		})
	}
}

func TestVerify(t *testing.T) {
	v := NewVerifier(testKeyfunc, testIssuer, testAudience)

	t.Run("valid token with permissions", func(t *testing.T) {
		token := signHS256(t, baseClaims([]string{"get:drinks-detail", "post:drinks"}))
		claims, aerr := v.Verify(token)
		if aerr != nil {
			t.Fatalf("unexpected error: %v", aerr)
		}
		if !claims.HasPermission("post:drinks") {
			t.Error("expected post:drinks permission")
		}
		if claims.HasPermission("delete:drinks") {
			t.Error("unexpected delete:drinks permission")
		}
	})

	t.Run("expired token", func(t *testing.T) {
		c := baseClaims(nil)
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		if _, aerr := v.Verify(signHS256(t, c)); aerr != ErrTokenExpired {
			t.Errorf("expected ErrTokenExpired, got %v", aerr)
		}
	})

	t.Run("wrong audience", func(t *testing.T) {
		c := baseClaims(nil)
		c.Audience = jwt.ClaimStrings{"someone-else"}
		if _, aerr := v.Verify(signHS256(t, c)); aerr != ErrInvalidClaims {
			t.Errorf("expected ErrInvalidClaims, got %v", aerr)
		}
	})

	t.Run("missing issuer", func(t *testing.T) {
		c := baseClaims(nil)
		c.Issuer = ""
		if _, aerr := v.Verify(signHS256(t, c)); aerr != ErrInvalidClaims {
			t.Errorf("expected ErrInvalidClaims, got %v", aerr)
		}
	})

	t.Run("tampered signature", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, baseClaims(nil)).
			SignedString([]byte("wrong secret"))
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		if _, aerr := v.Verify(token); aerr != ErrInvalidSignature {
			t.Errorf("expected ErrInvalidSignature, got %v", aerr)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, aerr := v.Verify("not.a.token"); aerr != ErrInvalidSignature {
			t.Errorf("expected ErrInvalidSignature, got %v", aerr)
		}
	})

	t.Run("permissions claim absent", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{
			"iss": testIssuer,
			"aud": testAudience,
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		claims, aerr := v.Verify(token)
		if aerr != nil {
			t.Fatalf("unexpected error: %v", aerr)
		}
		if claims.Permissions != nil {
			t.Errorf("absent claim must decode to nil, got %v", claims.Permissions)
		}
	})

	t.Run("permissions claim empty", func(t *testing.T) {
		claims, aerr := v.Verify(signHS256(t, baseClaims([]string{})))
		if aerr != nil {
			t.Fatalf("unexpected error: %v", aerr)
		}
		if claims.Permissions == nil || len(claims.Permissions) != 0 {
			t.Errorf("empty claim must decode to an empty set, got %#v", claims.Permissions)
		}
	})
}

func TestJWKSVerification(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	const kid = "test-key-1"
	doc := jwksDocument{Keys: []jwk{{
		Kty: "RSA",
		Kid: kid,
		Use: "sig",
		N:   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString([]byte{0x01, 0x00, 0x01}),
	}}}

	var fetches int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		_ = json.NewEncoder(w).Encode(doc)
	}))
	defer srv.Close()

	provider := NewJWKSProvider("example.test").WithURL(srv.URL)
	v := NewVerifier(provider.Keyfunc, testIssuer, testAudience)

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, baseClaims([]string{"get:drinks-detail"}))
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	claims, aerr := v.Verify(signed)
	if aerr != nil {
		t.Fatalf("unexpected error: %v", aerr)
	}
	if !claims.HasPermission("get:drinks-detail") {
		t.Error("expected get:drinks-detail permission")
	}

	// Second verification hits the cached key set.
	if _, aerr := v.Verify(signed); aerr != nil {
		t.Fatalf("unexpected error on cached verify: %v", aerr)
	}
	if fetches != 1 {
		t.Errorf("expected a single JWKS fetch, got %d", fetches)
	}

	// HS256 tokens must be rejected by the RSA keyfunc.
	hsToken := signHS256(t, baseClaims(nil))
	if _, aerr := v.Verify(hsToken); aerr != ErrInvalidSignature {
		t.Errorf("expected ErrInvalidSignature for HS256 token, got %v", aerr)
	}
}
