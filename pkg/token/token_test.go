package token

import "testing"

func TestGenerateAndValidateJWT(t *testing.T) {
	signed, err := GenerateJWT(7, "ada@example.com", []string{"manager"}, "secret", 1)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := ValidateJWT(signed, "secret")
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("Expected user ID 7, got %d", claims.UserID)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("Expected email preserved, got %s", claims.Email)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != "manager" {
		t.Errorf("Expected roles preserved, got %v", claims.Roles)
	}
}

func TestValidateJWTWrongSecret(t *testing.T) {
	signed, err := GenerateJWT(7, "ada@example.com", nil, "secret", 1)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := ValidateJWT(signed, "other"); err == nil {
		t.Error("Expected validation failure with wrong secret")
	}
}

func TestValidateJWTExpired(t *testing.T) {
	signed, err := GenerateJWT(7, "ada@example.com", nil, "secret", -1)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}
	if _, err := ValidateJWT(signed, "secret"); err == nil {
		t.Error("Expected validation failure for expired token")
	}
}

func TestValidateJWTEmpty(t *testing.T) {
	if _, err := ValidateJWT("", "secret"); err == nil {
		t.Error("Expected error for empty token")
	}
}
