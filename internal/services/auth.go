package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/api/option"
)

// Identity is the verified caller resolved from a bearer token.
type Identity struct {
	Email string
}

// TokenVerifier validates a bearer token against the identity provider.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NewVerifier picks the Firebase verifier when a service account is
// configured, otherwise falls back to the shared-secret HS256 verifier.
func NewVerifier(ctx context.Context) (TokenVerifier, error) {
	if path := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); path != "" {
		return NewFirebaseVerifier(ctx, path)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("neither FIREBASE_SERVICE_ACCOUNT_PATH nor JWT_SECRET is set")
	}
	log.Println("Warning: FIREBASE_SERVICE_ACCOUNT_PATH not set, using HS256 token verification")
	return &HMACVerifier{Secret: []byte(secret)}, nil
}

// FirebaseVerifier verifies Firebase ID tokens.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(ctx context.Context, serviceAccountPath string) (*FirebaseVerifier, error) {
	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting auth client: %v", err)
	}

	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	email, _ := decoded.Claims["email"].(string)
	if email == "" {
		return nil, errors.New("token has no email claim")
	}

	return &Identity{Email: email}, nil
}

// HMACVerifier verifies HS256 tokens signed with a shared secret.
type HMACVerifier struct {
	Secret []byte
}

func (v *HMACVerifier) Verify(_ context.Context, tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, errors.New("token has no email claim")
	}

	return &Identity{Email: email}, nil
}
