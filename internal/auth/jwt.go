package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/webdrive/webdrive_api/internal/config"
	"github.com/webdrive/webdrive_api/internal/identity"
	"github.com/webdrive/webdrive_api/internal/utils"
)

const sessionTokenType = "session"

type jwtGenerator struct {
	signingMethod         jwt.SigningMethod
	privateKey, publicKey interface{}
	ttl                   time.Duration
}

func newJWTGenerator(cfg config.Config) (*jwtGenerator, error) {
	privateKey, publicKey, err := utils.GetEdDSAKeysFromEnv()
	if err != nil {
		return nil, err
	}
	return &jwtGenerator{
		signingMethod: jwt.GetSigningMethod(cfg.Auth.Algorithm),
		privateKey:    privateKey,
		publicKey:     publicKey,
		ttl:           cfg.Auth.SessionTokenTTL,
	}, nil
}

type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"user_id" validate:"required"`
	DisplayName string `json:"display_name"`
	TokenType   string `json:"token_type"`
}

func (g *jwtGenerator) newSessionToken(user identity.User) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(g.signingMethod, Claims{
		UserID:      user.ID,
		DisplayName: user.Name,
		TokenType:   sessionTokenType,

		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	})

	return token.SignedString(g.privateKey)
}

func (g *jwtGenerator) parseSession(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != g.signingMethod.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}

		return g.publicKey, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	if claims.TokenType != sessionTokenType {
		return nil, jwt.ErrTokenUnverifiable
	}
	if claims.UserID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
