package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kitchen-planner/domain"
	"kitchen-planner/internal/utils"

	"github.com/golang-jwt/jwt/v4"
)

type (
	// JWTService validates tokens minted by the identity provider. Token issuing
	// is kept for tooling and tests.
	JWTService interface {
		GenerateTokenUser(userId string, role string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetPrincipalByToken(token string) (domain.Principal, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		ttl       time.Duration
		now       func() time.Time
	}
)

const DefaultIssuer = "KITCHEN"

func NewJWTService() JWTService {
	issuer := utils.GetConfig("JWT_ISSUER")
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return NewJWTServiceWithSecret(utils.GetConfig("JWT_SECRET"), issuer)
}

func NewJWTServiceWithSecret(secret string, issuer string) JWTService {
	return &jwtService{
		secretKey: secret,
		issuer:    issuer,
		ttl:       2 * time.Hour,
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(userId string, role string) (string, error) {
	now := j.now()
	claims := jwtUserClaim{
		userId,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetPrincipalByToken(token string) (domain.Principal, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return domain.Principal{}, domain.ErrTokenNotFound
	}

	t_Token, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Principal{}, domain.ErrTokenExpired
		}
		return domain.Principal{}, domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return domain.Principal{}, domain.ErrTokenInvalid
	}

	claims := t_Token.Claims.(*jwtUserClaim)
	if claims.Issuer != j.issuer || claims.UserID == "" {
		return domain.Principal{}, domain.ErrTokenInvalid
	}
	return domain.Principal{UserID: claims.UserID, Role: claims.Role}, nil
}
