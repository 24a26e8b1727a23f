package service

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"golang.org/x/crypto/bcrypt"

	"github.com/scirota/selection-api/internal/domain"
	"github.com/scirota/selection-api/internal/usecase"
	"github.com/scirota/selection-api/jwt"
)

var tracer = otel.Tracer("auth")

// ErrInvalidCredentials deliberately covers both unknown logins and wrong
// passwords so callers cannot probe which logins exist.
var ErrInvalidCredentials = domain.ForbiddenError{Reason: "invalid login or password"}

type AuthService struct {
	members  usecase.MemberRepository
	resolver *usecase.RoleResolver
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(
	members usecase.MemberRepository,
	resolver *usecase.RoleResolver,
	secret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		members:  members,
		resolver: resolver,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

type AuthResult struct {
	Token  string        `json:"token"`
	Member domain.Member `json:"member"`
}

// Login verifies the password and issues a token carrying the member id.
func (s *AuthService) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Login")
	defer span.End()

	member, hash, err := s.members.GetByLogin(ctx, login)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	token, err := jwt.Create(jwt.Claims{
		Issuer:         "selection-api",
		Subject:        strconv.FormatUint(uint64(member.ID), 10),
		Audience:       "selection",
		IssuedAt:       strconv.FormatInt(now.Unix(), 10),
		ExpirationTime: strconv.FormatInt(now.Add(s.tokenTTL).Unix(), 10),
	}, s.secret)
	if err != nil {
		span.RecordError(errors.Wrap(err, "token creation failed"))
		return nil, err
	}

	return &AuthResult{Token: token, Member: member}, nil
}

// AuthJwt validates the token and resolves the requester's capability
// context.
func (s *AuthService) AuthJwt(ctx context.Context, token string) (domain.RoleContext, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.AuthJwt")
	defer span.End()

	_, claims, err := jwt.Validate(token, s.secret)
	if err != nil {
		span.RecordError(errors.Wrap(err, "jwt validation failed"))
		return domain.RoleContext{}, domain.ForbiddenError{Reason: "invalid token"}
	}

	memberID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		span.RecordError(err)
		return domain.RoleContext{}, domain.ForbiddenError{Reason: "invalid token subject"}
	}

	return s.resolver.Resolve(ctx, uint(memberID))
}
