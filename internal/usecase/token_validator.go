package usecase

import (
	"fmt"

	"course-reservation/internal/domain/user"
	"course-reservation/internal/pkg/errs"
	"course-reservation/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware and the verify endpoint.
type TokenValidator interface {
	ValidateToken(tokenString string) (user.Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (user.Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return user.Identity{}, fmt.Errorf("%w: %s", errs.ErrUnauthorized, err.Error())
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return user.Identity{}, fmt.Errorf("%w: unknown role %q", errs.ErrUnauthorized, claims.Role)
	}

	return user.Identity{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      role,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
	}, nil
}
