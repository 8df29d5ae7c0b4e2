package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired el token tenía firma válida pero ya venció.
	ErrExpired = errors.New("jwt: token expirado")
	// ErrInvalid cualquier otro fallo de verificación (firma, formato, algoritmo).
	ErrInvalid = errors.New("jwt: token inválido")
)

// Claims incluye los claims estándar JWT más la identidad del empleado.
// Role viaja en el token para que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	EmployeeID int64  `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"` // "admin" | "encargado" | "empleado"
}

// Identity datos del empleado que se firman en el token.
type Identity struct {
	EmployeeID int64
	Name       string
	Role       string
}

// Generate genera un token HS256 firmado con la identidad del empleado.
func Generate(secret string, id Identity, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(id.EmployeeID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		EmployeeID: id.EmployeeID,
		Name:       id.Name,
		Role:       id.Role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y vigencia y devuelve la identidad.
// Devuelve ErrExpired si el token venció y ErrInvalid para cualquier otro fallo.
func Parse(secret, tokenString string) (*Identity, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalid
	}
	return &Identity{EmployeeID: claims.EmployeeID, Name: claims.Name, Role: claims.Role}, nil
}
