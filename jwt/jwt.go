// Copyright 2020 yubo. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jwt issues and verifies HS512 signed tokens.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret  = errors.New("secret must not be empty")
	ErrEmptySubject = errors.New("subject must not be empty")
	ErrExpiry       = errors.New("expiry must be positive")
)

var method = jwt.SigningMethodHS512

type Claims struct {
	Subject   string    `yaml:"sub"`
	Audience  []string  `yaml:"aud,omitempty"`
	ExpiresAt time.Time `yaml:"exp"`
	IssuedAt  time.Time `yaml:"iat"`
}

type SignOptions struct {
	Subject  string
	Audience []string
	Expiry   time.Duration
	Secret   []byte
	// Now defaults to time.Now
	Now func() time.Time
}

type VerifyOptions struct {
	Secret []byte
	// Audience, when set, must be present in the token's aud claim.
	Audience string
	Now      func() time.Time
}

func Sign(opts SignOptions) (string, error) {
	if len(opts.Secret) == 0 {
		return "", ErrEmptySecret
	}
	if opts.Subject == "" {
		return "", ErrEmptySubject
	}
	if opts.Expiry <= 0 {
		return "", ErrExpiry
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	t := now()

	claims := jwt.RegisteredClaims{
		Subject:   opts.Subject,
		ExpiresAt: jwt.NewNumericDate(t.Add(opts.Expiry)),
		IssuedAt:  jwt.NewNumericDate(t),
	}
	if len(opts.Audience) > 0 {
		claims.Audience = jwt.ClaimStrings(opts.Audience)
	}

	token, err := jwt.NewWithClaims(method, claims).SignedString(opts.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

func Verify(token string, opts VerifyOptions) (*Claims, error) {
	if len(opts.Secret) == 0 {
		return nil, ErrEmptySecret
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}
	if opts.Now != nil {
		parserOpts = append(parserOpts, jwt.WithTimeFunc(opts.Now))
	}

	rc := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, rc, func(*jwt.Token) (interface{}, error) {
		return opts.Secret, nil
	}, parserOpts...)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	claims := &Claims{
		Subject:  rc.Subject,
		Audience: []string(rc.Audience),
	}
	if rc.ExpiresAt != nil {
		claims.ExpiresAt = rc.ExpiresAt.Time
	}
	if rc.IssuedAt != nil {
		claims.IssuedAt = rc.IssuedAt.Time
	}
	return claims, nil
}
