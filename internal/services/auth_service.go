package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"flipwatch/internal/domain"
	"flipwatch/internal/store"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Store *store.KV
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Store.UserByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Store.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Store.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Store.SessionUser(sid)
}
