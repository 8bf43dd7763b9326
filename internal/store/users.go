package store

import (
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"flipwatch/internal/domain"
)

// seedUsers ensures the default account exists (idempotent).
func seedUsers(db *sqlx.DB) error {
	h, err := bcrypt.GenerateFromPassword([]byte("Fl1pwatch!"), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
	  INSERT INTO users(id,email,name,password_hash)
	  VALUES('u-owner','owner@flipwatch.test','Owner',?)
	  ON CONFLICT(email) DO NOTHING
	`, string(h))
	return err
}

func (s *KV) UserByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := s.db.Get(&u, `SELECT id,email,name,password_hash FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *KV) BindSession(sid, userID string) error {
	_, err := s.db.Exec(`INSERT INTO sessions(id,user_id,last_seen)
	                      VALUES(?,?,CURRENT_TIMESTAMP)
	                      ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (s *KV) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := s.db.Get(&u, `
	  SELECT u.id,u.email,u.name,u.password_hash
	  FROM sessions s
	  JOIN users u ON u.id=s.user_id
	  WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *KV) UnbindSession(sid string) error {
	_, err := s.db.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}
