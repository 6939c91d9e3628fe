package storage

import "context"

// User is a stored credential record. Users are created on first successful
// login of an allow-listed email and are never deleted; no password-change
// flow exists.
type User struct {
	Email        string `csv:"Email" json:"email"`
	PasswordHash string `csv:"PasswordHash" json:"-"`
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readTable[User](s, usersFile)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *Store) CreateUser(ctx context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readTable[User](s, usersFile)
	if err != nil {
		return err
	}
	users = append(users, user)
	return writeTable(s, usersFile, users)
}
