// Package auth manages operator accounts. It is independent from the order
// core: the order service never reads operator identity for any invariant.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/handlersyss/BarSystem/internal/model"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBadRequest         = errors.New("username and password are required")
)

// UserStore persists operator accounts. Like the order store, a store with
// nothing in it loads an empty account list.
type UserStore interface {
	LoadUsers() ([]model.User, error)
	SaveUsers([]model.User) error
}

// Service registers and authenticates operators. Passwords are stored as
// bcrypt hashes only.
type Service struct {
	mu     sync.Mutex
	store  UserStore
	users  map[int]*model.User
	nextID int
}

// NewService loads the accounts from the store.
func NewService(store UserStore) (*Service, error) {
	users, err := store.LoadUsers()
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	s := &Service{
		store:  store,
		users:  make(map[int]*model.User, len(users)),
		nextID: 1,
	}
	for i := range users {
		u := users[i]
		s.users[u.ID] = &u
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	return s, nil
}

// Register creates a new operator account with a hashed password.
func (s *Service) Register(username, password, company string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrBadRequest
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, ErrUsernameTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:       s.nextID,
		Username: username,
		Password: string(hash),
		Company:  company,
	}
	s.users[user.ID] = user
	s.nextID++

	if err := s.saveLocked(); err != nil {
		delete(s.users, user.ID)
		s.nextID--
		return nil, err
	}

	public := *user
	public.Password = ""
	return &public, nil
}

// Authenticate checks a username/password pair and returns the account on
// success. The returned copy never carries the password hash.
func (s *Service) Authenticate(username, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		public := *u
		public.Password = ""
		return &public, nil
	}
	return nil, ErrInvalidCredentials
}

func (s *Service) saveLocked() error {
	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, *u)
	}
	if err := s.store.SaveUsers(users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}
