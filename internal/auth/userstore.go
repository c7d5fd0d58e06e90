package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gorm.io/gorm"

	"github.com/handlersyss/BarSystem/internal/model"
)

const usersFile = "users.json"

// FileUserStore keeps the accounts in a single JSON document next to the
// order data.
type FileUserStore struct {
	dir string
}

func NewFileUserStore(dir string) *FileUserStore {
	return &FileUserStore{dir: dir}
}

func (f *FileUserStore) LoadUsers() ([]model.User, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, usersFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", usersFile, err)
	}
	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode %s: %w", usersFile, err)
	}
	return users, nil
}

func (f *FileUserStore) SaveUsers(users []model.User) error {
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", usersFile, err)
	}
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(f.dir, usersFile)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", usersFile, err)
	}
	return os.Rename(tmp, path)
}

// GormUserStore keeps the accounts in the relational database alongside the
// order tables.
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) (*GormUserStore, error) {
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return nil, fmt.Errorf("migrate users: %w", err)
	}
	return &GormUserStore{db: db}, nil
}

func (g *GormUserStore) LoadUsers() ([]model.User, error) {
	var users []model.User
	if err := g.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (g *GormUserStore) SaveUsers(users []model.User) error {
	return g.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.User{}).Error; err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}
		return tx.Create(&users).Error
	})
}
